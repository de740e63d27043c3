package main

import (
	"fmt"
	"os"

	"github.com/xhd2015/webcap/run"
)

func main() {
	err := run.Run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
