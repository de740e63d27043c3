package run

import (
	"fmt"
	"os"

	"github.com/xhd2015/less-gen/flags"

	"github.com/xhd2015/webcap/android"
	"github.com/xhd2015/webcap/toolresolve"
)

var doctorHelp = `
Usage: webcap doctor [options]

Checks the toolchain webcap depends on: node, npm, npx, java and the
Android SDK location.

Options:
  --dir DIR        Project directory (defaults to current working directory)
  -h, --help       Show this help message
`

// requiredTools must resolve for the pipeline to run at all.
var requiredTools = []string{"node", "npm", "npx"}

// optionalTools are only needed for the native gradle build itself.
var optionalTools = []string{"java"}

func runDoctor(args []string) error {
	var dirFlag string
	args, err := flags.
		String("--dir", &dirFlag).
		Help("-h,--help", doctorHelp).
		Parse(args)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		return fmt.Errorf("unrecognized extra args: %v", args)
	}

	var missing []string
	for _, name := range requiredTools {
		missing = append(missing, reportTool(name, true)...)
	}
	for _, name := range optionalTools {
		reportTool(name, false)
	}

	if sdkDir, err := android.SDKDir(); err != nil {
		fmt.Printf("%-8s not resolved: %v\n", "sdk", err)
	} else if _, statErr := os.Stat(sdkDir); statErr != nil {
		fmt.Printf("%-8s %s (directory missing)\n", "sdk", sdkDir)
	} else {
		fmt.Printf("%-8s %s\n", "sdk", sdkDir)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required tool(s): %v", missing)
	}
	fmt.Println("\nToolchain OK.")
	return nil
}

// reportTool prints one line per tool and returns the name when a
// required tool is missing.
func reportTool(name string, required bool) []string {
	path, err := toolresolve.LookPath(name)
	if err != nil {
		suffix := "(optional)"
		if required {
			suffix = "(required)"
		}
		fmt.Printf("%-8s NOT FOUND %s\n", name, suffix)
		if required {
			return []string{name}
		}
		return nil
	}
	version, err := toolresolve.Version(name)
	if err != nil {
		version = "version unknown"
	}
	fmt.Printf("%-8s %s  %s\n", name, version, path)
	return nil
}
