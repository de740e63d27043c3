package run

import (
	"fmt"
)

var help = `
Usage: webcap <command> [options]

Turns a webcap.json app config into a native Android shell via the
Capacitor toolchain.

Commands:
  build      full pipeline: plugins, bridge config, bundle, regenerate
             the android project, manifest, sync
  sync       same as build but without regenerating the android project
  doctor     check the toolchain (node, npm, npx, java, Android SDK)
  init       scaffold a starter webcap.json
  preview    serve the built web assets with live reload

Use 'webcap <command> --help' for command options.
`

// Run dispatches to the subcommand named by the first argument.
func Run(args []string) error {
	if len(args) == 0 {
		fmt.Print(help)
		return nil
	}
	cmd := args[0]
	args = args[1:]
	switch cmd {
	case "-h", "--help", "help":
		fmt.Print(help)
		return nil
	case "build":
		return runBuild(args)
	case "sync":
		return runSync(args)
	case "doctor":
		return runDoctor(args)
	case "init":
		return runInit(args)
	case "preview":
		return runPreview(args)
	default:
		return fmt.Errorf("unrecognized command: %s, try 'webcap --help'", cmd)
	}
}
