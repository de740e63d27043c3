package run

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/xhd2015/less-gen/flags"

	"github.com/xhd2015/webcap/android"
)

var syncHelp = `
Usage: webcap sync [options]

Same pipeline as 'webcap build' but keeps the existing android project
instead of deleting and regenerating it.

Options:
  --config FILE    Path to the app config (defaults to webcap.json/.yaml in the project dir)
  --dir DIR        Project directory (defaults to current working directory)
  --skip-bundle    Skip the web bundler step (npm run build)
  --verbose        Echo every toolchain command before running it
  -h, --help       Show this help message
`

func runSync(args []string) error {
	var configFile string
	var dirFlag string
	var skipBundle bool
	var verbose bool
	args, err := flags.
		String("--config", &configFile).
		String("--dir", &dirFlag).
		Bool("--skip-bundle", &skipBundle).
		Bool("--verbose", &verbose).
		Help("-h,--help", syncHelp).
		Parse(args)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		return fmt.Errorf("unrecognized extra args: %v", args)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := loadProject(dirFlag, configFile)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded config from %s\n", p.configPath)

	if err := requireTools("npm", "npx"); err != nil {
		return err
	}
	if err := reconcilePlugins(ctx, p, verbose); err != nil {
		return err
	}
	if err := writeBridgeConfig(p); err != nil {
		return err
	}
	if !skipBundle {
		if err := bundleWeb(ctx, p, verbose); err != nil {
			return err
		}
	}

	if !android.Exists(p.dir) {
		fmt.Fprintf(os.Stderr, "warning: android project not generated yet, skipping native sync (run 'webcap build' first)\n")
		return nil
	}
	if _, err := os.Stat(android.ManifestPath(p.dir)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: manifest not found at %s, skipping permission patch and native sync\n", android.ManifestPath(p.dir))
		return nil
	}

	if err := finishPlatform(ctx, p, verbose); err != nil {
		return err
	}

	fmt.Println("\nSync complete!")
	return nil
}
