package run

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/xhd2015/less-gen/flags"

	"github.com/xhd2015/webcap/preview"
)

var previewHelp = fmt.Sprintf(`
Usage: webcap preview [options]

Serves the built web assets locally with live reload, so the page the
native shell will load can be checked before packaging.

Options:
  --config FILE    Path to the app config (defaults to webcap.json/.yaml in the project dir)
  --dir DIR        Project directory (defaults to current working directory)
  --port PORT      Port to listen on (defaults to auto-find starting from %d)
  -h, --help       Show this help message
`, preview.DefaultPort)

func runPreview(args []string) error {
	var configFile string
	var dirFlag string
	var portFlag int
	args, err := flags.
		String("--config", &configFile).
		String("--dir", &dirFlag).
		Int("--port", &portFlag).
		Help("-h,--help", previewHelp).
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

	return preview.Serve(ctx, preview.Options{
		AssetsDir:  filepath.Join(p.dir, p.cfg.GetWebDir()),
		ConfigPath: p.configPath,
		Port:       portFlag,
	})
}
