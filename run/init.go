package run

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xhd2015/less-gen/flags"

	"github.com/xhd2015/webcap/config"
)

var initHelp = `
Usage: webcap init [options]

Writes a starter webcap.json into the project directory.

Options:
  --dir DIR        Project directory (defaults to current working directory)
  --force          Overwrite an existing config
  -h, --help       Show this help message
`

func runInit(args []string) error {
	var dirFlag string
	var force bool
	args, err := flags.
		String("--dir", &dirFlag).
		Bool("--force", &force).
		Help("-h,--help", initHelp).
		Parse(args)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		return fmt.Errorf("unrecognized extra args: %v", args)
	}

	dir := dirFlag
	if dir == "" {
		dir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %v", err)
		}
	}

	path := filepath.Join(dir, "webcap.json")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	starter := config.Config{
		AppID:           "com.example.app",
		AppName:         "My App",
		WebURL:          "https://example.com",
		WebDir:          config.DefaultWebDir,
		BackgroundColor: "#ffffff",
		Plugins: map[string]bool{
			"@capacitor/splash-screen": true,
		},
		Permissions: map[string]bool{
			"camera": false,
		},
	}
	data, err := json.MarshalIndent(starter, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
