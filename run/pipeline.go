package run

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xhd2015/webcap/android"
	"github.com/xhd2015/webcap/bridge"
	"github.com/xhd2015/webcap/config"
	"github.com/xhd2015/webcap/execx"
	"github.com/xhd2015/webcap/plugins"
	"github.com/xhd2015/webcap/toolresolve"
)

// project is the loaded build context shared by the subcommands.
type project struct {
	dir        string
	configPath string
	cfg        *config.Config
}

// loadProject resolves the project directory and loads the app config,
// either from an explicit --config path or by discovery.
func loadProject(dirFlag string, configFlag string) (*project, error) {
	dir := dirFlag
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %v", err)
		}
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve project dir: %w", err)
	}

	var cfg *config.Config
	var configPath string
	if configFlag != "" {
		configPath = configFlag
		if !filepath.IsAbs(configPath) {
			configPath = filepath.Join(dir, configPath)
		}
		cfg, err = config.Load(configPath)
	} else {
		cfg, configPath, err = config.Discover(dir)
	}
	if err != nil {
		return nil, err
	}

	if err := android.ValidatePermissions(cfg.Permissions); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(configPath), err)
	}

	return &project{dir: dir, configPath: configPath, cfg: cfg}, nil
}

// requireTools fails when any of the named binaries cannot be resolved.
func requireTools(names ...string) error {
	var missing []string
	for _, name := range names {
		if !toolresolve.IsAvailable(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required tool(s) not found: %v, run 'webcap doctor'", missing)
	}
	return nil
}

// reconcilePlugins installs the enabled plugins and removes the disabled
// or no-longer-listed ones through npm.
func reconcilePlugins(ctx context.Context, p *project, verbose bool) error {
	fmt.Println("=== Reconciling plugins ===")
	installed, err := plugins.Installed(p.dir)
	if err != nil {
		return err
	}
	plan := plugins.Reconcile(p.cfg.Plugins, installed)
	if plan.Empty() {
		fmt.Println("Plugins up to date.")
		return nil
	}
	return plugins.Apply(ctx, p.dir, plan, verbose)
}

// writeBridgeConfig overwrites the bridge toolkit config from the app config.
func writeBridgeConfig(p *project) error {
	fmt.Println("=== Writing bridge config ===")
	if err := bridge.Sync(p.dir, p.cfg); err != nil {
		return err
	}
	fmt.Printf("%s: server.url=%s\n", bridge.ConfigFile, p.cfg.WebURL)
	return nil
}

// bundleWeb runs the project's web bundler.
func bundleWeb(ctx context.Context, p *project, verbose bool) error {
	fmt.Println("=== Building web assets ===")
	if err := execx.Run(ctx, p.dir, verbose, "npm", "run", "build"); err != nil {
		return fmt.Errorf("web bundle failed: %w", err)
	}
	return nil
}

// finishPlatform writes local.properties, patches the manifest and runs
// the bridge sync. The manifest must exist by the time this is called.
func finishPlatform(ctx context.Context, p *project, verbose bool) error {
	sdkDir, err := android.WriteLocalProperties(p.dir)
	if err != nil {
		return err
	}
	fmt.Printf("local.properties: sdk.dir=%s\n", sdkDir)

	tags := android.PermissionTags(p.cfg.Permissions)
	if len(tags) > 0 {
		inserted, err := android.PatchManifest(android.ManifestPath(p.dir), tags)
		if err != nil {
			return err
		}
		if inserted > 0 {
			fmt.Printf("AndroidManifest.xml: added %d permission(s)\n", inserted)
		} else {
			fmt.Println("AndroidManifest.xml: permissions up to date")
		}
	}

	fmt.Println("=== Syncing native project ===")
	return android.SyncAssets(ctx, p.dir, verbose)
}
