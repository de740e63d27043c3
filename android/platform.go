// Package android manages the generated native project directory. The
// directory is owned by the bridge toolkit and treated as disposable:
// webcap deletes and regenerates it wholesale rather than patching it
// incrementally, except for local.properties and the manifest.
package android

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xhd2015/webcap/execx"
)

// PlatformDir is the generated native project directory name.
const PlatformDir = "android"

// Exists reports whether the platform directory has been generated.
func Exists(projectDir string) bool {
	info, err := os.Stat(filepath.Join(projectDir, PlatformDir))
	return err == nil && info.IsDir()
}

// Regenerate deletes the platform directory and lets the bridge CLI
// recreate it from scratch.
func Regenerate(ctx context.Context, projectDir string, verbose bool) error {
	dir := filepath.Join(projectDir, PlatformDir)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove %s: %w", PlatformDir, err)
	}
	if err := execx.Run(ctx, projectDir, verbose, "npx", "cap", "add", "android"); err != nil {
		return fmt.Errorf("cap add android failed: %w", err)
	}
	return nil
}

// SyncAssets copies the built web assets and plugin config into the
// native project via the bridge CLI.
func SyncAssets(ctx context.Context, projectDir string, verbose bool) error {
	if err := execx.Run(ctx, projectDir, verbose, "npx", "cap", "sync", "android"); err != nil {
		return fmt.Errorf("cap sync failed: %w", err)
	}
	return nil
}
