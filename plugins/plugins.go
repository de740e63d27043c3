// Package plugins reconciles the bridge plugins installed in the project's
// package.json against the app config: plugins marked enabled get
// installed, plugins disabled or no longer listed get uninstalled.
package plugins

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xhd2015/webcap/execx"
)

// pluginPrefixes mark npm packages that are managed as bridge plugins
// even when the config no longer mentions them.
var pluginPrefixes = []string{
	"@capacitor/",
	"@capacitor-community/",
}

// corePackages are part of the toolkit itself, never reconciled.
var corePackages = map[string]bool{
	"@capacitor/core":    true,
	"@capacitor/cli":     true,
	"@capacitor/android": true,
	"@capacitor/ios":     true,
}

type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Installed returns the project's dependencies (regular and dev) as a set.
// A missing package.json is an error: the project dir is not an npm project.
func Installed(projectDir string) (map[string]bool, error) {
	path := filepath.Join(projectDir, "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no package.json in %s: not an npm project", projectDir)
		}
		return nil, fmt.Errorf("read package.json: %w", err)
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parse package.json: %w", err)
	}
	deps := make(map[string]bool, len(pkg.Dependencies)+len(pkg.DevDependencies))
	for name := range pkg.Dependencies {
		deps[name] = true
	}
	for name := range pkg.DevDependencies {
		deps[name] = true
	}
	return deps, nil
}

// Plan is the set difference between the configured plugins and the
// installed dependencies.
type Plan struct {
	Install   []string
	Uninstall []string
}

// Empty reports whether there is nothing to do.
func (p Plan) Empty() bool {
	return len(p.Install) == 0 && len(p.Uninstall) == 0
}

// Reconcile computes the install/uninstall plan.
//
// Installed bridge plugins (by package prefix) that the config does not
// enable are uninstalled, as are packages the config explicitly disables.
// Core toolkit packages are never touched.
func Reconcile(configured map[string]bool, installed map[string]bool) Plan {
	var plan Plan

	for name, enabled := range configured {
		if !enabled {
			continue
		}
		if !installed[name] {
			plan.Install = append(plan.Install, name)
		}
	}

	for name := range installed {
		if corePackages[name] {
			continue
		}
		if enabled, listed := configured[name]; listed {
			if !enabled {
				plan.Uninstall = append(plan.Uninstall, name)
			}
			continue
		}
		if isBridgePlugin(name) {
			plan.Uninstall = append(plan.Uninstall, name)
		}
	}

	sort.Strings(plan.Install)
	sort.Strings(plan.Uninstall)
	return plan
}

func isBridgePlugin(name string) bool {
	for _, prefix := range pluginPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Apply executes the plan with npm. Uninstalls run first so a rename
// (disable old, enable new) never holds both packages at once.
func Apply(ctx context.Context, projectDir string, plan Plan, verbose bool) error {
	if len(plan.Uninstall) > 0 {
		fmt.Printf("Removing plugins: %s\n", strings.Join(plan.Uninstall, ", "))
		args := append([]string{"uninstall"}, plan.Uninstall...)
		if err := execx.Run(ctx, projectDir, verbose, "npm", args...); err != nil {
			return fmt.Errorf("npm uninstall failed: %w", err)
		}
	}
	if len(plan.Install) > 0 {
		fmt.Printf("Installing plugins: %s\n", strings.Join(plan.Install, ", "))
		args := append([]string{"install"}, plan.Install...)
		if err := execx.Run(ctx, projectDir, verbose, "npm", args...); err != nil {
			return fmt.Errorf("npm install failed: %w", err)
		}
	}
	return nil
}
