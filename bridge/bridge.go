// Package bridge maintains the native bridge toolkit's own configuration
// file (capacitor.config.json). The overlapping fields are overwritten from
// the app config on every run; keys webcap does not know about are kept
// as-is, since the file is otherwise owned by the toolkit.
package bridge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xhd2015/webcap/config"
)

// ConfigFile is the bridge toolkit's configuration file name.
const ConfigFile = "capacitor.config.json"

// Sync rewrites the bridge config in projectDir from cfg.
// Sync is one-directional: the app config always wins.
func Sync(projectDir string, cfg *config.Config) error {
	path := filepath.Join(projectDir, ConfigFile)

	bridgeCfg := map[string]interface{}{}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, &bridgeCfg); err != nil {
			return fmt.Errorf("parse %s: %w", ConfigFile, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read %s: %w", ConfigFile, err)
	}

	bridgeCfg["appId"] = cfg.AppID
	bridgeCfg["appName"] = cfg.AppName
	bridgeCfg["webDir"] = cfg.GetWebDir()

	server, _ := bridgeCfg["server"].(map[string]interface{})
	if server == nil {
		server = map[string]interface{}{}
	}
	server["url"] = cfg.WebURL
	// a remote server URL requires cleartext for plain-http dev servers
	server["cleartext"] = true
	bridgeCfg["server"] = server

	if cfg.BackgroundColor != "" {
		bridgeCfg["backgroundColor"] = cfg.BackgroundColor
	} else {
		delete(bridgeCfg, "backgroundColor")
	}

	out, err := json.MarshalIndent(bridgeCfg, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("write %s: %w", ConfigFile, err)
	}
	return nil
}
