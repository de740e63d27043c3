package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultWebDir is where built web assets are expected when the
// config does not say otherwise.
const DefaultWebDir = "dist"

// ConfigNames are the file names probed, in order, when no explicit
// config path is given.
var ConfigNames = []string{"webcap.json", "webcap.yaml", "webcap.yml"}

// Config is the app configuration. It is owned by the end user and
// read-only to webcap.
type Config struct {
	AppID           string          `json:"appId" yaml:"appId"`
	AppName         string          `json:"appName" yaml:"appName"`
	WebURL          string          `json:"webUrl" yaml:"webUrl"`
	WebDir          string          `json:"webDir,omitempty" yaml:"webDir"`
	BackgroundColor string          `json:"backgroundColor,omitempty" yaml:"backgroundColor"`
	Plugins         map[string]bool `json:"plugins,omitempty" yaml:"plugins"`
	Permissions     map[string]bool `json:"permissions,omitempty" yaml:"permissions"`
}

// GetWebDir returns the configured web assets directory, or the default.
func (c *Config) GetWebDir() string {
	if c.WebDir != "" {
		return c.WebDir
	}
	return DefaultWebDir
}

// EnabledPlugins returns the npm package names marked true, sorted.
func (c *Config) EnabledPlugins() []string {
	return enabledKeys(c.Plugins)
}

// EnabledPermissions returns the permission identifiers marked true, sorted.
func (c *Config) EnabledPermissions() []string {
	return enabledKeys(c.Permissions)
}

func enabledKeys(m map[string]bool) []string {
	var keys []string
	for k, enabled := range m {
		if enabled {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Load reads the config at path, decoding by file extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
	default:
		return nil, fmt.Errorf("unsupported config extension: %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return &cfg, nil
}

// Discover finds and loads the config in dir, probing ConfigNames in order.
func Discover(dir string) (*Config, string, error) {
	for _, name := range ConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := Load(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	return nil, "", fmt.Errorf("no config found in %s (expected one of: %s)", dir, strings.Join(ConfigNames, ", "))
}

// Validate checks the required fields.
func (c *Config) Validate() error {
	if c.AppID == "" {
		return fmt.Errorf("appId is required")
	}
	if strings.ContainsAny(c.AppID, " \t") {
		return fmt.Errorf("appId must not contain whitespace: %q", c.AppID)
	}
	if c.AppName == "" {
		return fmt.Errorf("appName is required")
	}
	if c.WebURL == "" {
		return fmt.Errorf("webUrl is required")
	}
	if !strings.HasPrefix(c.WebURL, "http://") && !strings.HasPrefix(c.WebURL, "https://") {
		return fmt.Errorf("webUrl must be an http(s) URL: %q", c.WebURL)
	}
	if c.BackgroundColor != "" && !strings.HasPrefix(c.BackgroundColor, "#") {
		return fmt.Errorf("backgroundColor must be a #rrggbb value: %q", c.BackgroundColor)
	}
	return nil
}
