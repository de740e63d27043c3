package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "webcap.json", `{
  "appId": "com.example.shop",
  "appName": "Shop",
  "webUrl": "https://shop.example.com",
  "backgroundColor": "#101010",
  "plugins": {"@capacitor/camera": true, "@capacitor/geolocation": false},
  "permissions": {"camera": true}
}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AppID != "com.example.shop" || cfg.AppName != "Shop" {
		t.Errorf("unexpected identity: %q %q", cfg.AppID, cfg.AppName)
	}
	if cfg.GetWebDir() != DefaultWebDir {
		t.Errorf("GetWebDir() = %q, want default %q", cfg.GetWebDir(), DefaultWebDir)
	}
	if got := cfg.EnabledPlugins(); !reflect.DeepEqual(got, []string{"@capacitor/camera"}) {
		t.Errorf("EnabledPlugins() = %v", got)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "webcap.yaml", `
appId: com.example.shop
appName: Shop
webUrl: https://shop.example.com
webDir: build
plugins:
  "@capacitor/camera": true
permissions:
  camera: true
  microphone: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.WebDir != "build" {
		t.Errorf("WebDir = %q, want build", cfg.WebDir)
	}
	if got := cfg.EnabledPermissions(); !reflect.DeepEqual(got, []string{"camera"}) {
		t.Errorf("EnabledPermissions() = %v", got)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "webcap.toml", `appId = "x"`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestDiscoverOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "webcap.yaml", "appId: com.example.b\nappName: B\nwebUrl: https://b.example.com\n")
	writeFile(t, dir, "webcap.json", `{"appId":"com.example.a","appName":"A","webUrl":"https://a.example.com"}`)

	cfg, path, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if filepath.Base(path) != "webcap.json" {
		t.Errorf("discovered %s, want webcap.json first", path)
	}
	if cfg.AppID != "com.example.a" {
		t.Errorf("AppID = %q", cfg.AppID)
	}
}

func TestDiscoverMissing(t *testing.T) {
	_, _, err := Discover(t.TempDir())
	if err == nil {
		t.Fatal("expected error when no config exists")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{AppID: "com.example.app", AppName: "App", WebURL: "https://example.com"}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing appId", func(c *Config) { c.AppID = "" }, "appId"},
		{"appId whitespace", func(c *Config) { c.AppID = "com example" }, "appId"},
		{"missing appName", func(c *Config) { c.AppName = "" }, "appName"},
		{"missing webUrl", func(c *Config) { c.WebURL = "" }, "webUrl"},
		{"bad webUrl scheme", func(c *Config) { c.WebURL = "ftp://x" }, "webUrl"},
		{"bad backgroundColor", func(c *Config) { c.BackgroundColor = "red" }, "backgroundColor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
