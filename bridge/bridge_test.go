package bridge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/xhd2015/webcap/config"
)

func readBridgeConfig(t *testing.T, dir string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if err != nil {
		t.Fatalf("read bridge config: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("parse bridge config: %v", err)
	}
	return m
}

func testConfig() *config.Config {
	return &config.Config{
		AppID:   "com.example.app",
		AppName: "App",
		WebURL:  "https://app.example.com",
	}
}

func TestSyncCreatesConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.BackgroundColor = "#336699"

	if err := Sync(dir, cfg); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	m := readBridgeConfig(t, dir)
	if m["appId"] != "com.example.app" || m["appName"] != "App" {
		t.Errorf("identity not written: %v", m)
	}
	if m["webDir"] != config.DefaultWebDir {
		t.Errorf("webDir = %v", m["webDir"])
	}
	if m["backgroundColor"] != "#336699" {
		t.Errorf("backgroundColor = %v", m["backgroundColor"])
	}
	server, _ := m["server"].(map[string]interface{})
	if server == nil {
		t.Fatal("server block missing")
	}
	if server["url"] != "https://app.example.com" {
		t.Errorf("server.url = %v", server["url"])
	}
	if server["cleartext"] != true {
		t.Errorf("server.cleartext = %v, want true", server["cleartext"])
	}
}

func TestSyncOverwritesStaleURL(t *testing.T) {
	dir := t.TempDir()
	if err := Sync(dir, testConfig()); err != nil {
		t.Fatalf("first Sync failed: %v", err)
	}

	cfg := testConfig()
	cfg.WebURL = "https://next.example.com"
	if err := Sync(dir, cfg); err != nil {
		t.Fatalf("second Sync failed: %v", err)
	}

	server := readBridgeConfig(t, dir)["server"].(map[string]interface{})
	if server["url"] != "https://next.example.com" {
		t.Errorf("server.url = %v, want latest app config URL", server["url"])
	}
}

func TestSyncPreservesUnrelatedKeys(t *testing.T) {
	dir := t.TempDir()
	existing := `{
  "appId": "old.id",
  "android": {"allowMixedContent": true},
  "server": {"androidScheme": "https"}
}`
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(existing), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Sync(dir, testConfig()); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	m := readBridgeConfig(t, dir)
	if m["appId"] != "com.example.app" {
		t.Errorf("appId not overwritten: %v", m["appId"])
	}
	androidBlock, _ := m["android"].(map[string]interface{})
	if androidBlock == nil || androidBlock["allowMixedContent"] != true {
		t.Errorf("unrelated android block lost: %v", m["android"])
	}
	server := m["server"].(map[string]interface{})
	if server["androidScheme"] != "https" {
		t.Errorf("unrelated server key lost: %v", server)
	}
}

func TestSyncRemovesBackgroundColor(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.BackgroundColor = "#000000"
	if err := Sync(dir, cfg); err != nil {
		t.Fatal(err)
	}
	if err := Sync(dir, testConfig()); err != nil {
		t.Fatal(err)
	}
	if _, ok := readBridgeConfig(t, dir)["backgroundColor"]; ok {
		t.Error("backgroundColor should be removed when unset in app config")
	}
}
