package android

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// SDKDir resolves the Android SDK location: ANDROID_SDK_ROOT first,
// then ANDROID_HOME, then the platform's conventional install directory.
func SDKDir() (string, error) {
	if dir := os.Getenv("ANDROID_SDK_ROOT"); dir != "" {
		return dir, nil
	}
	if dir := os.Getenv("ANDROID_HOME"); dir != "" {
		return dir, nil
	}
	return defaultSDKDir(runtime.GOOS)
}

func defaultSDKDir(goos string) (string, error) {
	switch goos {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			return "", fmt.Errorf("LOCALAPPDATA not set, cannot locate Android SDK")
		}
		return filepath.Join(localAppData, "Android", "Sdk"), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Android", "sdk"), nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Android", "Sdk"), nil
	}
}

// WriteLocalProperties rewrites android/local.properties with the
// resolved SDK location. The file is regenerated every run; gradle treats
// it as machine-local state.
func WriteLocalProperties(projectDir string) (string, error) {
	sdkDir, err := SDKDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(projectDir, PlatformDir, "local.properties")
	content := "sdk.dir=" + escapePropertiesValue(sdkDir) + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write local.properties: %w", err)
	}
	return sdkDir, nil
}

// escapePropertiesValue escapes backslashes for java .properties files
// (windows paths would otherwise be read as escape sequences).
func escapePropertiesValue(v string) string {
	return strings.ReplaceAll(v, `\`, `\\`)
}
