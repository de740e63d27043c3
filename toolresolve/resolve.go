// Package toolresolve finds the toolchain binaries (node, npm, npx, java)
// by searching the system PATH plus well-known extra install paths, e.g.
// ~/.local/bin and nvm-managed node directories.
//
// The process's own PATH environment variable is never modified. Callers
// spawning subprocesses should use AppendExtraPaths to build the child's
// env instead.
package toolresolve

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ExtraPaths are common install directories that may not be in the
// process's PATH but where node toolchains are commonly installed.
var ExtraPaths = []string{
	"/usr/local/bin",
	"/opt/homebrew/bin",
}

func init() {
	if home, err := os.UserHomeDir(); err == nil {
		ExtraPaths = append(ExtraPaths,
			filepath.Join(home, ".local", "bin"),
			filepath.Join(home, ".bun", "bin"),
			filepath.Join(home, ".volta", "bin"),
		)
		// nvm keeps each node version in its own bin directory
		ExtraPaths = append(ExtraPaths, nvmVersionDirs(home)...)
	}
	// npm's global bin directory varies by install method
	if out, err := exec.Command("npm", "bin", "-g").Output(); err == nil {
		npmBin := strings.TrimSpace(string(out))
		if npmBin != "" {
			ExtraPaths = append(ExtraPaths, npmBin)
		}
	}
}

// nvmVersionDirs lists ~/.nvm/versions/node/*/bin, highest version first.
func nvmVersionDirs(home string) []string {
	base := filepath.Join(home, ".nvm", "versions", "node")
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil
	}
	var versions []string
	for _, e := range entries {
		if e.IsDir() {
			versions = append(versions, e.Name())
		}
	}
	sort.Slice(versions, func(i, j int) bool {
		return ExtractMajorVersion(versions[i]) > ExtractMajorVersion(versions[j])
	})
	var dirs []string
	for _, v := range versions {
		dirs = append(dirs, filepath.Join(base, v, "bin"))
	}
	return dirs
}

// ExtractMajorVersion extracts the major version number from a version
// string such as "v22.1.0" or "18.17.1".
func ExtractMajorVersion(version string) int {
	version = strings.TrimPrefix(version, "v")
	parts := strings.Split(version, ".")
	if len(parts) == 0 {
		return 0
	}
	major, _ := strconv.Atoi(parts[0])
	return major
}

// CompareVersions returns true if v1 > v2, comparing major versions.
func CompareVersions(v1, v2 string) bool {
	return ExtractMajorVersion(v1) > ExtractMajorVersion(v2)
}

// FullSearchPATH returns the system PATH plus all extra paths, deduplicated,
// preserving PATH order first so explicit user setup wins.
func FullSearchPATH() string {
	seen := make(map[string]bool)
	var result []string
	add := func(p string) {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		result = append(result, p)
	}
	for _, p := range strings.Split(os.Getenv("PATH"), string(os.PathListSeparator)) {
		add(p)
	}
	for _, p := range ExtraPaths {
		add(p)
	}
	return strings.Join(result, string(os.PathListSeparator))
}

// LookPath finds the named binary in the combined search path.
func LookPath(name string) (string, error) {
	if strings.ContainsRune(name, os.PathSeparator) {
		if isExecutable(name) {
			return name, nil
		}
		return "", &lookPathError{name: name}
	}
	for _, dir := range strings.Split(FullSearchPATH(), string(os.PathListSeparator)) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", &lookPathError{name: name}
}

// IsAvailable returns true if the named binary can be found.
func IsAvailable(name string) bool {
	_, err := LookPath(name)
	return err == nil
}

// Version runs the binary with --version and returns the trimmed output.
func Version(name string) (string, error) {
	path, err := LookPath(name)
	if err != nil {
		return "", err
	}
	out, err := exec.Command(path, "--version").CombinedOutput()
	if err != nil {
		return "", err
	}
	// java prints a multi-line banner; the first line is enough
	line := strings.TrimSpace(string(out))
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	return line, nil
}

// AppendExtraPaths replaces the PATH entry in env with the full search
// path, so children see the same toolchain that webcap resolved.
func AppendExtraPaths(env []string) []string {
	fullPath := FullSearchPATH()
	for i, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			env[i] = "PATH=" + fullPath
			return env
		}
	}
	return append(env, "PATH="+fullPath)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	return info.Mode()&0111 != 0
}

// lookPathError matches the shape of exec.ErrNotFound failures.
type lookPathError struct {
	name string
}

func (e *lookPathError) Error() string {
	return "executable file not found in PATH: " + e.name
}
