package toolresolve

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractMajorVersion(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"v22.1.0", 22},
		{"18.17.1", 18},
		{"v9", 9},
		{"", 0},
		{"garbage", 0},
	}
	for _, tt := range tests {
		if got := ExtractMajorVersion(tt.input); got != tt.want {
			t.Errorf("ExtractMajorVersion(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestCompareVersions(t *testing.T) {
	if !CompareVersions("v22.0.0", "16.17.1") {
		t.Error("v22 should compare greater than 16")
	}
	if CompareVersions("16.17.1", "v22.0.0") {
		t.Error("16 should not compare greater than v22")
	}
}

func TestFullSearchPATHIncludesExtras(t *testing.T) {
	full := FullSearchPATH()
	for _, p := range ExtraPaths {
		if !strings.Contains(full, p) {
			t.Errorf("FullSearchPATH missing extra path %s", p)
		}
	}
}

func TestAppendExtraPaths(t *testing.T) {
	env := []string{"HOME=/root", "PATH=/usr/bin"}
	out := AppendExtraPaths(env)

	var pathEntry string
	for _, e := range out {
		if strings.HasPrefix(e, "PATH=") {
			if pathEntry != "" {
				t.Fatal("duplicate PATH entry")
			}
			pathEntry = e
		}
	}
	if pathEntry == "" {
		t.Fatal("no PATH entry")
	}
	if !strings.Contains(pathEntry, "/usr/bin") {
		t.Errorf("original PATH lost: %s", pathEntry)
	}

	out = AppendExtraPaths([]string{"HOME=/root"})
	if !strings.HasPrefix(out[len(out)-1], "PATH=") {
		t.Error("PATH not appended when absent")
	}
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "webcap-test-tool")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}

	// direct path lookup
	got, err := LookPath(bin)
	if err != nil {
		t.Fatalf("LookPath(%s): %v", bin, err)
	}
	if got != bin {
		t.Errorf("LookPath = %q, want %q", got, bin)
	}

	// search via extra paths
	ExtraPaths = append(ExtraPaths, dir)
	defer func() { ExtraPaths = ExtraPaths[:len(ExtraPaths)-1] }()

	got, err = LookPath("webcap-test-tool")
	if err != nil {
		t.Fatalf("LookPath by name: %v", err)
	}
	if got != bin {
		t.Errorf("LookPath = %q, want %q", got, bin)
	}

	if _, err := LookPath("definitely-not-installed-tool"); err == nil {
		t.Error("expected error for unknown tool")
	}
}

func TestLookPathRejectsNonExecutable(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LookPath(file); err == nil {
		t.Error("non-executable file should not resolve")
	}
}
