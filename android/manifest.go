package android

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ManifestPath returns the generated manifest location under projectDir.
func ManifestPath(projectDir string) string {
	return filepath.Join(projectDir, PlatformDir, "app", "src", "main", "AndroidManifest.xml")
}

// PatchManifest inserts the given uses-permission tags into the manifest,
// immediately before the closing </manifest> tag. Tags already present
// anywhere in the file are skipped, so re-running never duplicates an
// entry. Returns the number of tags inserted.
func PatchManifest(manifestPath string, tags []string) (int, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return 0, fmt.Errorf("read manifest: %w", err)
	}
	patched, inserted, err := patchManifestContent(string(data), tags)
	if err != nil {
		return 0, err
	}
	if inserted == 0 {
		return 0, nil
	}
	if err := os.WriteFile(manifestPath, []byte(patched), 0644); err != nil {
		return 0, fmt.Errorf("write manifest: %w", err)
	}
	return inserted, nil
}

func patchManifestContent(content string, tags []string) (string, int, error) {
	var missing []string
	for _, tag := range tags {
		if !strings.Contains(content, tag) {
			missing = append(missing, tag)
		}
	}
	if len(missing) == 0 {
		return content, 0, nil
	}

	closeIdx := strings.LastIndex(content, "</manifest>")
	if closeIdx < 0 {
		return "", 0, fmt.Errorf("manifest has no closing </manifest> tag")
	}

	// indent to match the closing tag's own indentation plus one level
	indent := lineIndent(content, closeIdx) + "    "

	var block strings.Builder
	for _, tag := range missing {
		block.WriteString(indent)
		block.WriteString(tag)
		block.WriteString("\n")
	}

	insertAt := closeIdx
	// back up over the closing tag's indentation so the block lands on
	// its own lines above it
	for insertAt > 0 && (content[insertAt-1] == ' ' || content[insertAt-1] == '\t') {
		insertAt--
	}

	patched := content[:insertAt] + block.String() + content[insertAt:]
	return patched, len(missing), nil
}

// lineIndent returns the whitespace prefix of the line containing idx.
func lineIndent(content string, idx int) string {
	start := strings.LastIndexByte(content[:idx], '\n') + 1
	end := start
	for end < len(content) && (content[end] == ' ' || content[end] == '\t') {
		end++
	}
	return content[start:end]
}
