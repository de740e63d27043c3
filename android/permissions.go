package android

import (
	"fmt"
	"sort"
	"strings"
)

// permissionTable maps config permission identifiers to the Android
// permissions they declare. Identifiers outside this table are rejected
// at validation so arbitrary lines never reach the manifest.
var permissionTable = map[string][]string{
	"camera":        {"android.permission.CAMERA"},
	"microphone":    {"android.permission.RECORD_AUDIO"},
	"location":      {"android.permission.ACCESS_COARSE_LOCATION"},
	"fine-location": {"android.permission.ACCESS_FINE_LOCATION"},
	"notifications": {"android.permission.POST_NOTIFICATIONS"},
	"storage": {
		"android.permission.READ_EXTERNAL_STORAGE",
		"android.permission.WRITE_EXTERNAL_STORAGE",
	},
	"contacts": {"android.permission.READ_CONTACTS"},
	"bluetooth": {
		"android.permission.BLUETOOTH_CONNECT",
		"android.permission.BLUETOOTH_SCAN",
	},
}

// ValidatePermissions checks that every configured identifier is known.
func ValidatePermissions(configured map[string]bool) error {
	var unknown []string
	for id := range configured {
		if _, ok := permissionTable[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown permission identifier(s): %s (known: %s)",
			strings.Join(unknown, ", "), strings.Join(KnownPermissions(), ", "))
	}
	return nil
}

// KnownPermissions lists the accepted permission identifiers, sorted.
func KnownPermissions() []string {
	ids := make([]string, 0, len(permissionTable))
	for id := range permissionTable {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PermissionTags returns the manifest uses-permission tags for the
// enabled identifiers, sorted and deduplicated.
func PermissionTags(configured map[string]bool) []string {
	seen := make(map[string]bool)
	var tags []string
	for id, enabled := range configured {
		if !enabled {
			continue
		}
		for _, perm := range permissionTable[id] {
			tag := fmt.Sprintf(`<uses-permission android:name=%q />`, perm)
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}
