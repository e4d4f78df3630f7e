package ament

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// PrefixPathVar is the environment variable listing install prefixes,
// highest priority last (later entries win on duplicates).
const PrefixPathVar = "AMENT_PREFIX_PATH"

// rustIndexDir is the resource index that registers installed crate
// packages, relative to an install prefix.
const rustIndexDir = "share/ament_index/resource_index/rust_packages"

// SplitPrefixPath splits an AMENT_PREFIX_PATH-style value on the OS path
// list separator, dropping empty entries.
func SplitPrefixPath(value string) []string {
	var prefixes []string
	for _, p := range filepath.SplitList(value) {
		if p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return prefixes
}

// ResolveInstalled finds crate packages already installed under the given
// prefixes. A name registered under the rust package index of a prefix
// resolves to <prefix>/share/<name>/rust. Prefixes without an index
// contribute nothing; duplicate names resolve to the prefix seen last.
//
// An empty prefix list is not an error. It yields an empty map with a
// warning, since a package may simply have no external dependencies.
func ResolveInstalled(prefixes []string) (map[string]string, error) {
	if len(prefixes) == 0 {
		log.Warn("no install prefixes to scan; you probably intended to source a ROS installation",
			"var", PrefixPathVar)
		return map[string]string{}, nil
	}

	prefixFor := map[string]string{}
	for _, prefix := range prefixes {
		indexDir := filepath.Join(prefix, filepath.FromSlash(rustIndexDir))
		entries, err := os.ReadDir(indexDir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading package index %s: %w", indexDir, err)
		}
		for _, e := range entries {
			prefixFor[e.Name()] = prefix
		}
	}

	resolved := make(map[string]string, len(prefixFor))
	for name, prefix := range prefixFor {
		resolved[name] = filepath.Join(prefix, "share", name, "rust")
	}
	return resolved, nil
}
