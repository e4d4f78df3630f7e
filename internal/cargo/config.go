package cargo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// PatchTable maps crate package names to the directory holding their
// buildable source or installed artifact root. It only ever grows during a
// run: entries are replaced by later merges, never removed.
type PatchTable map[string]string

// Merge overlays incoming onto the table, replacing existing entries.
// Installed-package maps are merged last so that an installed artifact
// always wins over a stale workspace-sourced path.
func (t PatchTable) Merge(incoming map[string]string) {
	for name, path := range incoming {
		t[name] = path
	}
}

// configFile mirrors the on-disk layout:
//
//	[patch.crates-io.<name>]
//	path = "<absolute path>"
type configFile struct {
	Patch patchSection `toml:"patch"`
}

type patchSection struct {
	CratesIO map[string]patchEntry `toml:"crates-io"`
}

type patchEntry struct {
	Path string `toml:"path"`
}

// ConfigPath returns the patch config location for a workspace root.
func ConfigPath(root string) string {
	return filepath.Join(root, ".cargo", "config.toml")
}

// WriteConfig persists the table as <root>/.cargo/config.toml, creating the
// .cargo directory if needed. The file is written to a temp file and
// renamed into place, so cargo never observes a partial write, and any
// previous content is fully replaced.
func WriteConfig(root string, table PatchTable) error {
	entries := make(map[string]patchEntry, len(table))
	for name, path := range table {
		entries[name] = patchEntry{Path: path}
	}
	data, err := toml.Marshal(configFile{Patch: patchSection{CratesIO: entries}})
	if err != nil {
		return fmt.Errorf("marshaling cargo config: %w", err)
	}

	dir := filepath.Dir(ConfigPath(root))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "config-*.toml")
	if err != nil {
		return fmt.Errorf("creating temp config: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing cargo config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing cargo config: %w", err)
	}
	if err := os.Rename(tmpName, ConfigPath(root)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing cargo config: %w", err)
	}
	return nil
}

// ReadConfig parses a config file written by WriteConfig back into a table.
// A missing [patch.crates-io] section yields an empty table.
func ReadConfig(path string) (PatchTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cf configFile
	if err := toml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	table := make(PatchTable, len(cf.Patch.CratesIO))
	for name, entry := range cf.Patch.CratesIO {
		table[name] = entry.Path
	}
	return table, nil
}
