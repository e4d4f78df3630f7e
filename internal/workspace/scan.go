package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/rosbuild/cargows/internal/cargo"
)

const (
	// InstallMarker identifies an install tree. Users often build a
	// workspace several times into differently named install directories,
	// so the configured install base alone is not enough to recognize one.
	InstallMarker = "setup.sh"
	// IgnoreMarker excludes a directory from scanning entirely. Build
	// trees in particular carry one.
	IgnoreMarker = "COLCON_IGNORE"
)

// ScanOptions names the output trees that must never be scanned.
type ScanOptions struct {
	BuildBase   string
	InstallBase string
}

// Scan walks the source tree under root depth-first and returns a map of
// crate package names to the directories holding their manifests.
//
// Pruning happens before any manifest is read, in this order: a directory
// that is the install base or carries an install marker is skipped, then a
// directory that is the build base or carries an ignore marker. Output
// trees hold thousands of irrelevant files including generated manifests,
// so descending into them would be both slow and wrong.
//
// Workspace-only and malformed manifests are discarded and the walk
// continues, descending further since crate packages may nest. I/O
// failures abort the scan: a partial result would leave unknown gaps in
// the patch table.
func Scan(root string, opts ScanOptions) (map[string]string, error) {
	buildBase := filepath.Clean(opts.BuildBase)
	installBase := filepath.Clean(opts.InstallBase)

	found := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		switch {
		case filepath.Clean(path) == installBase,
			fileExists(filepath.Join(path, InstallMarker)):
			return fs.SkipDir
		case filepath.Clean(path) == buildBase,
			fileExists(filepath.Join(path, IgnoreMarker)):
			return fs.SkipDir
		}

		manifestPath := filepath.Join(path, cargo.ManifestFile)
		if !fileExists(manifestPath) {
			return nil
		}
		name, kind, err := cargo.Classify(manifestPath)
		if err != nil {
			return err
		}
		if kind != cargo.KindPackage {
			log.Debug("skipping manifest", "path", manifestPath, "kind", kind)
			return nil
		}
		found[name] = path
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning workspace %s: %w", root, err)
	}
	return found, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
