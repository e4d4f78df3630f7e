package main

import (
	"testing"

	"github.com/rosbuild/cargows/internal/testutil"
)

// setupWorkspace creates a workspace with one ament_cargo package, one
// plain crate, and an install tree that must never be scanned.
// Returns the workspace root.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	testutil.CreateAmentCargoPackage(t, root, "src/nav_node", "nav_node", "rclrs")
	testutil.CreateCratePackage(t, root, "src/plain_crate", "plain_crate")
	testutil.CreateCratePackage(t, root, "install/leaked", "leaked")
	testutil.Touch(t, root+"/install", "setup.sh")
	return root
}
