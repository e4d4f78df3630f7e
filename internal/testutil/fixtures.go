package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// CreatePrefix creates an install prefix in a temp directory and registers
// the given crate package names in its rust package index, including the
// share/<name>/rust payload directories the index points at.
// Returns the prefix path.
func CreatePrefix(t *testing.T, names ...string) string {
	t.Helper()
	prefix := t.TempDir()
	index := filepath.Join(prefix, "share", "ament_index", "resource_index", "rust_packages")
	if err := os.MkdirAll(index, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(index, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.MkdirAll(filepath.Join(prefix, "share", name, "rust"), 0755); err != nil {
			t.Fatal(err)
		}
	}
	return prefix
}

// CreateCratePackage writes a minimal Cargo.toml for a package named name
// under root/rel. Returns the package directory.
func CreateCratePackage(t *testing.T, root, rel, name string) string {
	t.Helper()
	dir := filepath.Join(root, rel)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := fmt.Sprintf("[package]\nname = %q\nversion = \"0.1.0\"\nedition = \"2021\"\n", name)
	if err := os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

// CreateAmentCargoPackage writes a Cargo.toml plus a package.xml with build
// type ament_cargo and the given <depend> entries under root/rel.
// Returns the package directory.
func CreateAmentCargoPackage(t *testing.T, root, rel, name string, deps ...string) string {
	t.Helper()
	dir := CreateCratePackage(t, root, rel, name)
	WriteDescriptor(t, dir, name, "ament_cargo", deps...)
	return dir
}

// WriteDescriptor writes a package.xml with the given name, build type and
// <depend> entries into dir.
func WriteDescriptor(t *testing.T, dir, name, buildType string, deps ...string) {
	t.Helper()
	content := "<?xml version=\"1.0\"?>\n<package format=\"3\">\n"
	content += fmt.Sprintf("  <name>%s</name>\n  <version>0.1.0</version>\n", name)
	for _, dep := range deps {
		content += fmt.Sprintf("  <depend>%s</depend>\n", dep)
	}
	if buildType != "" {
		content += fmt.Sprintf("  <export><build_type>%s</build_type></export>\n", buildType)
	}
	content += "</package>\n"
	if err := os.WriteFile(filepath.Join(dir, "package.xml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// Touch creates an empty marker file at dir/name.
func Touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
		t.Fatal(err)
	}
}
