package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rosbuild/cargows/internal/ament"
	"github.com/rosbuild/cargows/internal/cargo"
	"github.com/rosbuild/cargows/internal/testutil"
)

func TestRunPrepare_writesConfig(t *testing.T) {
	prefix := testutil.CreatePrefix(t, "rclrs")
	t.Setenv(ament.PrefixPathVar, prefix)
	wsDir := setupWorkspace(t)

	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetArgs([]string{"--root", wsDir, "prepare"})
	if err := root.Execute(); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	table, err := cargo.ReadConfig(cargo.ConfigPath(wsDir))
	if err != nil {
		t.Fatalf("ReadConfig() error: %v", err)
	}
	if table["rclrs"] != filepath.Join(prefix, "share", "rclrs", "rust") {
		t.Errorf("rclrs = %q, want installed path", table["rclrs"])
	}
	if table["nav_node"] != filepath.Join(wsDir, "src", "nav_node") {
		t.Errorf("nav_node = %q, want workspace path", table["nav_node"])
	}
	if _, ok := table["leaked"]; ok {
		t.Error("install-tree package leaked into the patch table")
	}
	if !strings.Contains(buf.String(), "entries") {
		t.Errorf("prepare output missing summary: %s", buf.String())
	}
}

func TestRunPrepare_noWorkspaceLookup(t *testing.T) {
	prefix := testutil.CreatePrefix(t, "rclrs")
	t.Setenv(ament.PrefixPathVar, prefix)
	wsDir := setupWorkspace(t)

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--root", wsDir, "prepare", "--no-workspace-lookup"})
	if err := root.Execute(); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	table, err := cargo.ReadConfig(cargo.ConfigPath(wsDir))
	if err != nil {
		t.Fatalf("ReadConfig() error: %v", err)
	}
	if _, ok := table["nav_node"]; ok {
		t.Error("workspace package resolved despite --no-workspace-lookup")
	}
	if _, ok := table["rclrs"]; !ok {
		t.Error("installed package missing from the patch table")
	}
}

func TestRunPrepare_emptyWorkspace(t *testing.T) {
	t.Setenv(ament.PrefixPathVar, "")
	wsDir := t.TempDir()

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--root", wsDir, "prepare"})
	if err := root.Execute(); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	// Empty everything still writes a valid, parseable config.
	table, err := cargo.ReadConfig(cargo.ConfigPath(wsDir))
	if err != nil {
		t.Fatalf("ReadConfig() error: %v", err)
	}
	if len(table) != 0 {
		t.Errorf("table = %v, want empty", table)
	}
}

func TestRunPrepare_isolatedInstallPrefixes(t *testing.T) {
	t.Setenv(ament.PrefixPathVar, "")
	wsDir := setupWorkspace(t)

	// An isolated prefix under the install base: install/rclrs with its own
	// package index.
	index := filepath.Join(wsDir, "install", "rclrs", "share", "ament_index", "resource_index", "rust_packages")
	testutil.Touch(t, index, "rclrs")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--root", wsDir, "prepare"})
	if err := root.Execute(); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	table, err := cargo.ReadConfig(cargo.ConfigPath(wsDir))
	if err != nil {
		t.Fatalf("ReadConfig() error: %v", err)
	}
	want := filepath.Join(wsDir, "install", "rclrs", "share", "rclrs", "rust")
	if table["rclrs"] != want {
		t.Errorf("rclrs = %q, want isolated install path %q", table["rclrs"], want)
	}
}
