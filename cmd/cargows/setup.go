package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rosbuild/cargows/internal/ament"
	"github.com/rosbuild/cargows/internal/builder"
	"github.com/rosbuild/cargows/internal/config"
	"github.com/rosbuild/cargows/internal/workspace"
)

// appContext carries the resolved workspace paths and the shared
// resolution state for one invocation. Every command goes through here so
// that the workspace scan runs at most once per process.
type appContext struct {
	root     string
	cfg      *config.Config
	strategy *builder.AmentCargo
	executor *builder.Executor
}

func newAppContext(cmd *cobra.Command, lookupInWorkspace bool) (*appContext, error) {
	rootFlag, _ := cmd.Flags().GetString("root")
	root, err := filepath.Abs(rootFlag)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("build-base"); v != "" {
		cfg.BuildBase = v
	}
	if v, _ := cmd.Flags().GetString("install-base"); v != "" {
		cfg.InstallBase = v
	}

	opts := workspace.ScanOptions{
		BuildBase:   joinRoot(root, cfg.BuildBase),
		InstallBase: joinRoot(root, cfg.InstallBase),
	}
	strategy := &builder.AmentCargo{
		Resolver:          workspace.NewResolver(root, opts),
		Prefixes:          ament.SplitPrefixPath(os.Getenv(ament.PrefixPathVar)),
		InstallBase:       opts.InstallBase,
		BuildBase:         opts.BuildBase,
		LookupInWorkspace: lookupInWorkspace || cfg.LookupInWorkspace,
	}
	executor := &builder.Executor{
		Strategy: strategy,
		Runner: &builder.Runner{
			Dir:    root,
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		},
	}

	return &appContext{root: root, cfg: cfg, strategy: strategy, executor: executor}, nil
}

func joinRoot(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// discoverPackages finds every ament_cargo package in the workspace,
// sorted by name. The underlying tree walk is cached, so later prepare
// steps reuse it.
func (a *appContext) discoverPackages() ([]*builder.Package, error) {
	crates, err := a.strategy.Resolver.WorkspacePackages()
	if err != nil {
		return nil, err
	}

	var pkgs []*builder.Package
	for _, dir := range crates {
		d, err := ament.IdentifyPackage(dir)
		if err != nil {
			return nil, err
		}
		if d == nil {
			continue
		}
		pkgs = append(pkgs, &builder.Package{Name: d.Name, Path: dir, Deps: d.DependencyNames()})
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Name < pkgs[j].Name })
	return pkgs, nil
}

// packageAt resolves one path argument into a buildable package.
func packageAt(dir string) (*builder.Package, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	d, err := ament.IdentifyPackage(abs)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%s is not an %s package", dir, ament.BuildTypeCargo)
	}
	return &builder.Package{Name: d.Name, Path: abs, Deps: d.DependencyNames()}, nil
}

// installPrefixes lists the isolated per-package prefixes under the
// install base. A missing install base contributes nothing.
func installPrefixes(installBase string) []string {
	entries, err := os.ReadDir(installBase)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, filepath.Join(installBase, e.Name()))
		}
	}
	return out
}
