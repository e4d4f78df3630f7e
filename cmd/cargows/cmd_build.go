package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rosbuild/cargows/internal/builder"
	"github.com/rosbuild/cargows/internal/ui"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [path...] [-- <cargo args...>]",
		Short: "Resolve dependency paths and build ament_cargo packages",
		Long: "Build resolves each package's dependency names to on-disk paths,\n" +
			"rewrites .cargo/config.toml, and runs cargo ament-build. With no\n" +
			"paths, every ament_cargo package in the workspace is built.",
		RunE: runBuild,
	}
	cmd.Flags().Bool("lookup-in-workspace", false,
		"Look up dependencies in the workspace source tree, not only in install prefixes")
	cmd.Flags().Bool("pick", false, "Pick a single package interactively")
	return cmd
}

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [path...] [-- <cargo args...>]",
		Short: "Run the tests of ament_cargo packages",
		Long: "Test runs cargo test against packages already compiled by build;\n" +
			"no dependency resolution is needed at this point.",
		RunE: runTest,
	}
	cmd.Flags().Bool("pick", false, "Pick a single package interactively")
	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	return runPackages(cmd, args, false)
}

func runTest(cmd *cobra.Command, args []string) error {
	return runPackages(cmd, args, true)
}

// runPackages drives build or test over the selected packages, one at a
// time in name order.
func runPackages(cmd *cobra.Command, args []string, testOnly bool) error {
	lookup := false
	if f := cmd.Flags().Lookup("lookup-in-workspace"); f != nil {
		lookup, _ = cmd.Flags().GetBool("lookup-in-workspace")
	}
	app, err := newAppContext(cmd, lookup)
	if err != nil {
		return err
	}

	pkgPaths, extraArgs := splitDashArgs(cmd, args)
	extraArgs = append(append([]string{}, app.cfg.CargoArgs...), extraArgs...)

	pkgs, err := selectPackages(cmd, app, pkgPaths)
	if err != nil {
		return err
	}
	if len(pkgs) == 0 {
		return fmt.Errorf("no ament_cargo packages found in %s", app.root)
	}

	if !testOnly {
		if err := app.strategy.CheckTools(); err != nil {
			return err
		}
	}

	progress := ui.NewProgress(cmd.ErrOrStderr(), len(pkgs))
	for _, pkg := range pkgs {
		if testOnly {
			progress.Step("Testing %s", pkg.Name)
			if err := app.executor.Test(pkg, extraArgs); err != nil {
				return fmt.Errorf("testing %s: %w", pkg.Name, err)
			}
		} else {
			progress.Step("Building %s", pkg.Name)
			if err := app.executor.Build(pkg, extraArgs); err != nil {
				return fmt.Errorf("building %s: %w", pkg.Name, err)
			}
		}
	}
	return nil
}

// selectPackages turns path arguments into packages, or falls back to
// workspace discovery (optionally narrowed by the interactive picker).
func selectPackages(cmd *cobra.Command, app *appContext, pkgPaths []string) ([]*builder.Package, error) {
	if len(pkgPaths) > 0 {
		pkgs := make([]*builder.Package, 0, len(pkgPaths))
		for _, p := range pkgPaths {
			pkg, err := packageAt(p)
			if err != nil {
				return nil, err
			}
			pkgs = append(pkgs, pkg)
		}
		return pkgs, nil
	}

	pkgs, err := app.discoverPackages()
	if err != nil {
		return nil, err
	}

	pick, _ := cmd.Flags().GetBool("pick")
	if !pick || len(pkgs) == 0 {
		return pkgs, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("--pick requires a TTY; pass a package path instead")
	}

	names := make([]string, len(pkgs))
	for i, pkg := range pkgs {
		names[i] = pkg.Name
	}
	chosen, err := promptPackage(names)
	if err != nil {
		return nil, err
	}
	for _, pkg := range pkgs {
		if pkg.Name == chosen {
			return []*builder.Package{pkg}, nil
		}
	}
	return nil, fmt.Errorf("package %q not found", chosen)
}

// splitDashArgs separates package paths from cargo pass-through arguments
// at the "--" marker.
func splitDashArgs(cmd *cobra.Command, args []string) (paths, extra []string) {
	if at := cmd.ArgsLenAtDash(); at >= 0 {
		return args[:at], args[at:]
	}
	return args, nil
}
