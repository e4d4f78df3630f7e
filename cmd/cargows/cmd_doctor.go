package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/rosbuild/cargows/internal/ament"
	"github.com/rosbuild/cargows/internal/builder"
	"github.com/rosbuild/cargows/internal/cargo"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment for common issues",
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	ok := true
	out := cmd.OutOrStdout()

	// Check cargo.
	fmt.Fprint(out, "Checking cargo... ")
	cargoPath, err := exec.LookPath(builder.CargoExecutable)
	if err != nil {
		fmt.Fprintln(out, "NOT FOUND")
		fmt.Fprintln(out, "  cargo is required. Install it from https://rustup.rs/")
		ok = false
	} else {
		fmt.Fprintf(out, "found at %s\n", cargoPath)
	}

	// Check the ament-build helper.
	if err == nil {
		fmt.Fprint(out, "Checking cargo ament-build... ")
		if builder.HasCargoSubcommand("ament-build") {
			fmt.Fprintln(out, "found")
		} else {
			fmt.Fprintln(out, "NOT FOUND")
			fmt.Fprintln(out, "  Install it with `cargo install cargo-ament-build`")
			ok = false
		}
	}

	// Check the prefix environment. Missing is a warning, not a failure:
	// a workspace without external dependencies builds fine without it.
	fmt.Fprintf(out, "Checking %s... ", ament.PrefixPathVar)
	prefixes := ament.SplitPrefixPath(os.Getenv(ament.PrefixPathVar))
	if len(prefixes) == 0 {
		fmt.Fprintln(out, "not set (source your ROS installation to resolve installed dependencies)")
	} else {
		fmt.Fprintf(out, "%d prefixes\n", len(prefixes))
	}

	// Check the workspace.
	app, err := newAppContext(cmd, true)
	if err != nil {
		return err
	}
	pkgs, err := app.discoverPackages()
	if err != nil {
		fmt.Fprintf(out, "Workspace scan failed: %v\n", err)
		ok = false
	} else {
		fmt.Fprintf(out, "Workspace: %d %s packages under %s\n",
			len(pkgs), ament.BuildTypeCargo, app.root)
	}

	// Check an existing patch config, if any.
	configPath := cargo.ConfigPath(app.root)
	if _, statErr := os.Stat(configPath); errors.Is(statErr, fs.ErrNotExist) {
		fmt.Fprintln(out, "No .cargo/config.toml yet (run `cargows prepare` to create one)")
	} else {
		fmt.Fprint(out, "Checking .cargo/config.toml... ")
		table, readErr := cargo.ReadConfig(configPath)
		if readErr != nil {
			fmt.Fprintf(out, "UNPARSEABLE: %v\n", readErr)
			ok = false
		} else {
			fmt.Fprintf(out, "%d entries\n", len(table))
		}
	}

	if ok {
		fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}
