package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosbuild/cargows/internal/cargo"
)

func newPrepareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Write the .cargo/config.toml dependency patch table without building",
		Long: "Prepare resolves every discoverable package path (installed and, by\n" +
			"default, workspace source) and rewrites .cargo/config.toml. Useful\n" +
			"for setting up subsequent builds with plain cargo.",
		RunE: runPrepare,
	}
	cmd.Flags().Bool("no-workspace-lookup", false,
		"Only resolve installed packages, skip the source tree scan")
	return cmd
}

func runPrepare(cmd *cobra.Command, _ []string) error {
	noLookup, _ := cmd.Flags().GetBool("no-workspace-lookup")
	app, err := newAppContext(cmd, !noLookup)
	if err != nil {
		return err
	}

	// Standalone prepare is not scoped to one package, so expose the
	// environment's prefixes plus every isolated prefix under the install
	// base.
	prefixes := append([]string{}, app.strategy.Prefixes...)
	prefixes = append(prefixes, installPrefixes(app.strategy.InstallBase)...)

	if err := app.strategy.Resolver.Prepare(prefixes, !noLookup); err != nil {
		return err
	}

	table := app.strategy.Resolver.Snapshot()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n",
		len(table), cargo.ConfigPath(app.root))
	return nil
}
