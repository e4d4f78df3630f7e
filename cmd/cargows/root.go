package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cargows",
		Short:   "Build cargo packages inside an ament workspace",
		Version: version,
	}

	cmd.PersistentFlags().String("root", ".", "Workspace root directory")
	cmd.PersistentFlags().String("build-base", "", "Build output directory relative to the root (default \"build\")")
	cmd.PersistentFlags().String("install-base", "", "Install output directory relative to the root (default \"install\")")

	cmd.AddCommand(
		newBuildCmd(),
		newTestCmd(),
		newPrepareCmd(),
		newScanCmd(),
		newDoctorCmd(),
	)

	return cmd
}
