package main

import (
	"encoding/json"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rosbuild/cargows/internal/ament"
	"github.com/rosbuild/cargows/internal/ui"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List discoverable crate packages and where they resolve to",
		RunE:  runScan,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type packageInfo struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Path   string `json:"path"`
}

func runScan(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	app, err := newAppContext(cmd, true)
	if err != nil {
		return err
	}

	crates, err := app.strategy.Resolver.WorkspacePackages()
	if err != nil {
		return err
	}
	prefixes := append([]string{}, app.strategy.Prefixes...)
	prefixes = append(prefixes, installPrefixes(app.strategy.InstallBase)...)
	installed, err := ament.ResolveInstalled(prefixes)
	if err != nil {
		return err
	}

	// Same precedence as the patch table: installed wins over source.
	byName := map[string]packageInfo{}
	for name, path := range crates {
		byName[name] = packageInfo{Name: name, Source: "workspace", Path: path}
	}
	for name, path := range installed {
		byName[name] = packageInfo{Name: name, Source: "installed", Path: path}
	}

	infos := make([]packageInfo, 0, len(byName))
	for _, info := range byName {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tbl := ui.NewTable(out, "NAME", "SOURCE", "PATH")
	for _, info := range infos {
		tbl.Row(info.Name, info.Source, info.Path)
	}
	return tbl.Flush()
}
