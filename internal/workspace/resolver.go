package workspace

import (
	"sync"

	"github.com/rosbuild/cargows/internal/ament"
	"github.com/rosbuild/cargows/internal/cargo"
)

// Resolver owns the dependency-resolution state for one run: the lazily
// computed workspace scan (at most one tree walk per run) and the
// accumulated patch table behind .cargo/config.toml. Create one per run
// and share it across package preparations.
type Resolver struct {
	root string
	opts ScanOptions

	scanOnce sync.Once
	scanned  map[string]string
	scanErr  error

	mu    sync.Mutex
	table cargo.PatchTable
}

// NewResolver creates a resolver for the workspace at root.
func NewResolver(root string, opts ScanOptions) *Resolver {
	return &Resolver{root: root, opts: opts, table: cargo.PatchTable{}}
}

// WorkspacePackages returns the workspace scan result, walking the source
// tree on first use only. Repeated calls return the cached map.
func (r *Resolver) WorkspacePackages() (map[string]string, error) {
	r.scanOnce.Do(func() {
		r.scanned, r.scanErr = Scan(r.root, r.opts)
	})
	return r.scanned, r.scanErr
}

// Prepare resolves dependency paths for one package and rewrites the patch
// config under the resolver's root. Workspace-sourced paths only fill
// names the table does not know yet; installed-prefix paths are merged on
// top of everything. An installed artifact is authoritative once present,
// and no later workspace merge may displace it. Merge and write form one
// critical section so concurrent callers cannot interleave
// read-modify-write cycles on the config file.
//
// The table accumulates across calls: the config written for the last
// package of a run covers every crate seen during that run, which is what
// lets plain cargo work in the workspace afterwards.
func (r *Resolver) Prepare(prefixes []string, lookupInWorkspace bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lookupInWorkspace {
		fromWorkspace, err := r.WorkspacePackages()
		if err != nil {
			return err
		}
		for name, path := range fromWorkspace {
			if _, ok := r.table[name]; !ok {
				r.table[name] = path
			}
		}
	}

	installed, err := ament.ResolveInstalled(prefixes)
	if err != nil {
		return err
	}
	r.table.Merge(installed)

	return cargo.WriteConfig(r.root, r.table)
}

// Snapshot returns a copy of the accumulated patch table.
func (r *Resolver) Snapshot() cargo.PatchTable {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(cargo.PatchTable, len(r.table))
	for name, path := range r.table {
		out[name] = path
	}
	return out
}
