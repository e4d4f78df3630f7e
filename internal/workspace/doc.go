// Package workspace discovers crate packages in a mixed source tree and
// carries the per-run resolution state. The scanner walks the tree once,
// pruning install and build output directories; the Resolver caches that
// walk and accumulates the patch table that maps dependency names to
// on-disk paths.
package workspace
