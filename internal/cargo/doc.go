// Package cargo handles the crate side of a mixed workspace: classifying
// Cargo.toml manifests and maintaining the [patch.crates-io] section of
// .cargo/config.toml that redirects dependency names to local paths.
package cargo
