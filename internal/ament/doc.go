// Package ament handles the workspace-tool side of a mixed workspace:
// scanning install prefixes for already-installed crate packages and
// parsing package.xml descriptors for package identification and declared
// dependency names.
package ament
