package cargo

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ManifestFile is the file name cargo expects in a package directory.
const ManifestFile = "Cargo.toml"

// Kind classifies the outcome of reading a Cargo.toml.
type Kind int

const (
	// KindPackage is a manifest with a [package] table and a name.
	KindPackage Kind = iota
	// KindVirtual is valid TOML without a usable [package] table,
	// e.g. a workspace-only manifest.
	KindVirtual
	// KindMalformed is a manifest that does not parse as TOML.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindPackage:
		return "package"
	case KindVirtual:
		return "virtual"
	case KindMalformed:
		return "malformed"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// manifest mirrors the subset of Cargo.toml this tool reads.
type manifest struct {
	Package *struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

// Classify reads the Cargo.toml at path and reports whether it describes a
// single package. The returned name is non-empty only for KindPackage.
// The error is non-nil only for I/O failures; parse failures come back as
// KindMalformed so callers can discard them explicitly rather than abort.
func Classify(path string) (string, Kind, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", KindMalformed, fmt.Errorf("reading %s: %w", path, err)
	}
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return "", KindMalformed, nil
	}
	if m.Package == nil || m.Package.Name == "" {
		return "", KindVirtual, nil
	}
	return m.Package.Name, KindPackage, nil
}
