package ament

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rosbuild/cargows/internal/cargo"
)

// DescriptorFile is the package description file ament tooling looks for.
const DescriptorFile = "package.xml"

// BuildTypeCargo is the build type handled by this tool.
const BuildTypeCargo = "ament_cargo"

// defaultBuildType applies when package.xml declares no build type.
const defaultBuildType = "ament_package"

// Descriptor is the subset of package.xml this tool consumes: the package
// name, its declared build type, and dependency names by category.
type Descriptor struct {
	Name         string
	BuildType    string
	BuildDepends []string
	RunDepends   []string
	TestDepends  []string
}

// descriptorXML mirrors the package.xml elements of interest. A plain
// <depend> counts toward all three categories.
type descriptorXML struct {
	XMLName   xml.Name `xml:"package"`
	Name      string   `xml:"name"`
	Depends   []string `xml:"depend"`
	BuildDeps []string `xml:"build_depend"`
	ExecDeps  []string `xml:"exec_depend"`
	RunDeps   []string `xml:"run_depend"`
	TestDeps  []string `xml:"test_depend"`
	Export    struct {
		BuildType string `xml:"build_type"`
	} `xml:"export"`
}

// LoadDescriptor reads and parses the package.xml in dir.
func LoadDescriptor(dir string) (*Descriptor, error) {
	path := filepath.Join(dir, DescriptorFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}
	d, err := ParseDescriptor(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ParseDescriptor parses package.xml content.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	var raw descriptorXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing descriptor XML: %w", err)
	}
	if raw.Name == "" {
		return nil, fmt.Errorf("descriptor: name is required")
	}

	buildType := raw.Export.BuildType
	if buildType == "" {
		buildType = defaultBuildType
	}

	// run_depend is the format-1 spelling of exec_depend.
	runDeps := append([]string{}, raw.ExecDeps...)
	runDeps = append(runDeps, raw.RunDeps...)

	return &Descriptor{
		Name:         raw.Name,
		BuildType:    buildType,
		BuildDepends: append(append([]string{}, raw.Depends...), raw.BuildDeps...),
		RunDepends:   append(append([]string{}, raw.Depends...), runDeps...),
		TestDepends:  append(append([]string{}, raw.Depends...), raw.TestDeps...),
	}, nil
}

// DependencyNames returns the union of build, run and test dependency
// names as a set.
func (d *Descriptor) DependencyNames() map[string]bool {
	deps := make(map[string]bool)
	for _, group := range [][]string{d.BuildDepends, d.RunDepends, d.TestDepends} {
		for _, name := range group {
			deps[name] = true
		}
	}
	return deps
}

// IdentifyPackage reports whether dir holds an ament_cargo package: a
// package.xml with build type ament_cargo next to a Cargo.toml. It returns
// (nil, nil) for directories that are not ament_cargo packages (no
// descriptor, or a different build type). A descriptor that declares
// ament_cargo without a Cargo.toml is an error, not a silent skip.
func IdentifyPackage(dir string) (*Descriptor, error) {
	if _, err := os.Stat(filepath.Join(dir, DescriptorFile)); err != nil {
		return nil, nil
	}
	d, err := LoadDescriptor(dir)
	if err != nil {
		return nil, err
	}
	if d.BuildType != BuildTypeCargo {
		return nil, nil
	}
	if _, err := os.Stat(filepath.Join(dir, cargo.ManifestFile)); err != nil {
		return nil, fmt.Errorf("package %s declares build type %s but has no %s",
			d.Name, BuildTypeCargo, cargo.ManifestFile)
	}
	return d, nil
}
