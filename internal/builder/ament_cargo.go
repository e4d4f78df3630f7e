package builder

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rosbuild/cargows/internal/cargo"
	"github.com/rosbuild/cargows/internal/workspace"
)

// CargoExecutable is the external build tool this strategy shells out to.
const CargoExecutable = "cargo"

// amentBuildSubcommand is the cargo helper that builds and installs a
// package into an ament prefix.
const amentBuildSubcommand = "ament-build"

// AmentCargo builds packages that carry both a Cargo.toml and a
// package.xml. Before each build it resolves the package's dependency
// names to on-disk paths through the shared Resolver and rewrites
// .cargo/config.toml, because cargo needs paths where the workspace tool
// only tracks names.
type AmentCargo struct {
	Resolver *workspace.Resolver
	// Prefixes are the install prefixes from the environment
	// (AMENT_PREFIX_PATH), ordered lowest priority first.
	Prefixes []string
	// InstallBase and BuildBase are the workspace output roots, laid out
	// one subdirectory per package.
	InstallBase string
	BuildBase   string
	// LookupInWorkspace also resolves dependencies that are not installed
	// yet but present as workspace source.
	LookupInWorkspace bool
}

var _ Strategy = (*AmentCargo)(nil)

// Prepare resolves dependency paths for pkg and rewrites the patch config.
func (s *AmentCargo) Prepare(pkg *Package) error {
	if err := s.Resolver.Prepare(s.dependencyPrefixes(pkg), s.LookupInWorkspace); err != nil {
		return fmt.Errorf("preparing %s: %w", pkg.Name, err)
	}
	return nil
}

// dependencyPrefixes reconstructs the per-package prefix list: the
// environment's prefixes, plus the isolated install prefix of every
// declared dependency already present under the install base. Only the
// current package's dependencies are exposed to it this way; the
// environment part is assumed to be scoped by whoever sourced it.
func (s *AmentCargo) dependencyPrefixes(pkg *Package) []string {
	prefixes := append([]string{}, s.Prefixes...)

	deps := make([]string, 0, len(pkg.Deps))
	for dep := range pkg.Deps {
		deps = append(deps, dep)
	}
	sort.Strings(deps)

	for _, dep := range deps {
		p := filepath.Join(s.InstallBase, dep)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			prefixes = append(prefixes, p)
		}
	}
	return prefixes
}

// BuildCommand assembles the cargo ament-build invocation for pkg.
// Installation is done by the helper itself, so there is no separate
// install command.
func (s *AmentCargo) BuildCommand(pkg *Package, extraArgs []string) []string {
	argv := []string{
		CargoExecutable, amentBuildSubcommand,
		"--install-base", filepath.Join(s.InstallBase, pkg.Name),
		"--",
		"--manifest-path", filepath.Join(pkg.Path, cargo.ManifestFile),
		"--target-dir", filepath.Join(s.BuildBase, pkg.Name),
		"--quiet",
	}
	return append(argv, extraArgs...)
}

// TestCommand assembles the cargo test invocation for pkg. The tests were
// compiled during the build step, so no dependency management is needed.
func (s *AmentCargo) TestCommand(pkg *Package, extraArgs []string) []string {
	argv := []string{
		CargoExecutable, "test",
		"--manifest-path", filepath.Join(pkg.Path, cargo.ManifestFile),
		"--target-dir", filepath.Join(s.BuildBase, pkg.Name),
		"--quiet",
	}
	return append(argv, extraArgs...)
}

// CheckTools verifies the executables this strategy needs. A missing
// ament-build helper fails the build outright instead of silently skipping
// dependency resolution, since a skipped resolution surfaces later as a
// confusing registry error inside cargo.
func (s *AmentCargo) CheckTools() error {
	if _, err := exec.LookPath(CargoExecutable); err != nil {
		return fmt.Errorf("cargo executable not found in PATH: %w", err)
	}
	if !HasCargoSubcommand(amentBuildSubcommand) {
		return fmt.Errorf("cargo subcommand %q not found; install it with `cargo install cargo-ament-build`",
			amentBuildSubcommand)
	}
	return nil
}

// HasCargoSubcommand reports whether cargo knows the given subcommand,
// based on `cargo --list` output.
func HasCargoSubcommand(name string) bool {
	out, err := exec.Command(CargoExecutable, "--list").Output()
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == name {
			return true
		}
	}
	return false
}
