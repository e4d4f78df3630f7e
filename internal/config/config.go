package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the optional per-workspace defaults file.
const FileName = ".cargows.yaml"

// Config holds workspace-level defaults. Command-line flags override any
// value set here.
type Config struct {
	BuildBase         string   `yaml:"build_base,omitempty"`
	InstallBase       string   `yaml:"install_base,omitempty"`
	LookupInWorkspace bool     `yaml:"lookup_in_workspace,omitempty"`
	CargoArgs         []string `yaml:"cargo_args,omitempty"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{BuildBase: "build", InstallBase: "install"}
}

// Load reads <root>/.cargows.yaml. A missing file is not an error: the
// built-in defaults apply.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}
	return Parse(data)
}

// Parse parses and validates defaults-file content. Unset fields fall back
// to the built-in defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if err := validatePath(cfg.BuildBase, "build_base"); err != nil {
		return err
	}
	return validatePath(cfg.InstallBase, "install_base")
}

// validatePath ensures an output base is relative and stays inside the
// workspace.
func validatePath(p, label string) error {
	if p == "" {
		return fmt.Errorf("%s: %s must not be empty", FileName, label)
	}
	if filepath.IsAbs(p) {
		return fmt.Errorf("%s: %s: absolute path is not allowed: %s", FileName, label, p)
	}
	cleaned := filepath.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%s: %s: path must not escape workspace (contains ..): %s", FileName, label, p)
	}
	return nil
}
