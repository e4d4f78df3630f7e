package cargo

import (
	"os"
	"path/filepath"
	"testing"
)

// writeManifest is a test helper that writes a Cargo.toml into dir.
func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return path
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantName string
		wantKind Kind
	}{
		{
			name:     "package",
			content:  "[package]\nname = \"foo\"\nversion = \"0.1.0\"\n",
			wantName: "foo",
			wantKind: KindPackage,
		},
		{
			name:     "workspace only",
			content:  "[workspace]\nmembers = [\"a\", \"b\"]\n",
			wantKind: KindVirtual,
		},
		{
			name:     "package table without name",
			content:  "[package]\nversion = \"0.1.0\"\n",
			wantKind: KindVirtual,
		},
		{
			name:     "malformed",
			content:  "[package\nname = foo",
			wantKind: KindMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.content)
			name, kind, err := Classify(path)
			if err != nil {
				t.Fatalf("Classify() error: %v", err)
			}
			if kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", kind, tt.wantKind)
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
		})
	}
}

func TestClassify_missingFile(t *testing.T) {
	_, _, err := Classify(filepath.Join(t.TempDir(), ManifestFile))
	if err == nil {
		t.Fatal("Classify() should report I/O errors for missing files")
	}
}
