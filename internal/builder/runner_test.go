package builder

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunner_run(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{Dir: t.TempDir(), Stdout: &out, Stderr: &out}

	if err := r.Run([]string{"sh", "-c", "echo built"}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "built" {
		t.Errorf("output = %q, want %q", got, "built")
	}
}

func TestRunner_missingExecutable(t *testing.T) {
	r := &Runner{}
	err := r.Run([]string{"cargows-no-such-tool"})
	if err == nil {
		t.Fatal("Run() should fail for a missing executable")
	}
	if !strings.Contains(err.Error(), "not found in PATH") {
		t.Errorf("error = %v, want a not-found message", err)
	}
}

func TestRunner_propagatesExitStatus(t *testing.T) {
	r := &Runner{}
	if err := r.Run([]string{"sh", "-c", "exit 3"}); err == nil {
		t.Fatal("Run() should propagate a non-zero exit status")
	}
}

func TestRunner_emptyCommand(t *testing.T) {
	r := &Runner{}
	if err := r.Run(nil); err == nil {
		t.Fatal("Run() should reject an empty command")
	}
}
