package ui

import (
	"fmt"
	"io"
)

// Progress prints numbered [n/total] lines for a sequence of package
// builds. Packages build one at a time, so no synchronization is needed.
type Progress struct {
	out   io.Writer
	total int
	step  int
}

// NewProgress creates a progress printer for total steps.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total}
}

// Step advances the counter and prints the step label.
func (p *Progress) Step(format string, args ...any) {
	p.step++
	_, _ = fmt.Fprintf(p.out, "[%d/%d] %s\n", p.step, p.total, fmt.Sprintf(format, args...))
}

// Log prints an informational message without advancing the counter.
func (p *Progress) Log(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}
