package diag

import (
	"fmt"
	"sync"
)

// Handler is the diagnostic sink shared by every compiler stage. One handler
// lives for the whole process; appends and reads are guarded by a per-handler
// mutex so an outer driver may compile units in parallel against it.
type Handler struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// NewHandler creates an empty diagnostic handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Report appends a diagnostic.
func (h *Handler) Report(d Diagnostic) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.diags = append(h.diags, d)
}

// Warningf reports a warning-severity diagnostic.
func (h *Handler) Warningf(code Code, file string, line, column int, format string, args ...any) {
	h.Report(Diagnostic{
		Code:     code,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		File:     file,
		Line:     line,
		Column:   column,
	})
}

// Errorf reports an error-severity diagnostic.
func (h *Handler) Errorf(code Code, file string, line, column int, format string, args ...any) {
	h.Report(Diagnostic{
		Code:     code,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		File:     file,
		Line:     line,
		Column:   column,
	})
}

// Fatalf reports a fatal-severity diagnostic. The caller is responsible for
// aborting the stage that raised it.
func (h *Handler) Fatalf(code Code, file string, line, column int, format string, args ...any) {
	h.Report(Diagnostic{
		Code:     code,
		Severity: SeverityFatal,
		Message:  fmt.Sprintf(format, args...),
		File:     file,
		Line:     line,
		Column:   column,
	})
}

// Diagnostics returns a snapshot copy of everything reported so far.
func (h *Handler) Diagnostics() []Diagnostic {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Diagnostic, len(h.diags))
	copy(out, h.diags)
	return out
}

// Count returns the number of diagnostics reported so far.
func (h *Handler) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.diags)
}

// HasErrors reports whether any Error or Fatal diagnostic was recorded.
func (h *Handler) HasErrors() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, d := range h.diags {
		if d.Severity == SeverityError || d.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// HasFatal reports whether any Fatal diagnostic was recorded.
func (h *Handler) HasFatal() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, d := range h.diags {
		if d.Severity == SeverityFatal {
			return true
		}
	}
	return false
}
