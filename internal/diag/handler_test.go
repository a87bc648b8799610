package diag

import (
	"sync"
	"testing"
)

func TestHandlerSeverityGating(t *testing.T) {
	h := NewHandler()

	if h.HasErrors() {
		t.Fatalf("fresh handler should have no errors")
	}

	h.Warningf(CodeSemNotImplemented, "a.sb", 1, 1, "feature %q not implemented", "select")
	if h.HasErrors() {
		t.Fatalf("warnings must not count as errors")
	}

	h.Errorf(CodeTypeMismatch, "a.sb", 2, 5, "cannot assign string to int")
	if !h.HasErrors() {
		t.Fatalf("expected HasErrors after an error diagnostic")
	}
	if h.HasFatal() {
		t.Fatalf("error severity must not count as fatal")
	}

	h.Fatalf(CodeInternalNilType, "a.sb", 3, 1, "nil type reached IR type mapping")
	if !h.HasFatal() {
		t.Fatalf("expected HasFatal after a fatal diagnostic")
	}

	if got := h.Count(); got != 3 {
		t.Fatalf("count wrong. expected=3, got=%d", got)
	}
}

func TestHandlerSnapshotIsCopy(t *testing.T) {
	h := NewHandler()
	h.Errorf(CodeGeneric, "a.sb", 1, 1, "first")

	snap := h.Diagnostics()
	h.Errorf(CodeGeneric, "a.sb", 2, 1, "second")

	if len(snap) != 1 {
		t.Fatalf("snapshot length wrong. expected=1, got=%d", len(snap))
	}
	if len(h.Diagnostics()) != 2 {
		t.Fatalf("handler length wrong. expected=2, got=%d", len(h.Diagnostics()))
	}
}

func TestHandlerConcurrentAppend(t *testing.T) {
	h := NewHandler()

	const workers = 8
	const perWorker = 100

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(unit int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				h.Errorf(CodeGeneric, "unit.sb", unit, i, "diagnostic %d", i)
				_ = h.HasErrors()
			}
		}(w)
	}
	wg.Wait()

	if got := h.Count(); got != workers*perWorker {
		t.Fatalf("count wrong after concurrent append. expected=%d, got=%d", workers*perWorker, got)
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Code:     CodeTypeMismatch,
		Severity: SeverityError,
		Message:  "cannot assign string to int",
		File:     "main.sb",
		Line:     4,
		Column:   9,
	}
	want := "main.sb:4:9: error[T003]: cannot assign string to int"
	if got := d.String(); got != want {
		t.Fatalf("string wrong. expected=%q, got=%q", want, got)
	}
}
