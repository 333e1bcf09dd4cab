package diag

import (
	"strings"
	"testing"

	"enscript/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(Diagnostic{Code: SemTypeMismatch}) || !b.Add(Diagnostic{Code: SemTypeMismatch}) {
		t.Fatal("first two adds should succeed")
	}
	if b.Add(Diagnostic{Code: SemTypeMismatch}) {
		t.Fatal("third add should be dropped")
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", b.Len())
	}
}

func TestBagSortDeterministic(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Severity: SevWarning, Code: SemStaticMismatch, Primary: source.Span{Start: 10, End: 12}})
	b.Add(Diagnostic{Severity: SevError, Code: SemTypeMismatch, Primary: source.Span{Start: 4, End: 6}})
	b.Add(Diagnostic{Severity: SevError, Code: SemUndeclaredMethod, Primary: source.Span{Start: 4, End: 6}})
	b.Sort()

	items := b.Items()
	if items[0].Primary.Start != 4 {
		t.Error("expected earliest span first")
	}
	if items[0].Code != SemUndeclaredMethod {
		t.Errorf("expected lower code first among equal spans, got %v", items[0].Code)
	}
	if items[2].Code != SemStaticMismatch {
		t.Errorf("expected later span last, got %v", items[2].Code)
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(10)
	d := Diagnostic{Severity: SevError, Code: SemTypeMismatch, Primary: source.Span{Start: 1, End: 2}}
	b.Add(d)
	b.Add(d)
	b.Add(Diagnostic{Severity: SevError, Code: SemTypeMismatch, Primary: source.Span{Start: 3, End: 4}})
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", b.Len())
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	b := NewBag(4)
	rb := ReportWarning(BagReporter{Bag: b}, SemMissingOverride, source.Span{Start: 1, End: 5}, "test").
		WithRule("missing-override", "enscript").
		WithNote(source.Span{Start: 9, End: 12}, "declared here")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("expected exactly one emission, got %d", b.Len())
	}
	got := b.Items()[0]
	if got.Rule != "missing-override" || got.SourceTag != "enscript" {
		t.Errorf("rule tagging lost: %+v", got)
	}
	if len(got.Notes) != 1 {
		t.Errorf("expected one note, got %d", len(got.Notes))
	}
}

func TestFormatGolden(t *testing.T) {
	fs := source.NewFileSetWithBase(".")
	id := fs.AddVirtual("scripts/test.c", []byte("int x;\nint y;\n"))

	b := NewBag(4)
	b.Add(Diagnostic{
		Severity: SevError,
		Code:     SemTypeMismatch,
		Message:  "incompatible types",
		Primary:  source.Span{File: id, Start: 7, End: 12},
	})
	b.Sort()

	got := FormatGolden(b, fs, false)
	if !strings.Contains(got, "error SEM3008") {
		t.Errorf("missing severity/code: %q", got)
	}
	if !strings.Contains(got, ":2:1 incompatible types") {
		t.Errorf("missing position or message: %q", got)
	}
}
