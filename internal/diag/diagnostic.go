package diag

import (
	"enscript/internal/source"
)

// Note is a secondary span with extra context, e.g. "declared here".
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is one concrete text replacement of a quick fix.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is an optional automated correction attached to a diagnostic.
type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is a single positioned finding.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	// Rule is the identifier of the rule that produced the finding, e.g.
	// "type-mismatch". Empty for lexer/parser diagnostics.
	Rule string
	// SourceTag names the producing tool for host display, e.g. "enscript".
	SourceTag string
	Notes     []Note
	Fixes     []Fix
}

// WithFix returns a copy of the diagnostic with a fix attached.
func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}
