package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"enscript/internal/diag"
	"enscript/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgBlue)
	ruleColor    = color.New(color.Faint)
)

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

// Pretty renders diagnostics in a human-readable form. It walks bag.Items()
// in order (call bag.Sort() first) and prints for each diagnostic
//
//	<path>:<line>:<col>: <SEVERITY> [<CODE>]: <message>
//
// followed by the source line with a ^~~~ underline covering the primary
// span, then any notes in the same one-line format.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writePretty(w, d, fs, opts)
	}
}

func writePretty(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	start, _ := fs.Resolve(d.Primary)
	sev := d.Severity.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}

	header := fmt.Sprintf("%s:%d:%d: %s [%s]: %s",
		formatPath(d.Primary.File, fs, opts.PathMode), start.Line, start.Col,
		sev, d.Code.ID(), d.Message)
	if opts.ShowRule && d.Rule != "" {
		suffix := fmt.Sprintf(" (%s)", d.Rule)
		if opts.Color {
			suffix = ruleColor.Sprint(suffix)
		}
		header += suffix
	}
	fmt.Fprintln(w, header)

	writeContext(w, d.Primary, fs, opts)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nStart, _ := fs.Resolve(n.Span)
		label := "note"
		if opts.Color {
			label = noteColor.Sprint(label)
		}
		fmt.Fprintf(w, "  %s:%d:%d: %s: %s\n",
			formatPath(n.Span.File, fs, opts.PathMode), nStart.Line, nStart.Col,
			label, n.Msg)
	}
}

// writeContext prints the first source line of the span with a caret
// underline. Multi-line spans are underlined only on their first line.
func writeContext(w io.Writer, span source.Span, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}

	fmt.Fprintf(w, "  %s\n", strings.ReplaceAll(line, "\t", " "))

	// Column offsets are byte-based; measure the display width of the
	// prefix so the caret lands under the right rune.
	prefix := line
	if int(start.Col-1) <= len(line) {
		prefix = line[:start.Col-1]
	}
	pad := runewidth.StringWidth(strings.ReplaceAll(prefix, "\t", " "))

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		covered := line
		if int(end.Col-1) <= len(line) {
			covered = line[start.Col-1 : end.Col-1]
		}
		if n := runewidth.StringWidth(covered); n > 0 {
			width = n
		}
	}

	underline := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		underline = color.New(color.FgGreen, color.Bold).Sprint(underline)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), underline)
}

// Short renders one line per diagnostic with no source context, suitable
// for editors and grep pipelines.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s: %s [%s]\n",
			formatPath(d.Primary.File, fs, opts.PathMode), start.Line, start.Col,
			strings.ToLower(d.Severity.String()), d.Message, d.Code.ID())
	}
}

func formatPath(id source.FileID, fs *source.FileSet, mode PathMode) string {
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	baseDir := ""
	if mode == PathModeRelative || mode == PathModeAuto {
		baseDir = fs.BaseDir()
	}
	return f.FormatPath(mode.formatMode(), baseDir)
}
