package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestSummaryLinesAndTotals(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, []FileSummary{
		{Path: "scripts/clean.c"},
		{Path: "scripts/warn.c", Warnings: 2},
		{Path: "scripts/bad.c", Errors: 1, Warnings: 1},
	}, false, 80)
	out := buf.String()

	for _, want := range []string{
		"   ok  scripts/clean.c",
		" warn  scripts/warn.c",
		"error  scripts/bad.c",
		"2 warnings",
		"3 files, 1 errors, 3 warnings",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryEmptyPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, nil, false, 80)
	if buf.Len() != 0 {
		t.Fatalf("expected empty output, got %q", buf.String())
	}
}

func TestSummaryTruncatesLongPaths(t *testing.T) {
	var buf bytes.Buffer
	long := strings.Repeat("dir/", 30) + "file.c"
	Summary(&buf, []FileSummary{{Path: long}}, false, 60)
	if strings.Contains(buf.String(), long) {
		t.Fatalf("long path not truncated:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "...") {
		t.Fatalf("expected ellipsis in truncated path:\n%s", buf.String())
	}
}
