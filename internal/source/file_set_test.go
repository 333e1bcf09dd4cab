package source

import (
	"testing"
)

func TestResolveMultiLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.c", []byte("class X\n{\n\tint m_Count;\n}\n"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},    // 'c' of class
		{6, LineCol{Line: 1, Col: 7}},    // 'X'
		{7, LineCol{Line: 1, Col: 8}},    // newline terminating line 1
		{8, LineCol{Line: 2, Col: 1}},    // '{'
		{11, LineCol{Line: 3, Col: 2}},   // 'i' of int
		{24, LineCol{Line: 4, Col: 1}},   // '}'
	}
	f := fs.Get(id)
	for _, tc := range cases {
		got := toLineCol(f.LineIdx, tc.off)
		if got != tc.want {
			t.Errorf("offset %d: expected %+v, got %+v", tc.off, tc.want, got)
		}
	}
}

func TestResolveSpanEnds(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.c", []byte("int a;\nint b;\n"))

	start, end := fs.Resolve(Span{File: id, Start: 7, End: 12})
	if start != (LineCol{Line: 2, Col: 1}) {
		t.Errorf("unexpected start %+v", start)
	}
	if end != (LineCol{Line: 2, Col: 6}) {
		t.Errorf("unexpected end %+v", end)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.c", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "first" {
		t.Errorf("line 1: %q", got)
	}
	if got := f.GetLine(2); got != "second" {
		t.Errorf("line 2: %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Errorf("line 3: %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Errorf("line 4 should be empty, got %q", got)
	}
}

func TestNormalization(t *testing.T) {
	fs := NewFileSet()

	content := []byte{0xEF, 0xBB, 0xBF, 'x', '\r', '\n', 'y'}
	trimmed, hadBOM := removeBOM(content)
	if !hadBOM {
		t.Fatal("expected BOM to be detected")
	}
	normalized, hadCRLF := normalizeCRLF(trimmed)
	if !hadCRLF {
		t.Fatal("expected CRLF to be normalized")
	}
	if string(normalized) != "x\ny" {
		t.Fatalf("unexpected content %q", string(normalized))
	}

	id := fs.Add("test.c", normalized, FileHadBOM|FileNormalizedCRLF)
	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected normalization flags to be set")
	}
}

func TestLatestVersionWins(t *testing.T) {
	fs := NewFileSet()
	id1 := fs.Add("test.c", []byte("version 1"), 0)
	id2 := fs.Add("test.c", []byte("version 2"), 0)
	if id1 == id2 {
		t.Fatal("expected distinct file ids")
	}
	latest, ok := fs.GetLatest("test.c")
	if !ok || latest != id2 {
		t.Fatalf("expected latest id %d, got %d (ok=%v)", id2, latest, ok)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 0, Start: 4, End: 8}
	b := Span{File: 0, Start: 2, End: 6}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 8 {
		t.Errorf("unexpected cover %+v", got)
	}
	other := Span{File: 1, Start: 0, End: 100}
	if a.Cover(other) != a {
		t.Error("cover across files should be a no-op")
	}
}
