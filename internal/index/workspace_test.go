package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"enscript/internal/ast"
	"enscript/internal/diag"
	"enscript/internal/parser"
	"enscript/internal/source"
)

func indexSrc(t *testing.T, w *Workspace, path, src string, open bool) *ast.File {
	t.Helper()
	fs := w.FileSet()
	id := fs.AddVirtual(path, []byte(src))
	p := parser.New(fs.Get(id), diag.NopReporter{})
	f := p.ParseFile()
	if open {
		w.AddDocument(f)
	} else {
		w.AddIncludeFile(f)
	}
	return f
}

func TestClassFragmentsBaseFirst(t *testing.T) {
	w := NewWorkspace(source.NewFileSet(), Options{})
	indexSrc(t, w, "mod.c", "modded class PlayerBase { int m_Extra; }\n", true)
	indexSrc(t, w, "base.c", "class PlayerBase { int m_Health; }\n", false)

	frags := w.FindAllClassDefinitions("PlayerBase")
	if len(frags) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(frags))
	}
	if frags[0].IsModded() {
		t.Error("base definition should come first")
	}
	if !frags[1].IsModded() {
		t.Error("modded fragment should come last")
	}
}

func TestTypedefResolution(t *testing.T) {
	w := NewWorkspace(source.NewFileSet(), Options{})
	indexSrc(t, w, "defs.c", `
class Param2<Class T1, Class T2> {}
typedef Param2<string, string> TP;
`, true)

	base, ok := w.ResolveTypedefClassName("TP")
	if !ok || base != "Param2" {
		t.Errorf("ResolveTypedefClassName = %q, %v", base, ok)
	}
	full, ok := w.ResolveTypedefFullType("TP")
	if !ok || full != "Param2<string,string>" {
		t.Errorf("ResolveTypedefFullType = %q, %v", full, ok)
	}
	if _, ok := w.ResolveTypedefClassName("Missing"); ok {
		t.Error("unknown typedef should not resolve")
	}
}

func TestGlobalFunctionReturnType(t *testing.T) {
	w := NewWorkspace(source.NewFileSet(), Options{})
	indexSrc(t, w, "globals.c", `
float GetDeltaTime() { return 0.0; }
int g_Counter;
`, true)

	ret, ok := w.GlobalFunctionReturnType("GetDeltaTime")
	if !ok || ret != "float" {
		t.Errorf("return type = %q, %v", ret, ok)
	}
	if len(w.FindAllGlobalVariableDefinitions("g_Counter")) != 1 {
		t.Error("global variable not indexed")
	}
}

func TestOpenDocumentTracking(t *testing.T) {
	w := NewWorkspace(source.NewFileSet(), Options{})
	indexSrc(t, w, "open.c", "class A {}\n", true)
	indexSrc(t, w, "closed.c", "class B {}\n", false)

	if !w.IsOpenDocument("open.c") {
		t.Error("open.c should be an open document")
	}
	if w.IsOpenDocument("closed.c") {
		t.Error("closed.c should not be an open document")
	}
}

func TestReAddReplacesSymbols(t *testing.T) {
	w := NewWorkspace(source.NewFileSet(), Options{})
	indexSrc(t, w, "doc.c", "class First {}\n", true)
	indexSrc(t, w, "doc.c", "class Second {}\n", true)

	if len(w.FindAllClassDefinitions("First")) != 0 {
		t.Error("stale symbol survived re-add")
	}
	if len(w.FindAllClassDefinitions("Second")) != 1 {
		t.Error("fresh symbol missing after re-add")
	}
}

func TestAllAvailableNamesSorted(t *testing.T) {
	w := NewWorkspace(source.NewFileSet(), Options{})
	indexSrc(t, w, "doc.c", `
class Zeta {}
class Alpha {}
enum Color { RED }
`, true)

	names := w.AllAvailableClassNames()
	if len(names) != 2 || names[0] != "Alpha" || names[1] != "Zeta" {
		t.Errorf("unexpected class names %v", names)
	}
	if enums := w.AllAvailableEnumNames(); len(enums) != 1 || enums[0] != "Color" {
		t.Errorf("unexpected enum names %v", enums)
	}
}

func TestLoadClassFromIncludePaths(t *testing.T) {
	dir := t.TempDir()
	src := "class Weapon extends ItemBase { int GetDamage() { return 10; } }\n"
	if err := os.WriteFile(filepath.Join(dir, "Weapon.c"), []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	w := NewWorkspace(source.NewFileSet(), Options{IncludePaths: []string{dir}})
	if !w.HasIncludePaths() {
		t.Fatal("include paths not configured")
	}
	if !w.LoadClassFromIncludePaths(context.Background(), "Weapon") {
		t.Fatal("expected include load to succeed")
	}
	frags := w.FindAllClassDefinitions("Weapon")
	if len(frags) != 1 || frags[0].BaseName != "ItemBase" {
		t.Fatalf("unexpected fragments %+v", frags)
	}
	if w.IsOpenDocument(filepath.Join(dir, "Weapon.c")) {
		t.Error("include file must not be an open document")
	}

	// Second attempt for the same name is a no-op.
	if w.LoadClassFromIncludePaths(context.Background(), "Weapon") {
		t.Error("repeat load should report nothing new")
	}
}

func TestLoadClassMissingFile(t *testing.T) {
	w := NewWorkspace(source.NewFileSet(), Options{IncludePaths: []string{t.TempDir()}})
	if w.LoadClassFromIncludePaths(context.Background(), "Nowhere") {
		t.Error("expected miss for unknown class")
	}
}

func TestIncludeCacheRoundTrip(t *testing.T) {
	includeDir := t.TempDir()
	cacheDir := t.TempDir()
	src := `
class Stub
{
	void Alive() {}
	int Count() { return m_Count; }
}
enum Kind { A, B }
typedef Stub StubAlias;
`
	if err := os.WriteFile(filepath.Join(includeDir, "Stub.c"), []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	cache, err := OpenIncludeCacheAt(cacheDir)
	if err != nil {
		t.Fatal(err)
	}

	// First workspace parses and populates the cache.
	w1 := NewWorkspace(source.NewFileSet(), Options{IncludePaths: []string{includeDir}, Cache: cache})
	if !w1.LoadClassFromIncludePaths(context.Background(), "Stub") {
		t.Fatal("first load failed")
	}

	// Second workspace restores from cache.
	w2 := NewWorkspace(source.NewFileSet(), Options{IncludePaths: []string{includeDir}, Cache: cache})
	if !w2.LoadClassFromIncludePaths(context.Background(), "Stub") {
		t.Fatal("cached load failed")
	}
	frags := w2.FindAllClassDefinitions("Stub")
	if len(frags) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(frags))
	}
	cls := frags[0]
	if len(cls.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(cls.Members))
	}
	alive := cls.Members[0].(*ast.FuncDecl)
	if alive.Name != "Alive" || alive.Body == nil || len(alive.Body.Stmts) != 0 {
		t.Errorf("empty body not preserved: %+v", alive)
	}
	count := cls.Members[1].(*ast.FuncDecl)
	if count.Body == nil || len(count.Body.Stmts) == 0 {
		t.Error("non-empty body flattened to empty on restore")
	}
	if base, ok := w2.ResolveTypedefClassName("StubAlias"); !ok || base != "Stub" {
		t.Errorf("typedef lost through cache: %q, %v", base, ok)
	}
	if len(w2.FindAllEnumDefinitions("Kind")) != 1 {
		t.Error("enum lost through cache")
	}
}
