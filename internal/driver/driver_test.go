package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"enscript/internal/diag"
	"enscript/internal/rules"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzeDirCrossFileResolution(t *testing.T) {
	dir := t.TempDir()
	// zz_user.c sorts after aa_base.c, and the base class still has to
	// be visible when zz_user.c is checked.
	writeFile(t, dir, "zz_user.c", `
class Rifle extends WeaponBase {
	void Fire() { MakeNoise(); }
}
`)
	writeFile(t, dir, "aa_base.c", `
class WeaponBase {
	void MakeNoise() {}
}
`)
	a := New(Options{})
	results, err := a.AnalyzeDir(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	if filepath.Base(results[0].Path) != "aa_base.c" {
		t.Errorf("results not sorted: %s first", results[0].Path)
	}
	for _, res := range results {
		if res.Bag.Len() != 0 {
			t.Errorf("%s: unexpected diagnostics %+v", res.Path, res.Bag.Items())
		}
	}
}

func TestAnalyzeDirReportsPerFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.c", "class Ok {}\n")
	writeFile(t, dir, "bad.c", `
class Broken {
	void M() { this.Vanish(); }
}
`)
	a := New(Options{Jobs: 2})
	results, err := a.AnalyzeDir(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	byName := map[string]*Result{}
	for _, res := range results {
		byName[filepath.Base(res.Path)] = res
	}
	if byName["good.c"].Bag.Len() != 0 {
		t.Errorf("good.c: %+v", byName["good.c"].Bag.Items())
	}
	items := byName["bad.c"].Bag.Items()
	if len(items) != 1 || items[0].Code != diag.SemUndeclaredMethod {
		t.Fatalf("bad.c: %+v", items)
	}
}

func TestAnalyzeSourceReplacesDocument(t *testing.T) {
	a := New(Options{})
	ctx := context.Background()

	res := a.AnalyzeSource(ctx, "doc.c", []byte(`
class C {
	void M() { this.Gone(); }
}
`))
	if res.Bag.Len() != 1 {
		t.Fatalf("first pass: %+v", res.Bag.Items())
	}

	res = a.AnalyzeSource(ctx, "doc.c", []byte(`
class C {
	void Gone() {}
	void M() { this.Gone(); }
}
`))
	if res.Bag.Len() != 0 {
		t.Fatalf("after edit: %+v", res.Bag.Items())
	}
}

func TestAnalyzeSourceCollectsParseDiagnostics(t *testing.T) {
	a := New(Options{})
	res := a.AnalyzeSource(context.Background(), "doc.c", []byte(`
class C {
	void M() { int x = 1 }
}
`))
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.SynExpectSemicolon {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing parse diagnostic: %+v", res.Bag.Items())
	}
}

func TestAnalyzeFileMissing(t *testing.T) {
	a := New(Options{})
	if _, err := a.AnalyzeFile(context.Background(), filepath.Join(t.TempDir(), "absent.c")); err == nil {
		t.Fatal("expected error")
	}
}

func TestIncludePathResolution(t *testing.T) {
	includes := t.TempDir()
	writeFile(t, includes, "EngineItem.c", `
class EngineItem {
	void Activate() {}
}
`)
	a := New(Options{IncludePaths: []string{includes}})
	res := a.AnalyzeSource(context.Background(), "doc.c", []byte(`
class Tool extends EngineItem {
	void Use() { Activate(); }
}
`))
	if res.Bag.Len() != 0 {
		t.Fatalf("include class not resolved: %+v", res.Bag.Items())
	}
}

func TestRegistryConfigurationApplies(t *testing.T) {
	a := New(Options{})
	if err := a.Registry().UpdateRuleConfig(rules.RuleNarrowingConversion, rules.Config{Enabled: false}); err != nil {
		t.Fatal(err)
	}
	res := a.AnalyzeSource(context.Background(), "doc.c", []byte(`
void F() {
	float f = 1.5;
	int i = f;
}
`))
	if res.Bag.Len() != 0 {
		t.Fatalf("disabled rule still fired: %+v", res.Bag.Items())
	}
}
