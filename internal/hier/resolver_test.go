package hier

import (
	"context"
	"testing"

	"enscript/internal/ast"
	"enscript/internal/diag"
	"enscript/internal/index"
	"enscript/internal/parser"
	"enscript/internal/source"
)

var _ SymbolIndex = (*index.Workspace)(nil)

type fixture struct {
	ws *index.Workspace
	r  *Resolver
	fs *source.FileSet
}

func build(t *testing.T, sources map[string]string) *fixture {
	t.Helper()
	fs := source.NewFileSet()
	ws := index.NewWorkspace(fs, index.Options{})
	for path, src := range sources {
		id := fs.AddVirtual(path, []byte(src))
		p := parser.New(fs.Get(id), diag.BagReporter{Bag: diag.NewBag(16)})
		ws.AddDocument(p.ParseFile())
	}
	return &fixture{ws: ws, r: NewResolver(ws, fs, nil), fs: fs}
}

func (fx *fixture) class(t *testing.T, name string) *ast.ClassDecl {
	t.Helper()
	frags := fx.ws.FindAllClassDefinitions(name)
	if len(frags) == 0 {
		t.Fatalf("class %s not indexed", name)
	}
	return frags[0]
}

func TestFindMemberInherited(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
class Animal { int m_Age; int GetAge() { return m_Age; } }
class Dog extends Animal { void Bark() {} }
`})
	l, st := fx.r.FindMember(context.Background(), "Dog", "GetAge", LookupOptions{})
	if st != StatusFound {
		t.Fatalf("status = %v", st)
	}
	if !l.IsMethod() || l.Type.String() != "int" {
		t.Errorf("unexpected lookup %+v", l)
	}
	if l.Owner == nil || l.Owner.Name != "Animal" {
		t.Errorf("owner = %+v", l.Owner)
	}
}

func TestFindMemberModdedFragment(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
class X {}
modded class X { int v; }
class Y extends X {}
`})
	_, st := fx.r.FindMember(context.Background(), "Y", "v", LookupOptions{})
	if st != StatusFound {
		t.Fatalf("modded member not visible from subclass: %v", st)
	}
}

func TestFindMemberSuperExcludesModded(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
class C { void Base() {} }
modded class C { void Extra() {} }
`})
	if _, st := fx.r.FindMember(context.Background(), "C", "Extra", LookupOptions{}); st != StatusFound {
		t.Fatalf("modded method should resolve normally: %v", st)
	}
	if _, st := fx.r.FindMember(context.Background(), "C", "Extra", LookupOptions{ExcludeModded: true}); st != StatusMissing {
		t.Errorf("super lookup must skip modded fragments, got %v", st)
	}
	if _, st := fx.r.FindMember(context.Background(), "C", "Base", LookupOptions{ExcludeModded: true}); st != StatusFound {
		t.Errorf("super lookup lost non-modded method: %v", st)
	}
}

func TestFindMemberStaticMismatch(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
class Config { static int GetMax() { return 10; } int m_Cur; }
`})
	l, st := fx.r.FindMember(context.Background(), "Config", "GetMax", LookupOptions{WantStatic: false})
	if st != StatusFound || !l.StaticMismatch {
		t.Errorf("expected static mismatch, got %v %+v", st, l)
	}
	l, st = fx.r.FindMember(context.Background(), "Config", "GetMax", LookupOptions{WantStatic: true})
	if st != StatusFound || l.StaticMismatch {
		t.Errorf("exact static access flagged: %v %+v", st, l)
	}
	l, st = fx.r.FindMember(context.Background(), "Config", "m_Cur", LookupOptions{WantStatic: true})
	if st != StatusFound || !l.StaticMismatch {
		t.Errorf("instance member via class name should mismatch: %v %+v", st, l)
	}
}

func TestFindMemberMissingVersusUnknown(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
class Known { int a; }
class Orphan extends Mystery { int b; }
`})
	if _, st := fx.r.FindMember(context.Background(), "Known", "nope", LookupOptions{}); st != StatusMissing {
		t.Errorf("fully known hierarchy should report missing, got %v", st)
	}
	if _, st := fx.r.FindMember(context.Background(), "Orphan", "nope", LookupOptions{}); st != StatusUnknown {
		t.Errorf("unresolved base must stay open, got %v", st)
	}
	if _, st := fx.r.FindMember(context.Background(), "Mystery", "x", LookupOptions{}); st != StatusUnknown {
		t.Errorf("unknown class must stay open, got %v", st)
	}
}

func TestFindMemberPrivateVisibility(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
class Vault { private int m_Secret; }
`})
	if _, st := fx.r.FindMember(context.Background(), "Vault", "m_Secret", LookupOptions{}); st != StatusMissing {
		t.Errorf("private member visible from outside: %v", st)
	}
	if _, st := fx.r.FindMember(context.Background(), "Vault", "m_Secret", LookupOptions{AllowPrivate: true}); st != StatusFound {
		t.Errorf("private member hidden from inside: %v", st)
	}
}

func TestBuiltinContainerMethods(t *testing.T) {
	fx := build(t, map[string]string{"a.c": "class Dummy {}\n"})
	ctx := context.Background()

	l, st := fx.r.FindMember(ctx, "array<int>", "Get", LookupOptions{})
	if st != StatusFound || l.Type.String() != "int" {
		t.Errorf("array Get: %v %v", st, l.Type)
	}
	l, st = fx.r.FindMember(ctx, "map<string, PlayerBase>", "Get", LookupOptions{})
	if st != StatusFound || l.Type.String() != "PlayerBase" {
		t.Errorf("map Get: %v %v", st, l.Type)
	}
	l, st = fx.r.FindMember(ctx, "map<string,int>", "Count", LookupOptions{})
	if st != StatusFound || l.Type.String() != "int" {
		t.Errorf("map Count: %v %v", st, l.Type)
	}
	if _, st = fx.r.FindMember(ctx, "array<int>", "Frobnicate", LookupOptions{}); st != StatusMissing {
		t.Errorf("container table is closed, got %v", st)
	}
}

func TestGenericSubstitution(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
class Param2<Class T1, Class T2> { T1 param1; T2 param2; }
typedef Param2<string, string> TP;
`})
	ctx := context.Background()

	l, st := fx.r.FindMember(ctx, "Param2<string, int>", "param2", LookupOptions{})
	if st != StatusFound || l.Type.String() != "int" {
		t.Fatalf("direct instantiation: %v %v", st, l.Type)
	}
	l, st = fx.r.FindMember(ctx, "TP", "param2", LookupOptions{})
	if st != StatusFound || l.Type.String() != "string" {
		t.Fatalf("typedef instantiation: %v %v", st, l.Type)
	}
	// Unbound parameters must not leak the parameter name.
	l, st = fx.r.FindMember(ctx, "Param2", "param1", LookupOptions{})
	if st != StatusFound || l.Type.Kind != ast.TypeAuto {
		t.Errorf("unbound parameter should widen to auto: %v %v", st, l.Type)
	}
}

func TestSubstitutionThroughBaseClass(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
class Box<Class T> { T content; }
class IntBox extends Box<int> {}
`})
	l, st := fx.r.FindMember(context.Background(), "IntBox", "content", LookupOptions{})
	if st != StatusFound || l.Type.String() != "int" {
		t.Errorf("base generic args not substituted: %v %v", st, l.Type)
	}
}

func TestInheritanceCycleTerminates(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
class A extends B { int a; }
class B extends A { int b; }
`})
	if _, st := fx.r.FindMember(context.Background(), "A", "b", LookupOptions{}); st != StatusFound {
		t.Errorf("cycle broke member collection: %v", st)
	}
	if _, st := fx.r.FindMember(context.Background(), "A", "nope", LookupOptions{}); st != StatusMissing {
		t.Errorf("cycle should not fail the lookup open: %v", st)
	}
}

func TestIsSubclassOf(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
class Entity {}
class Man extends Entity {}
class PlayerBase extends Man {}
class Orphan extends Ghost {}
`})
	ctx := context.Background()
	if ok, complete := fx.r.IsSubclassOf(ctx, "PlayerBase", "Entity"); !ok || !complete {
		t.Errorf("PlayerBase < Entity: %v %v", ok, complete)
	}
	if ok, _ := fx.r.IsSubclassOf(ctx, "Entity", "PlayerBase"); ok {
		t.Error("covariance must be one-directional")
	}
	if _, complete := fx.r.IsSubclassOf(ctx, "Orphan", "Entity"); complete {
		t.Error("unresolved base must report an incomplete chain")
	}
}

func TestFindMethodInBases(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
class Base {
	void OnUpdate(float dt) {}
	private void Hidden() {}
	static void Util() {}
}
class Child extends Base {}
`})
	child := fx.class(t, "Child")
	ctx := context.Background()

	fn, owner, complete := fx.r.FindMethodInBases(ctx, child, "OnUpdate")
	if fn == nil || owner == nil || owner.Name != "Base" || !complete {
		t.Errorf("base method not found: %v %v %v", fn, owner, complete)
	}
	if fn, _, _ := fx.r.FindMethodInBases(ctx, child, "Hidden"); fn != nil {
		t.Error("private base method must not shadow")
	}
	if fn, _, _ := fx.r.FindMethodInBases(ctx, child, "Util"); fn != nil {
		t.Error("static base method must not shadow")
	}
}

func TestLookupMemoized(t *testing.T) {
	fx := build(t, map[string]string{"a.c": "class K { int v; }\n"})
	ctx := context.Background()
	l1, _ := fx.r.FindMember(ctx, "K", "v", LookupOptions{})
	l2, _ := fx.r.FindMember(ctx, "K", "v", LookupOptions{})
	if l1 != l2 {
		t.Error("identical lookups should hit the pass cache")
	}
}
