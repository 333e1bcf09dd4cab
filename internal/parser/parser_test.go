package parser

import (
	"testing"

	"enscript/internal/ast"
	"enscript/internal/diag"
	"enscript/internal/source"
)

func parseSrc(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte(src))
	bag := diag.NewBag(32)
	p := New(fs.Get(id), diag.BagReporter{Bag: bag})
	return p.ParseFile(), bag
}

func TestParseClassWithBaseAndMembers(t *testing.T) {
	f, bag := parseSrc(t, `
class PlayerBase extends Man
{
	private int m_Health;
	static const float MAX_HEALTH = 100.0;

	void PlayerBase() {}
	int GetHealth() { return m_Health; }
	protected void SetHealth(int value, bool clamp = true) { m_Health = value; }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
	if len(f.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(f.Decls))
	}
	cls, ok := f.Decls[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected class, got %T", f.Decls[0])
	}
	if cls.Name != "PlayerBase" || cls.BaseName != "Man" {
		t.Errorf("unexpected class header %q extends %q", cls.Name, cls.BaseName)
	}
	if len(cls.Members) != 5 {
		t.Fatalf("expected 5 members, got %d", len(cls.Members))
	}

	field, ok := cls.Members[0].(*ast.VarDecl)
	if !ok || field.Name != "m_Health" || !field.Modifiers.IsPrivate() {
		t.Errorf("unexpected first member %+v", cls.Members[0])
	}
	if field.Owner != cls {
		t.Error("field owner back-reference not set")
	}

	constant := cls.Members[1].(*ast.VarDecl)
	if !constant.Modifiers.IsStaticLike() || constant.Init == nil {
		t.Errorf("unexpected constant member %+v", constant)
	}

	setter := cls.Members[4].(*ast.FuncDecl)
	if setter.Name != "SetHealth" || len(setter.Params) != 2 {
		t.Fatalf("unexpected method %+v", setter)
	}
	if setter.Params[1].Default == nil {
		t.Error("expected default value on second parameter")
	}
	if !setter.IsMethod() || setter.Kind() != ast.DeclMethod {
		t.Error("method kind wrong")
	}
}

func TestParseGenericClassAndTypedef(t *testing.T) {
	f, bag := parseSrc(t, `
class Param2<Class T1, Class T2>
{
	T1 param1;
	T2 param2;
}
typedef Param2<string, string> TP;
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
	cls := f.Decls[0].(*ast.ClassDecl)
	if len(cls.GenericParams) != 2 || cls.GenericParams[0] != "T1" || cls.GenericParams[1] != "T2" {
		t.Fatalf("unexpected generic params %v", cls.GenericParams)
	}
	td := f.Decls[1].(*ast.TypedefDecl)
	if td.Name != "TP" || td.Target.Name != "Param2" || len(td.Target.Args) != 2 {
		t.Fatalf("unexpected typedef %+v", td)
	}
	if td.Target.Args[0].Name != "string" {
		t.Errorf("unexpected typedef arg %+v", td.Target.Args[0])
	}
}

func TestParseModdedClass(t *testing.T) {
	f, bag := parseSrc(t, `
modded class PlayerBase
{
	int m_ModCounter;
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
	cls := f.Decls[0].(*ast.ClassDecl)
	if !cls.IsModded() {
		t.Fatal("expected modded fragment")
	}
}

func TestParseNestedGenericField(t *testing.T) {
	f, bag := parseSrc(t, `
class Registry
{
	ref map<string, ref array<int>> m_Table;
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
	field := f.Decls[0].(*ast.ClassDecl).Members[0].(*ast.VarDecl)
	typ := field.Type
	if typ.Name != "map" || len(typ.Args) != 2 || !typ.Modifiers.Has(ast.ModRef) {
		t.Fatalf("unexpected outer type %+v", typ)
	}
	inner := typ.Args[1]
	if inner.Name != "array" || len(inner.Args) != 1 || inner.Args[0].Name != "int" {
		t.Fatalf("unexpected inner type %+v", inner)
	}
}

func TestParseEnum(t *testing.T) {
	f, bag := parseSrc(t, `
enum DamageType
{
	CLOSE_COMBAT,
	FIRE_ARM = 2,
	EXPLOSION,
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
	e := f.Decls[0].(*ast.EnumDecl)
	if len(e.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(e.Members))
	}
	if e.Members[1].Value == nil {
		t.Error("expected explicit value on FIRE_ARM")
	}
	if e.Members[0].Owner != e {
		t.Error("enum member owner not set")
	}
}

func TestParseStatements(t *testing.T) {
	f, bag := parseSrc(t, `
void Worker()
{
	int total = 0;
	for (int i = 0; i < 10; i++)
	{
		total += i;
	}
	foreach (string name : m_Names)
	{
		Print(name);
	}
	while (total > 0)
	{
		total--;
	}
	if (total == 0)
		return;
	else
		Print("leftover");
	switch (total)
	{
		case 1:
			break;
		default:
			break;
	}
	delete m_Names;
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
	fn := f.Decls[0].(*ast.FuncDecl)
	if fn.IsMethod() {
		t.Fatal("expected global function")
	}
	if len(fn.Body.Stmts) != 7 {
		t.Fatalf("expected 7 statements, got %d", len(fn.Body.Stmts))
	}
	if _, ok := fn.Body.Stmts[1].(*ast.ForStmt); !ok {
		t.Errorf("statement 1: expected for, got %T", fn.Body.Stmts[1])
	}
	if _, ok := fn.Body.Stmts[2].(*ast.ForeachStmt); !ok {
		t.Errorf("statement 2: expected foreach, got %T", fn.Body.Stmts[2])
	}
	if _, ok := fn.Body.Stmts[6].(*ast.DeleteStmt); !ok {
		t.Errorf("statement 6: expected delete, got %T", fn.Body.Stmts[6])
	}
}

func TestParseExpressions(t *testing.T) {
	f, bag := parseSrc(t, `
void Check()
{
	player.GetInventory().CountItems();
	m_Table["key"] = new array<int>();
	bool ok = a && b || !c;
	float ratio = (total + 1) * 0.5;
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
	body := f.Decls[0].(*ast.FuncDecl).Body
	call, ok := body.Stmts[0].(*ast.ExprStmt).X.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected call chain, got %T", body.Stmts[0].(*ast.ExprStmt).X)
	}
	member, ok := call.Callee.(*ast.MemberExpr)
	if !ok || member.Name != "CountItems" {
		t.Fatalf("unexpected callee %+v", call.Callee)
	}

	assign, ok := body.Stmts[1].(*ast.ExprStmt).X.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expected assignment, got %T", body.Stmts[1].(*ast.ExprStmt).X)
	}
	if _, ok := assign.Target.(*ast.IndexExpr); !ok {
		t.Errorf("expected index target, got %T", assign.Target)
	}
	if _, ok := assign.Value.(*ast.NewExpr); !ok {
		t.Errorf("expected new value, got %T", assign.Value)
	}
}

func TestParseRecoversFromBadMember(t *testing.T) {
	f, bag := parseSrc(t, `
class Broken
{
	int ;
	int m_Valid;
}
`)
	if !bag.HasErrors() {
		t.Fatal("expected parse errors")
	}
	cls := f.Decls[0].(*ast.ClassDecl)
	found := false
	for _, m := range cls.Members {
		if m.DeclName() == "m_Valid" {
			found = true
		}
	}
	if !found {
		t.Error("recovery lost the valid member")
	}
}

func TestParseGlobalCommaList(t *testing.T) {
	f, bag := parseSrc(t, "int g_First, g_Second = 2;\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
	if len(f.Decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(f.Decls))
	}
	second := f.Decls[1].(*ast.VarDecl)
	if second.Name != "g_Second" || second.Init == nil {
		t.Errorf("unexpected second declarator %+v", second)
	}
}
