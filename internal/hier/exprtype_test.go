package hier

import (
	"context"
	"testing"

	"enscript/internal/ast"
)

// findMethod digs a named method out of an indexed class.
func (fx *fixture) method(t *testing.T, className, methodName string) (*ast.ClassDecl, *ast.FuncDecl) {
	t.Helper()
	for _, frag := range fx.ws.FindAllClassDefinitions(className) {
		for _, m := range frag.Members {
			if fn, ok := m.(*ast.FuncDecl); ok && fn.Name == methodName {
				return frag, fn
			}
		}
	}
	t.Fatalf("method %s.%s not found", className, methodName)
	return nil, nil
}

// firstExpr returns the n-th expression statement of a method body.
func stmtExpr(t *testing.T, fn *ast.FuncDecl, i int) ast.Expr {
	t.Helper()
	if fn.Body == nil || i >= len(fn.Body.Stmts) {
		t.Fatalf("body has no statement %d", i)
	}
	es, ok := fn.Body.Stmts[i].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("statement %d is %T, not an expression", i, fn.Body.Stmts[i])
	}
	return es.X
}

func TestResolveIdentPriority(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
int g_Value;
class Holder {
	string m_Value;
	void Use(float m_Value) {
		m_Value;
	}
	void UseField() {
		m_Value;
	}
	void UseGlobal() {
		g_Value;
	}
}
`})
	ctx := context.Background()

	cls, use := fx.method(t, "Holder", "Use")
	obj, st := fx.r.ResolveObjectType(ctx, stmtExpr(t, use, 0), &Env{Class: cls, Func: use})
	if st != StatusFound || obj.Type.String() != "float" {
		t.Errorf("parameter should shadow field: %v %v", st, obj.Type)
	}

	_, useField := fx.method(t, "Holder", "UseField")
	obj, st = fx.r.ResolveObjectType(ctx, stmtExpr(t, useField, 0), &Env{Class: cls, Func: useField})
	if st != StatusFound || obj.Type.String() != "string" {
		t.Errorf("field lookup: %v %v", st, obj.Type)
	}

	_, useGlobal := fx.method(t, "Holder", "UseGlobal")
	obj, st = fx.r.ResolveObjectType(ctx, stmtExpr(t, useGlobal, 0), &Env{Class: cls, Func: useGlobal})
	if st != StatusFound || obj.Type.String() != "int" {
		t.Errorf("global lookup: %v %v", st, obj.Type)
	}
}

func TestResolveThisAndSuper(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
class Base { void Tick() {} }
class Child extends Base {
	void M() {
		this;
		super;
	}
}
modded class Base {
	void N() {
		super;
	}
}
`})
	ctx := context.Background()

	cls, m := fx.method(t, "Child", "M")
	env := &Env{Class: cls, Func: m}
	obj, st := fx.r.ResolveObjectType(ctx, stmtExpr(t, m, 0), env)
	if st != StatusFound || obj.Type.String() != "Child" || !obj.OwnAccess {
		t.Errorf("this: %v %+v", st, obj)
	}
	obj, st = fx.r.ResolveObjectType(ctx, stmtExpr(t, m, 1), env)
	if st != StatusFound || obj.Type.String() != "Base" || !obj.IsSuper {
		t.Errorf("super: %v %+v", st, obj)
	}

	modded, n := fx.method(t, "Base", "N")
	if !modded.IsModded() {
		t.Fatal("picked the wrong fragment")
	}
	obj, st = fx.r.ResolveObjectType(ctx, stmtExpr(t, n, 0), &Env{Class: modded, Func: n})
	if st != StatusFound || obj.Type.String() != "Base" || !obj.IsSuper {
		t.Errorf("modded super should target the same class: %v %+v", st, obj)
	}
}

func TestResolveMemberAndCallChains(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
class Inventory { int CountItems() { return 0; } }
class Player {
	Inventory m_Inv;
	Inventory GetInventory() { return m_Inv; }
	void M() {
		GetInventory().CountItems();
		m_Inv.CountItems();
	}
}
`})
	ctx := context.Background()
	cls, m := fx.method(t, "Player", "M")
	env := &Env{Class: cls, Func: m}

	obj, st := fx.r.ResolveObjectType(ctx, stmtExpr(t, m, 0), env)
	if st != StatusFound || obj.Type.String() != "int" {
		t.Errorf("implicit-this call chain: %v %v", st, obj.Type)
	}
	obj, st = fx.r.ResolveObjectType(ctx, stmtExpr(t, m, 1), env)
	if st != StatusFound || obj.Type.String() != "int" {
		t.Errorf("member call chain: %v %v", st, obj.Type)
	}
}

func TestResolveEnumAccess(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
enum DamageType { FIRE, BLUNT }
class C {
	void M() {
		DamageType.FIRE;
		DamageType.MISSING;
	}
}
`})
	ctx := context.Background()
	cls, m := fx.method(t, "C", "M")
	env := &Env{Class: cls, Func: m}

	obj, st := fx.r.ResolveObjectType(ctx, stmtExpr(t, m, 0), env)
	if st != StatusFound || obj.Type.String() != "DamageType" {
		t.Errorf("enum member: %v %v", st, obj.Type)
	}
	if _, st = fx.r.ResolveObjectType(ctx, stmtExpr(t, m, 1), env); st != StatusMissing {
		t.Errorf("missing enumerator should be missing, got %v", st)
	}
}

func TestResolveIndexAndForeachLocals(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
class C {
	ref map<string, int> m_Table;
	void M() {
		m_Table["k"];
		foreach (string name : m_Table) {
			name;
		}
	}
}
`})
	ctx := context.Background()
	cls, m := fx.method(t, "C", "M")
	env := &Env{Class: cls, Func: m}

	obj, st := fx.r.ResolveObjectType(ctx, stmtExpr(t, m, 0), env)
	if st != StatusFound || obj.Type.String() != "int" {
		t.Errorf("map index: %v %v", st, obj.Type)
	}

	fe := m.Body.Stmts[1].(*ast.ForeachStmt)
	inner := fe.Body.(*ast.BlockStmt).Stmts[0].(*ast.ExprStmt).X
	obj, st = fx.r.ResolveObjectType(ctx, inner, env)
	if st != StatusFound || obj.Type.String() != "string" {
		t.Errorf("foreach variable: %v %v", st, obj.Type)
	}
}

func TestResolveLiteralsAndOperators(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
class C {
	void M() {
		1 + 2;
		1.5 + 2;
		"a" + "b";
		1 < 2;
		!true;
	}
}
`})
	ctx := context.Background()
	cls, m := fx.method(t, "C", "M")
	env := &Env{Class: cls, Func: m}

	want := []string{"int", "float", "string", "bool", "bool"}
	for i, expect := range want {
		obj, st := fx.r.ResolveObjectType(ctx, stmtExpr(t, m, i), env)
		if st != StatusFound || obj.Type.String() != expect {
			t.Errorf("statement %d: got %v %v, want %s", i, st, obj.Type, expect)
		}
	}
}
