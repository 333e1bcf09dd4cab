package hier

import (
	"context"
	"testing"

	"enscript/internal/ast"
	"enscript/internal/source"
	"enscript/internal/typestr"
)

func TestCompatPrimitives(t *testing.T) {
	fx := build(t, map[string]string{"a.c": "class Dummy {}\n"})
	ctx := context.Background()

	cases := []struct {
		from, to string
		want     Verdict
	}{
		{"int", "int", Compatible},
		{"int", "float", Compatible},
		{"float", "int", CompatibleNarrowing},
		{"int", "string", Incompatible},
		{"string", "bool", Incompatible},
		{"void", "int", Incompatible},
	}
	for _, c := range cases {
		got := fx.r.Compatible(ctx, typestr.ParseType(c.from), typestr.ParseType(c.to), nil, nil)
		if got != c.want {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestCompatNull(t *testing.T) {
	fx := build(t, map[string]string{"a.c": "class Thing {}\n"})
	ctx := context.Background()
	null := ast.NewTypeRef(NullTypeName, source.Span{})

	if v := fx.r.Compatible(ctx, null, typestr.ParseType("Thing"), nil, nil); v != Compatible {
		t.Errorf("null -> class: %v", v)
	}
	if v := fx.r.Compatible(ctx, null, typestr.ParseType("array<int>"), nil, nil); v != Compatible {
		t.Errorf("null -> container: %v", v)
	}
	for _, prim := range []string{"int", "float", "bool", "string", "vector"} {
		if v := fx.r.Compatible(ctx, null, typestr.ParseType(prim), nil, nil); v != Incompatible {
			t.Errorf("null -> %s: %v", prim, v)
		}
	}
	// The ref modifier overrides the primitive restriction.
	if v := fx.r.Compatible(ctx, null, typestr.ParseType("ref string"), nil, nil); v != Compatible {
		t.Errorf("null -> ref string: %v", v)
	}
}

func TestCompatEnumInt(t *testing.T) {
	fx := build(t, map[string]string{"a.c": "enum DamageType { FIRE }\n"})
	ctx := context.Background()

	if v := fx.r.Compatible(ctx, typestr.ParseType("DamageType"), typestr.ParseType("int"), nil, nil); v != Compatible {
		t.Errorf("enum -> int: %v", v)
	}
	if v := fx.r.Compatible(ctx, typestr.ParseType("int"), typestr.ParseType("DamageType"), nil, nil); v != Compatible {
		t.Errorf("int -> enum: %v", v)
	}
	if v := fx.r.Compatible(ctx, typestr.ParseType("string"), typestr.ParseType("DamageType"), nil, nil); v != Incompatible {
		t.Errorf("string -> enum: %v", v)
	}
	if v := fx.r.Compatible(ctx, typestr.ParseType("DamageType"), typestr.ParseType("string"), nil, nil); v != Incompatible {
		t.Errorf("enum -> string: %v", v)
	}
}

func TestCompatVectorLiteral(t *testing.T) {
	fx := build(t, map[string]string{"a.c": "class Dummy {}\n"})
	ctx := context.Background()
	vec := typestr.ParseType("vector")
	str := typestr.ParseType("string")

	lit := &ast.StringLit{Value: "1 0 0.5"}
	if v := fx.r.Compatible(ctx, str, vec, lit, nil); v != Compatible {
		t.Errorf("vector literal rejected: %v", v)
	}
	bad := &ast.StringLit{Value: "hello world"}
	if v := fx.r.Compatible(ctx, str, vec, bad, nil); v != Incompatible {
		t.Errorf("non-vector string accepted: %v", v)
	}
	if v := fx.r.Compatible(ctx, str, vec, nil, nil); v != Incompatible {
		t.Errorf("string variable into vector accepted: %v", v)
	}
}

func TestCompatCovariance(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
class Entity {}
class Man extends Entity {}
class Unrelated {}
class Orphan extends Ghost {}
`})
	ctx := context.Background()

	if v := fx.r.Compatible(ctx, typestr.ParseType("Man"), typestr.ParseType("Entity"), nil, nil); v != Compatible {
		t.Errorf("subclass -> base: %v", v)
	}
	if v := fx.r.Compatible(ctx, typestr.ParseType("Entity"), typestr.ParseType("Man"), nil, nil); v != Incompatible {
		t.Errorf("base -> subclass: %v", v)
	}
	if v := fx.r.Compatible(ctx, typestr.ParseType("Unrelated"), typestr.ParseType("Entity"), nil, nil); v != Incompatible {
		t.Errorf("unrelated classes: %v", v)
	}
	// A broken chain keeps the pair indeterminate.
	if v := fx.r.Compatible(ctx, typestr.ParseType("Orphan"), typestr.ParseType("Entity"), nil, nil); v != Indeterminate {
		t.Errorf("incomplete chain: %v", v)
	}
	if v := fx.r.Compatible(ctx, typestr.ParseType("NoSuchClass"), typestr.ParseType("Entity"), nil, nil); v != Indeterminate {
		t.Errorf("unknown type: %v", v)
	}
}

func TestCompatGenericsAndTypedefs(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
class Dummy {}
typedef map<string, int> TIntMap;
`})
	ctx := context.Background()

	if v := fx.r.Compatible(ctx, typestr.ParseType("map<string,int>"), typestr.ParseType("map<string, int>"), nil, nil); v != Compatible {
		t.Errorf("whitespace-insensitive generics: %v", v)
	}
	if v := fx.r.Compatible(ctx, typestr.ParseType("map<string,int>"), typestr.ParseType("map<string,string>"), nil, nil); v != Incompatible {
		t.Errorf("mismatched value type: %v", v)
	}
	if v := fx.r.Compatible(ctx, typestr.ParseType("TIntMap"), typestr.ParseType("map<string,int>"), nil, nil); v != Compatible {
		t.Errorf("typedef expansion: %v", v)
	}
	if v := fx.r.Compatible(ctx, typestr.ParseType("array<int>"), typestr.ParseType("map<string,int>"), nil, nil); v != Incompatible {
		t.Errorf("different containers: %v", v)
	}
}

func TestCompatGenericParamLeniency(t *testing.T) {
	fx := build(t, map[string]string{"a.c": `
class Param2<Class T1, Class T2> { T1 param1; }
`})
	ctx := context.Background()
	cls := fx.class(t, "Param2")
	env := &Env{Class: cls}

	if v := fx.r.Compatible(ctx, typestr.ParseType("T1"), typestr.ParseType("int"), nil, env); v != Compatible {
		t.Errorf("generic param as source: %v", v)
	}
	if v := fx.r.Compatible(ctx, typestr.ParseType("string"), typestr.ParseType("T2"), nil, env); v != Compatible {
		t.Errorf("generic param as target: %v", v)
	}
	// Auto is always lenient.
	if v := fx.r.Compatible(ctx, &ast.TypeNode{Kind: ast.TypeAuto}, typestr.ParseType("int"), nil, nil); v != Compatible {
		t.Errorf("auto: %v", v)
	}
}
