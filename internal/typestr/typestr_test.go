package typestr

import (
	"testing"

	"enscript/internal/ast"
)

func TestParseGenericType(t *testing.T) {
	cases := []struct {
		in   string
		base string
		args []string
	}{
		{"PlayerBase", "PlayerBase", nil},
		{"array<int>", "array", []string{"int"}},
		{"map<string, int>", "map", []string{"string", "int"}},
		{"ref map<string, ref array<int>>", "map", []string{"string", "ref array<int>"}},
		{"Container<map<string,int>>", "Container", []string{"map<string,int>"}},
		{"const static ref array<float>", "array", []string{"float"}},
		{"broken<int", "broken", nil},
	}
	for _, tc := range cases {
		base, args := ParseGenericType(tc.in)
		if base != tc.base {
			t.Errorf("%q: expected base %q, got %q", tc.in, tc.base, base)
		}
		if len(args) != len(tc.args) {
			t.Errorf("%q: expected %d args, got %v", tc.in, len(tc.args), args)
			continue
		}
		for i := range args {
			if args[i] != tc.args[i] {
				t.Errorf("%q: arg %d: expected %q, got %q", tc.in, i, tc.args[i], args[i])
			}
		}
	}
}

func TestSplitGenericArgumentsNested(t *testing.T) {
	args := SplitGenericArguments("string, map<string,int>, array<map<int,string>>")
	want := []string{"string", "map<string,int>", "array<map<int,string>>"}
	if len(args) != len(want) {
		t.Fatalf("expected %d args, got %v", len(want), args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg %d: expected %q, got %q", i, want[i], args[i])
		}
	}
}

func TestNormalizeTypeName(t *testing.T) {
	cases := map[string]string{
		"map< string , int >":   "map<string,int>",
		"array<int>":             "array<int>",
		"  PlayerBase  ":         "PlayerBase",
		"ref  array< float >":    "ref array<float>",
		"Param2<string, string>": "Param2<string,string>",
	}
	for in, want := range cases {
		if got := NormalizeTypeName(in); got != want {
			t.Errorf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestClassification(t *testing.T) {
	for _, name := range []string{"int", "float", "bool", "string", "void", "vector"} {
		if !IsPrimitive(name) {
			t.Errorf("%s should be primitive", name)
		}
	}
	for _, name := range []string{"array", "map", "set"} {
		if !IsBuiltinContainer(name) {
			t.Errorf("%s should be a builtin container", name)
		}
		if IsPrimitive(name) {
			t.Errorf("%s should not be primitive", name)
		}
	}
	if !IsUserType("PlayerBase") || IsUserType("int") || IsUserType("auto") {
		t.Error("user type classification is wrong")
	}
}

func TestNumericCompat(t *testing.T) {
	if CheckNumeric("int", "float") != NumericWidening {
		t.Error("int -> float should widen silently")
	}
	if CheckNumeric("float", "int") != NumericNarrowing {
		t.Error("float -> int should be lossy narrowing")
	}
	if CheckNumeric("int", "int") != NumericIncompatible {
		t.Error("identity is not a conversion")
	}
	if CheckNumeric("string", "int") != NumericIncompatible {
		t.Error("string -> int is not numeric")
	}
}

func TestParseTypeStructural(t *testing.T) {
	node := ParseType("ref map<string, ref array<int>>")
	if node == nil || node.Kind != ast.TypeRef || node.Name != "map" {
		t.Fatalf("unexpected node %+v", node)
	}
	if !node.Modifiers.Has(ast.ModRef) {
		t.Error("expected ref modifier")
	}
	if len(node.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(node.Args))
	}
	if node.Args[0].Name != "string" {
		t.Errorf("arg 0: %q", node.Args[0].Name)
	}
	inner := node.Args[1]
	if inner.Name != "array" || !inner.Modifiers.Has(ast.ModRef) || len(inner.Args) != 1 || inner.Args[0].Name != "int" {
		t.Errorf("unexpected nested arg %+v", inner)
	}
	if node.String() != "map<string,array<int>>" {
		t.Errorf("unexpected canonical form %q", node.String())
	}

	arr := ParseType("int[]")
	if arr.Kind != ast.TypeArray || arr.Elem.Name != "int" {
		t.Errorf("unexpected array node %+v", arr)
	}
}
