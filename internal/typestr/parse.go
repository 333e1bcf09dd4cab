package typestr

import (
	"strings"

	"enscript/internal/ast"
)

// ParseType parses a type descriptor string into a structural node,
// recursing through nested generic arguments and array suffixes. The
// resulting nodes carry no spans; callers attach positions when they have
// them.
func ParseType(s string) *ast.TypeNode {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	bare, stripped := StripModifiers(s)
	var mods ast.Modifiers
	for _, m := range stripped {
		switch m {
		case "ref":
			mods |= ast.ModRef
		case "const":
			mods |= ast.ModConst
		case "static":
			mods |= ast.ModStatic
		case "autoptr":
			mods |= ast.ModAutoptr
		case "owned":
			mods |= ast.ModOwned
		case "notnull":
			mods |= ast.ModNotNull
		}
	}

	if strings.HasSuffix(bare, "[]") {
		elem := ParseType(strings.TrimSuffix(bare, "[]"))
		return &ast.TypeNode{Kind: ast.TypeArray, Elem: elem, Modifiers: mods}
	}

	if bare == "auto" {
		return &ast.TypeNode{Kind: ast.TypeAuto, Modifiers: mods}
	}

	base, args := ParseGenericType(bare)
	node := &ast.TypeNode{Kind: ast.TypeRef, Name: base, Modifiers: mods}
	for _, arg := range args {
		if child := ParseType(arg); child != nil {
			node.Args = append(node.Args, child)
		}
	}
	return node
}
