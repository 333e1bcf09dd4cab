package ast

import (
	"strings"

	"enscript/internal/source"
)

// TypeKind tags the TypeNode union.
type TypeKind uint8

const (
	// TypeRef names a class, enum, typedef, generic parameter or builtin.
	// A non-empty Args list makes it a generic instantiation.
	TypeRef TypeKind = iota
	// TypeArray is the postfix `T[]` form.
	TypeArray
	// TypeAuto is the inferred `auto` type.
	TypeAuto
)

// TypeNode is a parsed type descriptor.
type TypeNode struct {
	Kind      TypeKind
	Name      string      // TypeRef only
	Modifiers Modifiers   // ref/const/autoptr in type position
	Args      []*TypeNode // generic arguments, TypeRef only
	Elem      *TypeNode   // TypeArray only
	Span      source.Span
}

func (t *TypeNode) Pos() source.Span { return t.Span }

// IsGeneric reports whether the node is a generic instantiation.
func (t *TypeNode) IsGeneric() bool {
	return t != nil && t.Kind == TypeRef && len(t.Args) > 0
}

// Clone deep-copies the type node.
func (t *TypeNode) Clone() *TypeNode {
	if t == nil {
		return nil
	}
	out := &TypeNode{
		Kind:      t.Kind,
		Name:      t.Name,
		Modifiers: t.Modifiers,
		Span:      t.Span,
		Elem:      t.Elem.Clone(),
	}
	if len(t.Args) > 0 {
		out.Args = make([]*TypeNode, len(t.Args))
		for i, a := range t.Args {
			out.Args[i] = a.Clone()
		}
	}
	return out
}

// String renders the canonical text form without modifiers, e.g.
// "map<string,int>" or "int[]".
func (t *TypeNode) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case TypeAuto:
		return "auto"
	case TypeArray:
		return t.Elem.String() + "[]"
	default:
		if len(t.Args) == 0 {
			return t.Name
		}
		var b strings.Builder
		b.WriteString(t.Name)
		b.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(a.String())
		}
		b.WriteByte('>')
		return b.String()
	}
}

// NewTypeRef builds a plain named type node.
func NewTypeRef(name string, span source.Span) *TypeNode {
	return &TypeNode{Kind: TypeRef, Name: name, Span: span}
}
