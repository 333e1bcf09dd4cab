package hier

import (
	"enscript/internal/ast"
	"enscript/internal/source"
)

// Bindings map generic parameter names to concrete type nodes for one
// instantiation site.
type Bindings map[string]*ast.TypeNode

// BindGenericArgs builds a substitution map positionally from a class's
// declared generic parameters and the use site's type arguments. Extra
// arguments are ignored; missing arguments leave parameters unbound.
// Unbound parameters substitute to `auto` so they can never trigger a
// compatibility diagnostic.
func BindGenericArgs(class *ast.ClassDecl, args []*ast.TypeNode) Bindings {
	if class == nil || len(class.GenericParams) == 0 {
		return nil
	}
	b := make(Bindings, len(class.GenericParams))
	for i, param := range class.GenericParams {
		if i < len(args) && args[i] != nil {
			b[param] = args[i]
		} else {
			b[param] = &ast.TypeNode{Kind: ast.TypeAuto}
		}
	}
	return b
}

// Substitute rewrites generic parameter references inside t according
// to the bindings, recursing through nested generic arguments and
// array element types. The input is never mutated; untouched subtrees
// are shared.
func Substitute(t *ast.TypeNode, b Bindings) *ast.TypeNode {
	if t == nil || len(b) == 0 {
		return t
	}
	switch t.Kind {
	case ast.TypeAuto:
		return t
	case ast.TypeArray:
		elem := Substitute(t.Elem, b)
		if elem == t.Elem {
			return t
		}
		return &ast.TypeNode{Kind: ast.TypeArray, Elem: elem, Modifiers: t.Modifiers, Span: t.Span}
	default:
		if len(t.Args) == 0 {
			if repl, ok := b[t.Name]; ok {
				return retagged(repl, t.Modifiers, t.Span)
			}
			return t
		}
		args := make([]*ast.TypeNode, len(t.Args))
		changed := false
		for i, a := range t.Args {
			args[i] = Substitute(a, b)
			if args[i] != a {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return &ast.TypeNode{
			Kind:      ast.TypeRef,
			Name:      t.Name,
			Modifiers: t.Modifiers,
			Args:      args,
			Span:      t.Span,
		}
	}
}

// retagged clones a replacement node so the use site keeps its own
// modifiers (a `ref T` field stays ref after T binds) and span.
func retagged(repl *ast.TypeNode, mods ast.Modifiers, span source.Span) *ast.TypeNode {
	out := repl.Clone()
	out.Modifiers |= mods
	out.Span = span
	return out
}
