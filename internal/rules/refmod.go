package rules

import (
	"context"
	"fmt"

	"enscript/internal/ast"
	"enscript/internal/diag"
	"enscript/internal/typestr"
)

// RefModifier warns about the strong reference modifier in positions
// where it has no effect: return types, parameters and locals holding
// reference-counted generics. Ownership is only meaningful on fields
// and globals; elsewhere the modifier misleads the reader.
type RefModifier struct{ baseRule }

func NewRefModifier() *RefModifier {
	return &RefModifier{baseRule{id: RuleRefModifier, prio: 50}}
}

func (r *RefModifier) AppliesTo(n ast.Node) bool {
	switch x := n.(type) {
	case *ast.FuncDecl:
		return true
	case *ast.ParamDecl:
		return true
	case *ast.VarDecl:
		return x.Owner == nil
	}
	return false
}

func (r *RefModifier) Check(ctx context.Context, n ast.Node, p *Pass, cfg Config) []diag.Diagnostic {
	switch x := n.(type) {
	case *ast.FuncDecl:
		return refDiag(x.ReturnType, "return type")
	case *ast.ParamDecl:
		return refDiag(x.Type, "parameter")
	case *ast.VarDecl:
		env := p.Env(n)
		if env == nil || env.Func == nil {
			// Global: ownership annotation is legitimate here.
			return nil
		}
		return refDiag(x.Type, "local variable")
	}
	return nil
}

func refDiag(t *ast.TypeNode, position string) []diag.Diagnostic {
	if t == nil || !t.Modifiers.Has(ast.ModRef) || !refCountedGeneric(t) {
		return nil
	}
	return []diag.Diagnostic{{
		Severity: diag.SevWarning,
		Code:     diag.SemRefModifier,
		Message:  fmt.Sprintf("ref modifier has no effect on a %s holding %s", position, t.String()),
		Primary:  t.Span,
	}}
}

// refCountedGeneric reports whether the type is a generic container
// or generic class instantiation subject to reference counting.
func refCountedGeneric(t *ast.TypeNode) bool {
	if t == nil {
		return false
	}
	if t.Kind == ast.TypeArray {
		return true
	}
	if t.Kind != ast.TypeRef {
		return false
	}
	return typestr.IsBuiltinContainer(t.Name) || len(t.Args) > 0
}
