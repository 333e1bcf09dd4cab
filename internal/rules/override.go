package rules

import (
	"context"
	"fmt"

	"enscript/internal/ast"
	"enscript/internal/diag"
	"enscript/internal/hier"
)

// MissingOverride warns when a method re-declares a base class method
// with a matching signature but lacks the override modifier.
type MissingOverride struct{ baseRule }

func NewMissingOverride() *MissingOverride {
	return &MissingOverride{baseRule{id: RuleMissingOverride, prio: 48}}
}

func (r *MissingOverride) AppliesTo(n ast.Node) bool {
	fn, ok := n.(*ast.FuncDecl)
	return ok && fn.Owner != nil
}

func (r *MissingOverride) Check(ctx context.Context, n ast.Node, p *Pass, cfg Config) []diag.Diagnostic {
	fn := n.(*ast.FuncDecl)
	if fn.Modifiers.Has(ast.ModOverride) || fn.Modifiers.IsStaticLike() || fn.Modifiers.IsPrivate() {
		return nil
	}
	if isConstructorLike(fn) {
		return nil
	}
	base, owner, complete := p.Resolver.FindMethodInBases(ctx, fn.Owner, fn.Name)
	if base == nil || !complete {
		return nil
	}
	if !hier.SignatureMatches(fn, base) {
		return nil
	}
	d := diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.SemMissingOverride,
		Message:  fmt.Sprintf("method %s shadows base class method without the override modifier", fn.Name),
		Primary:  fn.NameSpan,
	}
	d.Notes = append(d.Notes, diag.Note{Span: base.NameSpan, Msg: fmt.Sprintf("base method declared in %s", owner.Name)})
	return []diag.Diagnostic{d}
}

// OverrideAccess warns when an override has no base method to
// override, or changes the base method's access level.
type OverrideAccess struct{ baseRule }

func NewOverrideAccess() *OverrideAccess {
	return &OverrideAccess{baseRule{id: RuleOverrideAccess, prio: 46}}
}

func (r *OverrideAccess) AppliesTo(n ast.Node) bool {
	fn, ok := n.(*ast.FuncDecl)
	return ok && fn.Owner != nil && fn.Modifiers.Has(ast.ModOverride)
}

func (r *OverrideAccess) Check(ctx context.Context, n ast.Node, p *Pass, cfg Config) []diag.Diagnostic {
	fn := n.(*ast.FuncDecl)
	base, owner, complete := p.Resolver.FindMethodInBases(ctx, fn.Owner, fn.Name)
	if base == nil {
		if !complete {
			return nil
		}
		return []diag.Diagnostic{{
			Severity: diag.SevWarning,
			Code:     diag.SemOverrideAccess,
			Message:  fmt.Sprintf("method %s is marked override but no base class declares it", fn.Name),
			Primary:  fn.NameSpan,
		}}
	}
	if accessLevel(fn.Modifiers) == accessLevel(base.Modifiers) {
		return nil
	}
	d := diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.SemOverrideAccess,
		Message: fmt.Sprintf("override %s changes access from %s to %s", fn.Name,
			accessName(base.Modifiers), accessName(fn.Modifiers)),
		Primary: fn.NameSpan,
	}
	d.Notes = append(d.Notes, diag.Note{Span: base.NameSpan, Msg: fmt.Sprintf("base method declared in %s", owner.Name)})
	return []diag.Diagnostic{d}
}

// isConstructorLike matches constructors and destructors, which repeat
// in every class of a hierarchy without overriding anything.
func isConstructorLike(fn *ast.FuncDecl) bool {
	if fn.Owner == nil {
		return false
	}
	return fn.Name == fn.Owner.Name || fn.Name == "~"+fn.Owner.Name
}

func accessLevel(m ast.Modifiers) int {
	switch {
	case m.IsPrivate():
		return 2
	case m.IsProtected():
		return 1
	default:
		return 0
	}
}

func accessName(m ast.Modifiers) string {
	switch accessLevel(m) {
	case 2:
		return "private"
	case 1:
		return "protected"
	default:
		return "public"
	}
}
