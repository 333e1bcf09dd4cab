package rules

import (
	"context"
	"fmt"

	"enscript/internal/ast"
	"enscript/internal/diag"
	"enscript/internal/hier"
)

// StaticMismatch warns when a member exists but only in the opposite
// access mode: a static member reached through an instance, or an
// instance member reached through the class name. The resolver reports
// such a member as found, so the undeclared rules stay silent and this
// rule owns the finding.
type StaticMismatch struct{ baseRule }

func NewStaticMismatch() *StaticMismatch {
	return &StaticMismatch{baseRule{id: RuleStaticMismatch, prio: 88}}
}

func (r *StaticMismatch) AppliesTo(n ast.Node) bool {
	_, ok := n.(*ast.MemberExpr)
	return ok
}

func (r *StaticMismatch) Check(ctx context.Context, n ast.Node, p *Pass, cfg Config) []diag.Diagnostic {
	x := n.(*ast.MemberExpr)
	env := p.Env(n)
	obj, st := p.Resolver.ResolveObjectType(ctx, x.Object, env)
	if st != hier.StatusFound || obj.Enum != nil || obj.Type == nil {
		return nil
	}
	l, st := p.Resolver.FindMember(ctx, obj.TypeName(), x.Name, hier.LookupOptions{
		WantStatic:    obj.Static,
		AllowPrivate:  obj.OwnAccess,
		ExcludeModded: obj.IsSuper,
	})
	if st != hier.StatusFound || !l.StaticMismatch {
		return nil
	}
	p.MarkHandled(n, r.ID())
	var msg string
	if l.Member.Mods().IsStaticLike() {
		msg = fmt.Sprintf("static member %s accessed through an instance of %s", x.Name, obj.TypeName())
	} else {
		msg = fmt.Sprintf("instance member %s accessed through class name %s", x.Name, obj.TypeName())
	}
	d := diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.SemStaticMismatch,
		Message:  msg,
		Primary:  x.NameSpan,
	}
	d.Notes = append(d.Notes, diag.Note{Span: l.Member.NamePos(), Msg: "declared here"})
	return []diag.Diagnostic{d}
}
