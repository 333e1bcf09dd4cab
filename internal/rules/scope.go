package rules

import (
	"context"
	"fmt"

	"enscript/internal/ast"
	"enscript/internal/diag"
	"enscript/internal/hier"
	"enscript/internal/source"
)

// ShadowedVariable warns when a declaration hides a name from an outer
// scope. Resolution priority is parameter over class member over
// global, so the warning names the nearest hidden declaration.
type ShadowedVariable struct{ baseRule }

func NewShadowedVariable() *ShadowedVariable {
	return &ShadowedVariable{baseRule{
		id:    RuleShadowedVariable,
		after: []string{RuleRedeclaredVariable},
		prio:  40,
	}}
}

func (r *ShadowedVariable) AppliesTo(n ast.Node) bool {
	switch x := n.(type) {
	case *ast.ParamDecl:
		return true
	case *ast.VarDecl:
		return x.Owner == nil
	}
	return false
}

func (r *ShadowedVariable) Check(ctx context.Context, n ast.Node, p *Pass, cfg Config) []diag.Diagnostic {
	if p.ShouldSkip(n, RuleRedeclaredVariable) {
		return nil
	}
	env := p.Env(n)
	switch x := n.(type) {
	case *ast.ParamDecl:
		return r.check(ctx, p, env, x.Name, x.NameSpan, false)
	case *ast.VarDecl:
		if env == nil || env.Func == nil {
			// Global variable, nothing outer to hide.
			return nil
		}
		return r.check(ctx, p, env, x.Name, x.NameSpan, true)
	}
	return nil
}

func (r *ShadowedVariable) check(ctx context.Context, p *Pass, env *hier.Env, name string, at source.Span, checkParams bool) []diag.Diagnostic {
	if name == "" {
		return nil
	}
	if checkParams && env != nil && env.Func != nil {
		for _, prm := range env.Func.Params {
			if prm.Name == name {
				return shadowDiag(name, "parameter", at, prm.NameSpan)
			}
		}
	}
	if env != nil && env.Class != nil {
		l, st := p.Resolver.FindMember(ctx, selfName(env.Class), name, hier.LookupOptions{AllowPrivate: true})
		if st == hier.StatusFound && !l.StaticMismatch {
			return shadowDiag(name, "class member", at, l.Member.NamePos())
		}
	}
	if globals := p.Resolver.Index().FindAllGlobalVariableDefinitions(name); len(globals) > 0 {
		return shadowDiag(name, "global variable", at, globals[0].NameSpan)
	}
	return nil
}

func shadowDiag(name, what string, at, declared source.Span) []diag.Diagnostic {
	d := diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.SemShadowedVariable,
		Message:  fmt.Sprintf("declaration of %s shadows a %s", name, what),
		Primary:  at,
	}
	d.Notes = append(d.Notes, diag.Note{Span: declared, Msg: "hidden declaration here"})
	return []diag.Diagnostic{d}
}

// RedeclaredVariable reports a name declared twice in the same block
// scope. Parameters seed the function's outermost scope, so a local
// re-using a parameter name is a redeclaration rather than a shadow.
type RedeclaredVariable struct{ baseRule }

func NewRedeclaredVariable() *RedeclaredVariable {
	return &RedeclaredVariable{baseRule{id: RuleRedeclaredVariable, prio: 42}}
}

func (r *RedeclaredVariable) AppliesTo(n ast.Node) bool {
	fn, ok := n.(*ast.FuncDecl)
	return ok && fn.Body != nil
}

func (r *RedeclaredVariable) Check(ctx context.Context, n ast.Node, p *Pass, cfg Config) []diag.Diagnostic {
	fn := n.(*ast.FuncDecl)
	top := make(map[string]source.Span, len(fn.Params))
	for _, prm := range fn.Params {
		top[prm.Name] = prm.NameSpan
	}
	w := &scopeWalker{pass: p, scopes: []map[string]source.Span{top}}
	w.stmts(fn.Body.Stmts)
	return w.diags
}

// scopeWalker tracks declarations per lexical block.
type scopeWalker struct {
	pass   *Pass
	scopes []map[string]source.Span
	diags  []diag.Diagnostic
}

func (w *scopeWalker) push() { w.scopes = append(w.scopes, map[string]source.Span{}) }
func (w *scopeWalker) pop()  { w.scopes = w.scopes[:len(w.scopes)-1] }

func (w *scopeWalker) declare(d *ast.VarDecl) {
	cur := w.scopes[len(w.scopes)-1]
	if prev, ok := cur[d.Name]; ok {
		out := diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.SemRedeclaredVariable,
			Message:  fmt.Sprintf("%s redeclared in this scope", d.Name),
			Primary:  d.NameSpan,
		}
		out.Notes = append(out.Notes, diag.Note{Span: prev, Msg: "previously declared here"})
		w.diags = append(w.diags, out)
		// Claim the declaration so the shadow rule stays silent on it.
		w.pass.MarkHandled(d, RuleRedeclaredVariable)
		return
	}
	cur[d.Name] = d.NameSpan
}

func (w *scopeWalker) stmts(list []ast.Stmt) {
	for _, s := range list {
		w.stmt(s)
	}
}

func (w *scopeWalker) stmt(s ast.Stmt) {
	switch x := s.(type) {
	case *ast.BlockStmt:
		w.push()
		w.stmts(x.Stmts)
		w.pop()
	case *ast.VarDeclStmt:
		for _, d := range x.Decls {
			w.declare(d)
		}
	case *ast.IfStmt:
		w.stmt(x.Then)
		if x.Else != nil {
			w.stmt(x.Else)
		}
	case *ast.WhileStmt:
		w.stmt(x.Body)
	case *ast.ForStmt:
		w.push()
		if x.Init != nil {
			w.stmt(x.Init)
		}
		w.stmt(x.Body)
		w.pop()
	case *ast.ForeachStmt:
		w.push()
		for _, v := range x.Vars {
			w.declare(v)
		}
		w.stmt(x.Body)
		w.pop()
	case *ast.SwitchStmt:
		for _, c := range x.Cases {
			w.push()
			w.stmts(c.Body)
			w.pop()
		}
	}
}
