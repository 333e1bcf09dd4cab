package rules

import (
	"context"
	"fmt"

	"enscript/internal/ast"
	"enscript/internal/diag"
	"enscript/internal/hier"
	"enscript/internal/typestr"
)

// Rule IDs. Other rules refer to these in their After edges.
const (
	RuleUndeclaredFunction   = "undeclared-function"
	RuleUndeclaredMethod     = "undeclared-method"
	RuleUndeclaredVariable   = "undeclared-variable"
	RuleUndeclaredType       = "undeclared-type"
	RuleUndeclaredEnumMember = "undeclared-enum-member"
	RuleUndeclaredBaseClass  = "undeclared-base-class"
	RuleStaticMismatch       = "static-mismatch"
	RuleTypeMismatch         = "type-mismatch"
	RuleNarrowingConversion  = "narrowing-conversion"
	RuleRefModifier          = "ref-modifier"
	RuleMissingOverride      = "missing-override"
	RuleOverrideAccess       = "override-access"
	RuleShadowedVariable     = "shadowed-variable"
	RuleRedeclaredVariable   = "redeclared-variable"
)

// engineGlobals are functions provided by the host engine rather than
// script code. Calls to them are never undeclared.
var engineGlobals = map[string]bool{
	"Print":       true,
	"PrintFormat": true,
	"Error":       true,
	"ErrorEx":     true,
	"Assert":      true,
	"GetGame":     true,
	"Sleep":       true,
}

// UndeclaredEnumMember flags `EnumType.MEMBER` accesses naming an
// enumerator the enum does not declare. It runs first and claims the
// node, so the broader member rules stand down.
type UndeclaredEnumMember struct{ baseRule }

func NewUndeclaredEnumMember() *UndeclaredEnumMember {
	return &UndeclaredEnumMember{baseRule{id: RuleUndeclaredEnumMember, prio: 90}}
}

func (r *UndeclaredEnumMember) AppliesTo(n ast.Node) bool {
	_, ok := n.(*ast.MemberExpr)
	return ok
}

func (r *UndeclaredEnumMember) Check(ctx context.Context, n ast.Node, p *Pass, cfg Config) []diag.Diagnostic {
	x := n.(*ast.MemberExpr)
	obj, st := p.Resolver.ResolveObjectType(ctx, x.Object, p.Env(n))
	if st != hier.StatusFound || obj.Enum == nil {
		return nil
	}
	p.MarkHandled(n, r.ID())
	for _, m := range obj.Enum.Members {
		if m.Name == x.Name {
			return nil
		}
	}
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemUndeclaredEnumMember,
		Message:  fmt.Sprintf("enum %s has no member %s", obj.Enum.Name, x.Name),
		Primary:  x.NameSpan,
	}
	d.Notes = append(d.Notes, diag.Note{Span: obj.Enum.NameSpan, Msg: "enum declared here"})
	return []diag.Diagnostic{d}
}

// UndeclaredMethod flags `obj.Method(...)` calls whose method cannot be
// found anywhere in the receiver's fully resolved hierarchy. If any
// link of the hierarchy is unresolved the rule assumes the method
// exists.
type UndeclaredMethod struct{ baseRule }

func NewUndeclaredMethod() *UndeclaredMethod {
	return &UndeclaredMethod{baseRule{
		id:    RuleUndeclaredMethod,
		after: []string{RuleUndeclaredEnumMember, RuleStaticMismatch},
		prio:  85,
	}}
}

func (r *UndeclaredMethod) AppliesTo(n ast.Node) bool {
	c, ok := n.(*ast.CallExpr)
	if !ok {
		return false
	}
	_, ok = c.Callee.(*ast.MemberExpr)
	return ok
}

func (r *UndeclaredMethod) Check(ctx context.Context, n ast.Node, p *Pass, cfg Config) []diag.Diagnostic {
	call := n.(*ast.CallExpr)
	callee := call.Callee.(*ast.MemberExpr)
	if p.ShouldSkip(callee, RuleUndeclaredEnumMember) {
		return nil
	}
	env := p.Env(n)
	obj, st := p.Resolver.ResolveObjectType(ctx, callee.Object, env)
	if st != hier.StatusFound || obj.Enum != nil || obj.Type == nil {
		return nil
	}
	_, st = p.Resolver.FindMember(ctx, obj.TypeName(), callee.Name, hier.LookupOptions{
		WantStatic:    obj.Static,
		AllowPrivate:  obj.OwnAccess,
		ExcludeModded: obj.IsSuper,
	})
	p.MarkHandled(n, r.ID())
	if st != hier.StatusMissing {
		return nil
	}
	return []diag.Diagnostic{{
		Severity: diag.SevError,
		Code:     diag.SemUndeclaredMethod,
		Message:  fmt.Sprintf("%s has no method %s", obj.TypeName(), callee.Name),
		Primary:  callee.NameSpan,
	}}
}

// UndeclaredFunction flags bare-name calls that resolve to neither a
// method of the enclosing class, a global function, an engine builtin,
// nor a type name.
type UndeclaredFunction struct{ baseRule }

func NewUndeclaredFunction() *UndeclaredFunction {
	return &UndeclaredFunction{baseRule{
		id:    RuleUndeclaredFunction,
		after: []string{RuleUndeclaredMethod, RuleUndeclaredEnumMember, RuleStaticMismatch},
		prio:  80,
	}}
}

func (r *UndeclaredFunction) AppliesTo(n ast.Node) bool {
	c, ok := n.(*ast.CallExpr)
	if !ok {
		return false
	}
	_, ok = c.Callee.(*ast.IdentExpr)
	return ok
}

func (r *UndeclaredFunction) Check(ctx context.Context, n ast.Node, p *Pass, cfg Config) []diag.Diagnostic {
	call := n.(*ast.CallExpr)
	callee := call.Callee.(*ast.IdentExpr)
	name := callee.Name
	if name == "" || engineGlobals[name] {
		return nil
	}
	if p.ShouldSkip(n, RuleUndeclaredMethod) {
		return nil
	}
	env := p.Env(n)
	if env != nil && env.Class != nil {
		_, st := p.Resolver.FindMember(ctx, selfName(env.Class), name, hier.LookupOptions{AllowPrivate: true})
		if st != hier.StatusMissing {
			return nil
		}
	}
	idx := p.Resolver.Index()
	if len(idx.FindAllGlobalFunctionDefinitions(name)) > 0 {
		return nil
	}
	// Class and enum names appear in call position for constructor
	// style instantiation and casts.
	if len(idx.FindAllClassDefinitions(name)) > 0 || len(idx.FindAllEnumDefinitions(name)) > 0 {
		return nil
	}
	if _, ok := idx.ResolveTypedefFullType(name); ok {
		return nil
	}
	// A global may live in an include file that indexes lazily by name.
	if idx.LoadClassFromIncludePaths(ctx, name) {
		if len(idx.FindAllGlobalFunctionDefinitions(name)) > 0 ||
			len(idx.FindAllClassDefinitions(name)) > 0 {
			return nil
		}
	}
	return []diag.Diagnostic{{
		Severity: diag.SevError,
		Code:     diag.SemUndeclaredFunction,
		Message:  fmt.Sprintf("call to undeclared function %s", name),
		Primary:  callee.Span,
	}}
}

// UndeclaredVariable flags value uses that resolve to nothing: bare
// identifiers with no matching local, parameter, class member, global
// or type name, and member accesses the receiver's resolved hierarchy
// does not declare. Callee positions belong to the call rules.
type UndeclaredVariable struct{ baseRule }

func NewUndeclaredVariable() *UndeclaredVariable {
	return &UndeclaredVariable{baseRule{
		id:    RuleUndeclaredVariable,
		after: []string{RuleUndeclaredEnumMember, RuleUndeclaredFunction, RuleStaticMismatch},
		prio:  78,
	}}
}

func (r *UndeclaredVariable) AppliesTo(n ast.Node) bool {
	switch n.(type) {
	case *ast.IdentExpr, *ast.MemberExpr:
		return true
	}
	return false
}

func (r *UndeclaredVariable) Check(ctx context.Context, n ast.Node, p *Pass, cfg Config) []diag.Diagnostic {
	if p.InCallPosition(n) {
		return nil
	}
	if m, ok := n.(*ast.MemberExpr); ok {
		return r.checkMember(ctx, m, p)
	}
	x := n.(*ast.IdentExpr)
	if x.Name == "" {
		return nil
	}
	env := p.Env(n)
	if env != nil && env.Func != nil {
		if hier.LocalType(env.Func, x.Name, x.Span.Start) != nil {
			return nil
		}
	}
	if env != nil && env.Class != nil {
		_, st := p.Resolver.FindMember(ctx, selfName(env.Class), x.Name, hier.LookupOptions{AllowPrivate: true})
		switch st {
		case hier.StatusFound, hier.StatusUnknown:
			return nil
		}
		for _, gp := range env.Class.GenericParams {
			if gp == x.Name {
				return nil
			}
		}
	}
	idx := p.Resolver.Index()
	if len(idx.FindAllGlobalVariableDefinitions(x.Name)) > 0 {
		return nil
	}
	// Type names are legal in value position as static receivers.
	if len(idx.FindAllClassDefinitions(x.Name)) > 0 || len(idx.FindAllEnumDefinitions(x.Name)) > 0 {
		return nil
	}
	if _, ok := idx.ResolveTypedefFullType(x.Name); ok {
		return nil
	}
	if idx.LoadClassFromIncludePaths(ctx, x.Name) {
		if len(idx.FindAllClassDefinitions(x.Name)) > 0 ||
			len(idx.FindAllGlobalVariableDefinitions(x.Name)) > 0 {
			return nil
		}
	}
	return []diag.Diagnostic{{
		Severity: diag.SevError,
		Code:     diag.SemUndeclaredVariable,
		Message:  fmt.Sprintf("use of undeclared variable %s", x.Name),
		Primary:  x.Span,
	}}
}

func (r *UndeclaredVariable) checkMember(ctx context.Context, x *ast.MemberExpr, p *Pass) []diag.Diagnostic {
	if p.ShouldSkip(x, RuleUndeclaredEnumMember, RuleStaticMismatch) {
		return nil
	}
	env := p.Env(x)
	obj, st := p.Resolver.ResolveObjectType(ctx, x.Object, env)
	if st != hier.StatusFound || obj.Enum != nil || obj.Type == nil {
		return nil
	}
	_, st = p.Resolver.FindMember(ctx, obj.TypeName(), x.Name, hier.LookupOptions{
		WantStatic:    obj.Static,
		AllowPrivate:  obj.OwnAccess,
		ExcludeModded: obj.IsSuper,
	})
	if st != hier.StatusMissing {
		return nil
	}
	return []diag.Diagnostic{{
		Severity: diag.SevError,
		Code:     diag.SemUndeclaredVariable,
		Message:  fmt.Sprintf("%s has no member %s", obj.TypeName(), x.Name),
		Primary:  x.NameSpan,
	}}
}

// UndeclaredType flags type annotations naming types the workspace and
// include paths do not declare. Declarations carry their types outside
// the expression tree, so the rule applies to the declaring nodes.
type UndeclaredType struct{ baseRule }

func NewUndeclaredType() *UndeclaredType {
	return &UndeclaredType{baseRule{id: RuleUndeclaredType, prio: 76}}
}

func (r *UndeclaredType) AppliesTo(n ast.Node) bool {
	switch n.(type) {
	case *ast.VarDecl, *ast.ParamDecl, *ast.FuncDecl, *ast.TypedefDecl, *ast.NewExpr:
		return true
	}
	return false
}

func (r *UndeclaredType) Check(ctx context.Context, n ast.Node, p *Pass, cfg Config) []diag.Diagnostic {
	var types []*ast.TypeNode
	switch x := n.(type) {
	case *ast.VarDecl:
		types = append(types, x.Type)
	case *ast.ParamDecl:
		types = append(types, x.Type)
	case *ast.FuncDecl:
		types = append(types, x.ReturnType)
	case *ast.TypedefDecl:
		types = append(types, x.Target)
	case *ast.NewExpr:
		types = append(types, x.Type)
	}
	var ds []diag.Diagnostic
	env := p.Env(n)
	for _, t := range types {
		eachNamedType(t, func(ref *ast.TypeNode) {
			if d := r.checkName(ctx, p, env, ref); d != nil {
				ds = append(ds, *d)
			}
		})
	}
	return ds
}

func (r *UndeclaredType) checkName(ctx context.Context, p *Pass, env *hier.Env, ref *ast.TypeNode) *diag.Diagnostic {
	name := ref.Name
	if name == "" || !typestr.IsUserType(name) {
		return nil
	}
	if env != nil && env.Class != nil {
		for _, gp := range env.Class.GenericParams {
			if gp == name {
				return nil
			}
		}
	}
	idx := p.Resolver.Index()
	if typeNameKnown(idx, name) {
		return nil
	}
	if idx.LoadClassFromIncludePaths(ctx, name) && typeNameKnown(idx, name) {
		return nil
	}
	return &diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemUndeclaredType,
		Message:  fmt.Sprintf("reference to undeclared type %s", name),
		Primary:  ref.Span,
	}
}

// UndeclaredBaseClass flags `class X extends Y` where Y resolves to no
// known class or class typedef. Modded fragments have no formal base.
type UndeclaredBaseClass struct{ baseRule }

func NewUndeclaredBaseClass() *UndeclaredBaseClass {
	return &UndeclaredBaseClass{baseRule{id: RuleUndeclaredBaseClass, prio: 75}}
}

func (r *UndeclaredBaseClass) AppliesTo(n ast.Node) bool {
	c, ok := n.(*ast.ClassDecl)
	return ok && c.BaseName != "" && !c.IsModded()
}

func (r *UndeclaredBaseClass) Check(ctx context.Context, n ast.Node, p *Pass, cfg Config) []diag.Diagnostic {
	c := n.(*ast.ClassDecl)
	base := typestr.BaseName(c.BaseName)
	if typestr.IsBuiltin(base) {
		return nil
	}
	for _, gp := range c.GenericParams {
		if gp == base {
			return nil
		}
	}
	idx := p.Resolver.Index()
	if classNameKnown(idx, base) {
		return nil
	}
	if idx.LoadClassFromIncludePaths(ctx, base) && classNameKnown(idx, base) {
		return nil
	}
	at := c.NameSpan
	if c.BaseType != nil {
		at = c.BaseType.Span
	}
	return []diag.Diagnostic{{
		Severity: diag.SevError,
		Code:     diag.SemUndeclaredBaseClass,
		Message:  fmt.Sprintf("class %s extends undeclared base class %s", c.Name, base),
		Primary:  at,
	}}
}

func typeNameKnown(idx hier.SymbolIndex, name string) bool {
	if len(idx.FindAllClassDefinitions(name)) > 0 {
		return true
	}
	if len(idx.FindAllEnumDefinitions(name)) > 0 {
		return true
	}
	if len(idx.FindAllTypedefDefinitions(name)) > 0 {
		return true
	}
	return false
}

func classNameKnown(idx hier.SymbolIndex, name string) bool {
	if len(idx.FindAllClassDefinitions(name)) > 0 {
		return true
	}
	if resolved, ok := idx.ResolveTypedefClassName(name); ok {
		return len(idx.FindAllClassDefinitions(resolved)) > 0
	}
	return false
}

// eachNamedType visits every TypeRef node in a type tree.
func eachNamedType(t *ast.TypeNode, f func(*ast.TypeNode)) {
	if t == nil {
		return
	}
	switch t.Kind {
	case ast.TypeArray:
		eachNamedType(t.Elem, f)
	case ast.TypeRef:
		f(t)
		for _, a := range t.Args {
			eachNamedType(a, f)
		}
	}
}

func selfName(class *ast.ClassDecl) string {
	t := ast.NewTypeRef(class.Name, class.NameSpan)
	for _, p := range class.GenericParams {
		t.Args = append(t.Args, ast.NewTypeRef(p, class.NameSpan))
	}
	return t.String()
}
