package rules

import (
	"context"
	"fmt"

	"enscript/internal/ast"
	"enscript/internal/diag"
	"enscript/internal/hier"
	"enscript/internal/source"
	"enscript/internal/token"
)

// typeSite is one place where two types must agree: a value flowing
// into a typed slot (assignment, initializer, return, call argument)
// or the operand pair of a binary operator. The message already names
// both types.
type typeSite struct {
	from    *ast.TypeNode
	to      *ast.TypeNode
	expr    ast.Expr
	primary source.Span
	message string
	// symmetric marks operand pairs with no flow direction: the site
	// is fine when either operand accepts the other.
	symmetric bool
}

func typeCheckApplies(n ast.Node) bool {
	switch x := n.(type) {
	case *ast.AssignExpr:
		return x.Op == token.Assign
	case *ast.VarDecl:
		return x.Init != nil
	case *ast.ReturnStmt:
		return x.Value != nil
	case *ast.CallExpr:
		return len(x.Args) > 0
	case *ast.BinaryExpr:
		return binaryOperandsChecked(x.Op)
	}
	return false
}

// binaryOperandsChecked reports whether the operator requires its
// operands to share a type domain. Logical && and || take bool context
// and stay lenient.
func binaryOperandsChecked(op token.Kind) bool {
	switch op {
	case token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Shl, token.Shr, token.Amp, token.Pipe, token.Caret,
		token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return true
	}
	return false
}

func isStringType(t *ast.TypeNode) bool {
	return t != nil && t.Kind == ast.TypeRef && t.Name == "string"
}

// typeSites resolves the flow sites of one node. Sites whose value or
// slot type cannot be resolved are dropped, keeping both type rules
// fail-open under partial indexing.
func typeSites(ctx context.Context, p *Pass, n ast.Node) []typeSite {
	env := p.Env(n)
	resolve := func(e ast.Expr) *ast.TypeNode {
		obj, st := p.Resolver.ResolveObjectType(ctx, e, env)
		if st != hier.StatusFound {
			return nil
		}
		return obj.Type
	}

	var out []typeSite
	switch x := n.(type) {
	case *ast.AssignExpr:
		to := resolve(x.Target)
		from := resolve(x.Value)
		if to != nil && from != nil {
			out = append(out, typeSite{
				from: from, to: to, expr: x.Value, primary: x.Span,
				message: fmt.Sprintf("cannot assign %s to %s", from.String(), to.String()),
			})
		}

	case *ast.VarDecl:
		if x.Type == nil || x.Type.Kind == ast.TypeAuto {
			break
		}
		if from := resolve(x.Init); from != nil {
			out = append(out, typeSite{
				from: from, to: x.Type, expr: x.Init, primary: x.Span,
				message: fmt.Sprintf("cannot initialize %s variable with %s value", x.Type.String(), from.String()),
			})
		}

	case *ast.ReturnStmt:
		if env == nil || env.Func == nil {
			break
		}
		ret := env.Func.ReturnType
		if ret == nil || (ret.Kind == ast.TypeRef && ret.Name == "void") {
			break
		}
		if from := resolve(x.Value); from != nil {
			out = append(out, typeSite{
				from: from, to: ret, expr: x.Value, primary: x.Value.Pos(),
				message: fmt.Sprintf("cannot return %s from function returning %s", from.String(), ret.String()),
			})
		}

	case *ast.CallExpr:
		params := callParamTypes(ctx, p, x, env)
		for i, arg := range x.Args {
			if i >= len(params) || params[i] == nil {
				break
			}
			if from := resolve(arg); from != nil {
				out = append(out, typeSite{
					from: from, to: params[i], expr: arg, primary: arg.Pos(),
					message: fmt.Sprintf("argument %d: cannot pass %s as %s", i+1, from.String(), params[i].String()),
				})
			}
		}

	case *ast.BinaryExpr:
		left := resolve(x.Left)
		right := resolve(x.Right)
		if left == nil || right == nil {
			break
		}
		// String concatenation formats any operand.
		if x.Op == token.Plus && (isStringType(left) || isStringType(right)) {
			break
		}
		out = append(out, typeSite{
			from: left, to: right, expr: x.Left, primary: x.Span, symmetric: true,
			message: fmt.Sprintf("invalid operands to %s: %s and %s", x.Op.String(), left.String(), right.String()),
		})
	}
	return out
}

// callParamTypes resolves the substituted parameter types of the
// callee, or nil when the callee is unknown.
func callParamTypes(ctx context.Context, p *Pass, call *ast.CallExpr, env *hier.Env) []*ast.TypeNode {
	switch callee := call.Callee.(type) {
	case *ast.MemberExpr:
		obj, st := p.Resolver.ResolveObjectType(ctx, callee.Object, env)
		if st != hier.StatusFound || obj.Enum != nil || obj.Type == nil {
			return nil
		}
		l, st := p.Resolver.FindMember(ctx, obj.TypeName(), callee.Name, hier.LookupOptions{
			WantStatic:    obj.Static,
			AllowPrivate:  obj.OwnAccess,
			ExcludeModded: obj.IsSuper,
		})
		if st != hier.StatusFound || !l.IsMethod() {
			return nil
		}
		return l.ParamTypes

	case *ast.IdentExpr:
		if env != nil && env.Class != nil {
			l, st := p.Resolver.FindMember(ctx, selfName(env.Class), callee.Name, hier.LookupOptions{AllowPrivate: true})
			if st == hier.StatusFound && l.IsMethod() {
				return l.ParamTypes
			}
		}
		fns := p.Resolver.Index().FindAllGlobalFunctionDefinitions(callee.Name)
		if len(fns) == 0 {
			return nil
		}
		params := make([]*ast.TypeNode, 0, len(fns[0].Params))
		for _, prm := range fns[0].Params {
			params = append(params, prm.Type)
		}
		return params
	}
	return nil
}

// TypeMismatch reports hard type incompatibilities on assignments,
// initializers, returns and call arguments. Narrowing conversions are
// left to the narrowing rule; indeterminate verdicts are silent.
type TypeMismatch struct{ baseRule }

func NewTypeMismatch() *TypeMismatch {
	return &TypeMismatch{baseRule{id: RuleTypeMismatch, prio: 60}}
}

func (r *TypeMismatch) AppliesTo(n ast.Node) bool { return typeCheckApplies(n) }

func (r *TypeMismatch) Check(ctx context.Context, n ast.Node, p *Pass, cfg Config) []diag.Diagnostic {
	env := p.Env(n)
	var ds []diag.Diagnostic
	for _, site := range typeSites(ctx, p, n) {
		if p.Resolver.Compatible(ctx, site.from, site.to, site.expr, env) != hier.Incompatible {
			continue
		}
		// Operand pairs have no direction: widening and enum to int
		// coercions may hold the other way around.
		if site.symmetric && p.Resolver.Compatible(ctx, site.to, site.from, nil, env) != hier.Incompatible {
			continue
		}
		ds = append(ds, diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.SemTypeMismatch,
			Message:  site.message,
			Primary:  site.primary,
		})
	}
	return ds
}

// NarrowingConversion reports lossy float to int flows. The default
// severity is a warning; host configuration may raise it to an error.
type NarrowingConversion struct{ baseRule }

func NewNarrowingConversion() *NarrowingConversion {
	return &NarrowingConversion{baseRule{
		id:    RuleNarrowingConversion,
		after: []string{RuleTypeMismatch},
		prio:  58,
	}}
}

func (r *NarrowingConversion) AppliesTo(n ast.Node) bool { return typeCheckApplies(n) }

func (r *NarrowingConversion) Check(ctx context.Context, n ast.Node, p *Pass, cfg Config) []diag.Diagnostic {
	env := p.Env(n)
	var ds []diag.Diagnostic
	for _, site := range typeSites(ctx, p, n) {
		// Operand mixes are not stores; a float next to an int widens.
		if site.symmetric {
			continue
		}
		if p.Resolver.Compatible(ctx, site.from, site.to, site.expr, env) != hier.CompatibleNarrowing {
			continue
		}
		ds = append(ds, diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.SemNarrowingConversion,
			Message:  fmt.Sprintf("implicit narrowing conversion from %s to %s", site.from.String(), site.to.String()),
			Primary:  site.primary,
		})
	}
	return ds
}
