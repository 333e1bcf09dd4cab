package hier

import (
	"context"

	"enscript/internal/ast"
	"enscript/internal/token"
	"enscript/internal/trace"
	"enscript/internal/typestr"
)

// NullTypeName is the sentinel type of the `null` literal.
const NullTypeName = "null"

// ObjectType is the resolved static type of an object expression as
// seen before a member access.
type ObjectType struct {
	// Type is the resolved type node; nil only when Status was not
	// Found.
	Type *ast.TypeNode
	// Static marks class-name access form (StaticClass.Member).
	Static bool
	// IsSuper marks super access, including the modded-class case
	// where super refers to the same class's non-modded definition.
	IsSuper bool
	// Enum is set when the expression names an enum type directly.
	Enum *ast.EnumDecl
	// OwnAccess is set for this/super/implicit-self expressions,
	// which may see private members.
	OwnAccess bool
}

// TypeName renders the object type for member lookups.
func (o ObjectType) TypeName() string {
	return o.Type.String()
}

// Env is the lexical context an expression is resolved in.
type Env struct {
	Class *ast.ClassDecl // enclosing class fragment, nil at global scope
	Func  *ast.FuncDecl  // enclosing function or method, nil outside bodies
}

// ResolveObjectType resolves the static type of an object expression:
// identifiers, this/super, literals, member chains, calls, indexing.
// Results are cached per AST node for the remainder of the pass.
func (r *Resolver) ResolveObjectType(ctx context.Context, e ast.Expr, env *Env) (ObjectType, Status) {
	if e == nil {
		return ObjectType{}, StatusUnknown
	}
	if entry, ok := r.cache.objects[e]; ok {
		return entry.obj, entry.status
	}
	obj, st := r.resolveObjectType(ctx, e, env)
	r.cache.objects[e] = objectEntry{obj: obj, status: st}
	return obj, st
}

func (r *Resolver) resolveObjectType(ctx context.Context, e ast.Expr, env *Env) (ObjectType, Status) {
	switch x := e.(type) {
	case *ast.IdentExpr:
		return r.resolveIdent(ctx, x, env)

	case *ast.ThisExpr:
		if env == nil || env.Class == nil {
			return ObjectType{}, StatusUnknown
		}
		return ObjectType{Type: selfType(env.Class), OwnAccess: true}, StatusFound

	case *ast.SuperExpr:
		return resolveSuper(env)

	case *ast.NullLit:
		return ObjectType{Type: ast.NewTypeRef(NullTypeName, x.Span)}, StatusFound
	case *ast.IntLit:
		return ObjectType{Type: ast.NewTypeRef("int", x.Span)}, StatusFound
	case *ast.FloatLit:
		return ObjectType{Type: ast.NewTypeRef("float", x.Span)}, StatusFound
	case *ast.BoolLit:
		return ObjectType{Type: ast.NewTypeRef("bool", x.Span)}, StatusFound
	case *ast.StringLit:
		return ObjectType{Type: ast.NewTypeRef("string", x.Span)}, StatusFound

	case *ast.MemberExpr:
		return r.resolveMemberAccess(ctx, x, env)

	case *ast.CallExpr:
		return r.resolveCallType(ctx, x, env)

	case *ast.IndexExpr:
		return r.resolveIndexType(ctx, x, env)

	case *ast.NewExpr:
		if x.Type == nil {
			return ObjectType{}, StatusUnknown
		}
		return ObjectType{Type: x.Type}, StatusFound

	case *ast.UnaryExpr:
		if x.Op == token.Bang {
			return ObjectType{Type: ast.NewTypeRef("bool", x.Span)}, StatusFound
		}
		inner, st := r.ResolveObjectType(ctx, x.Operand, env)
		if st != StatusFound {
			return ObjectType{}, st
		}
		return ObjectType{Type: inner.Type}, StatusFound

	case *ast.BinaryExpr:
		return r.resolveBinaryType(ctx, x, env)

	case *ast.AssignExpr:
		inner, st := r.ResolveObjectType(ctx, x.Target, env)
		if st != StatusFound {
			return ObjectType{}, st
		}
		return ObjectType{Type: inner.Type}, StatusFound

	default:
		return ObjectType{}, StatusUnknown
	}
}

// resolveIdent applies the name priority order: locals and parameters,
// then class members (implicit this), then globals, then type names
// used as static-access receivers.
func (r *Resolver) resolveIdent(ctx context.Context, x *ast.IdentExpr, env *Env) (ObjectType, Status) {
	if x.Name == "" {
		return ObjectType{}, StatusUnknown // parser placeholder, skip silently
	}

	if env != nil && env.Func != nil {
		if t := LocalType(env.Func, x.Name, x.Span.Start); t != nil {
			return ObjectType{Type: t}, StatusFound
		}
	}

	if env != nil && env.Class != nil {
		l, st := r.FindMember(ctx, selfTypeName(env.Class), x.Name, LookupOptions{AllowPrivate: true})
		if st == StatusFound {
			// Unqualified access inside the class reaches both modes;
			// a static member found this way is not a mismatch.
			return ObjectType{Type: l.Type, OwnAccess: true}, StatusFound
		}
		if st == StatusUnknown {
			return ObjectType{}, StatusUnknown
		}
	}

	if globals := r.index.FindAllGlobalVariableDefinitions(x.Name); len(globals) > 0 {
		return ObjectType{Type: globals[0].Type}, StatusFound
	}

	if enums := r.index.FindAllEnumDefinitions(x.Name); len(enums) > 0 {
		return ObjectType{Type: ast.NewTypeRef(x.Name, x.Span), Static: true, Enum: enums[0]}, StatusFound
	}
	if len(r.index.FindAllClassDefinitions(x.Name)) > 0 {
		return ObjectType{Type: ast.NewTypeRef(x.Name, x.Span), Static: true}, StatusFound
	}
	if full, ok := r.index.ResolveTypedefFullType(x.Name); ok {
		return ObjectType{Type: typestr.ParseType(full), Static: true}, StatusFound
	}

	trace.Debugf(r.tracer, "hier.exprtype", "identifier %s unresolved", x.Name)
	return ObjectType{}, StatusUnknown
}

func resolveSuper(env *Env) (ObjectType, Status) {
	if env == nil || env.Class == nil {
		return ObjectType{}, StatusUnknown
	}
	if env.Class.IsModded() {
		// Modding has no formal base class: super targets the same
		// class's non-modded definition.
		return ObjectType{
			Type:      ast.NewTypeRef(env.Class.Name, env.Class.NameSpan),
			IsSuper:   true,
			OwnAccess: true,
		}, StatusFound
	}
	if env.Class.BaseName == "" {
		return ObjectType{}, StatusUnknown
	}
	base := env.Class.BaseType
	if base == nil {
		base = ast.NewTypeRef(env.Class.BaseName, env.Class.NameSpan)
	}
	return ObjectType{Type: base, IsSuper: true, OwnAccess: true}, StatusFound
}

func (r *Resolver) resolveMemberAccess(ctx context.Context, x *ast.MemberExpr, env *Env) (ObjectType, Status) {
	obj, st := r.ResolveObjectType(ctx, x.Object, env)
	if st != StatusFound {
		return ObjectType{}, st
	}

	if obj.Enum != nil {
		for _, m := range obj.Enum.Members {
			if m.Name == x.Name {
				return ObjectType{Type: ast.NewTypeRef(obj.Enum.Name, x.Span)}, StatusFound
			}
		}
		return ObjectType{}, StatusMissing
	}

	l, st := r.FindMember(ctx, obj.TypeName(), x.Name, LookupOptions{
		WantStatic:    obj.Static,
		AllowPrivate:  obj.OwnAccess,
		ExcludeModded: obj.IsSuper,
	})
	if st != StatusFound {
		return ObjectType{}, st
	}
	return ObjectType{Type: l.Type}, StatusFound
}

func (r *Resolver) resolveCallType(ctx context.Context, x *ast.CallExpr, env *Env) (ObjectType, Status) {
	switch callee := x.Callee.(type) {
	case *ast.IdentExpr:
		if callee.Name == "" {
			return ObjectType{}, StatusUnknown
		}
		// Implicit this dispatch first.
		if env != nil && env.Class != nil {
			l, st := r.FindMember(ctx, selfTypeName(env.Class), callee.Name, LookupOptions{AllowPrivate: true})
			if st == StatusFound && l.IsMethod() {
				return ObjectType{Type: l.Type}, StatusFound
			}
		}
		if ret, ok := r.index.GlobalFunctionReturnType(callee.Name); ok {
			return ObjectType{Type: typestr.ParseType(ret)}, StatusFound
		}
		return ObjectType{}, StatusUnknown

	case *ast.MemberExpr:
		obj, st := r.ResolveObjectType(ctx, callee.Object, env)
		if st != StatusFound {
			return ObjectType{}, st
		}
		l, st := r.FindMember(ctx, obj.TypeName(), callee.Name, LookupOptions{
			WantStatic:    obj.Static,
			AllowPrivate:  obj.OwnAccess,
			ExcludeModded: obj.IsSuper,
		})
		if st != StatusFound || !l.IsMethod() {
			return ObjectType{}, StatusUnknown
		}
		return ObjectType{Type: l.Type}, StatusFound

	default:
		return ObjectType{}, StatusUnknown
	}
}

func (r *Resolver) resolveIndexType(ctx context.Context, x *ast.IndexExpr, env *Env) (ObjectType, Status) {
	obj, st := r.ResolveObjectType(ctx, x.Object, env)
	if st != StatusFound || obj.Type == nil {
		return ObjectType{}, st
	}
	t := obj.Type
	if t.Kind == ast.TypeArray {
		return ObjectType{Type: t.Elem}, StatusFound
	}
	switch t.Name {
	case "array", "set":
		if len(t.Args) > 0 {
			return ObjectType{Type: t.Args[0]}, StatusFound
		}
	case "map":
		if len(t.Args) > 1 {
			return ObjectType{Type: t.Args[1]}, StatusFound
		}
	}
	return ObjectType{}, StatusUnknown
}

func (r *Resolver) resolveBinaryType(ctx context.Context, x *ast.BinaryExpr, env *Env) (ObjectType, Status) {
	switch x.Op {
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.AndAnd, token.OrOr:
		return ObjectType{Type: ast.NewTypeRef("bool", x.Span)}, StatusFound
	}

	left, lst := r.ResolveObjectType(ctx, x.Left, env)
	right, rst := r.ResolveObjectType(ctx, x.Right, env)
	if lst != StatusFound {
		return ObjectType{}, lst
	}
	if x.Op == token.Plus && (typeNameIs(left.Type, "string") || (rst == StatusFound && typeNameIs(right.Type, "string"))) {
		return ObjectType{Type: ast.NewTypeRef("string", x.Span)}, StatusFound
	}
	if rst == StatusFound && typeNameIs(right.Type, "float") && typeNameIs(left.Type, "int") {
		return ObjectType{Type: ast.NewTypeRef("float", x.Span)}, StatusFound
	}
	return ObjectType{Type: left.Type}, StatusFound
}

func typeNameIs(t *ast.TypeNode, name string) bool {
	return t != nil && t.Kind == ast.TypeRef && t.Name == name
}

// selfType builds the type of `this` inside a class: the class name
// instantiated with its own generic parameters, so member types keep
// parameter names until a concrete use site binds them.
func selfType(class *ast.ClassDecl) *ast.TypeNode {
	t := ast.NewTypeRef(class.Name, class.NameSpan)
	for _, p := range class.GenericParams {
		t.Args = append(t.Args, ast.NewTypeRef(p, class.NameSpan))
	}
	return t
}

func selfTypeName(class *ast.ClassDecl) string {
	return selfType(class).String()
}

// LocalType finds the declared type of a local variable, foreach
// variable or parameter visible at the given offset inside fn. Later
// declarations do not leak backwards.
func LocalType(fn *ast.FuncDecl, name string, before uint32) *ast.TypeNode {
	if fn == nil {
		return nil
	}
	for _, p := range fn.Params {
		if p.Name == name {
			return p.Type
		}
	}
	if fn.Body == nil {
		return nil
	}
	var found *ast.TypeNode
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		switch d := n.(type) {
		case *ast.VarDecl:
			if d.Owner == nil && d.Name == name && d.Span.Start < before {
				found = d.Type
			}
		}
		return true
	})
	return found
}
