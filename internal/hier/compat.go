package hier

import (
	"context"
	"strconv"
	"strings"

	"enscript/internal/ast"
	"enscript/internal/typestr"
)

// Verdict is the outcome of a type compatibility query.
type Verdict uint8

const (
	// Compatible means the assignment is fine.
	Compatible Verdict = iota
	// CompatibleNarrowing means the assignment loses precision
	// (float into int). Allowed, but worth a warning.
	CompatibleNarrowing
	// Incompatible means a genuine type mismatch.
	Incompatible
	// Indeterminate means unresolved types are involved; callers
	// fail open and do not diagnose.
	Indeterminate
)

func (v Verdict) String() string {
	switch v {
	case Compatible:
		return "compatible"
	case CompatibleNarrowing:
		return "narrowing"
	case Incompatible:
		return "incompatible"
	default:
		return "indeterminate"
	}
}

// Compatible reports whether a value of type from may flow into a slot
// of type to. fromExpr, when available, is the value expression; it
// enables literal-shaped conversions like vector <- "x y z". env
// supplies the enclosing class so unbound generic parameters stay
// lenient.
func (r *Resolver) Compatible(ctx context.Context, from, to *ast.TypeNode, fromExpr ast.Expr, env *Env) Verdict {
	if from == nil || to == nil {
		return Indeterminate
	}
	if from.Kind == ast.TypeAuto || to.Kind == ast.TypeAuto {
		return Compatible
	}
	if isGenericParam(from, env) || isGenericParam(to, env) {
		return Compatible
	}

	from = r.expandTypedef(from)
	to = r.expandTypedef(to)

	// null flows into anything that is not a bare primitive.
	if typeNameIs(from, NullTypeName) {
		if typestr.IsPrimitive(to.Name) && to.Kind != ast.TypeArray && !to.Modifiers.Has(ast.ModRef) {
			return Incompatible
		}
		return Compatible
	}

	// Static and dynamic arrays are distinct shapes; element types
	// must agree between like shapes.
	if from.Kind == ast.TypeArray || to.Kind == ast.TypeArray {
		if from.Kind != to.Kind {
			return Incompatible
		}
		return r.elementVerdict(ctx, from.Elem, to.Elem, env)
	}

	fromName := typestr.NormalizeTypeName(from.String())
	toName := typestr.NormalizeTypeName(to.String())
	if fromName == toName {
		return Compatible
	}

	fromEnum := r.isEnum(from.Name)
	toEnum := r.isEnum(to.Name)

	// Enum values are ints in both directions; enum-to-enum also
	// degrades to int semantics.
	fromNum := from.Name
	toNum := to.Name
	if fromEnum {
		fromNum = "int"
	}
	if toEnum {
		toNum = "int"
	}
	if len(from.Args) == 0 && len(to.Args) == 0 {
		switch typestr.CheckNumeric(fromNum, toNum) {
		case typestr.NumericWidening:
			return Compatible
		case typestr.NumericNarrowing:
			return CompatibleNarrowing
		}
		if fromNum == toNum {
			return Compatible
		}
	}

	// vector accepts a "x y z" string literal.
	if to.Name == "vector" && from.Name == "string" {
		if lit, ok := fromExpr.(*ast.StringLit); ok && isVectorLiteral(lit.Value) {
			return Compatible
		}
	}

	if typestr.IsPrimitive(from.Name) != typestr.IsPrimitive(to.Name) {
		return Incompatible
	}
	if typestr.IsPrimitive(from.Name) {
		return Incompatible // both primitive, names differ, no conversion
	}

	// Same generic base: arguments must agree pairwise.
	if from.Name == to.Name {
		if len(from.Args) != len(to.Args) {
			return Indeterminate
		}
		for i := range from.Args {
			switch r.elementVerdict(ctx, from.Args[i], to.Args[i], env) {
			case Incompatible, CompatibleNarrowing:
				return Incompatible
			case Indeterminate:
				return Indeterminate
			}
		}
		return Compatible
	}
	if typestr.IsBuiltinContainer(from.Name) || typestr.IsBuiltinContainer(to.Name) {
		return Incompatible
	}
	if fromEnum || toEnum {
		// Numeric enum conversions were handled above; an enum
		// against a class type cannot match.
		return Incompatible
	}

	// User class types: covariance along the inheritance chain.
	sub, complete := r.IsSubclassOf(ctx, from.Name, to.Name)
	if sub {
		return Compatible
	}
	if !complete {
		return Indeterminate
	}
	return Incompatible
}

func (r *Resolver) elementVerdict(ctx context.Context, from, to *ast.TypeNode, env *Env) Verdict {
	if from == nil || to == nil {
		return Indeterminate
	}
	return r.Compatible(ctx, from, to, nil, env)
}

// expandTypedef follows one typedef hop for plain named types.
func (r *Resolver) expandTypedef(t *ast.TypeNode) *ast.TypeNode {
	if t.Kind != ast.TypeRef || len(t.Args) > 0 || typestr.IsBuiltin(t.Name) {
		return t
	}
	if len(r.index.FindAllClassDefinitions(t.Name)) > 0 || r.isEnum(t.Name) {
		return t
	}
	full, ok := r.index.ResolveTypedefFullType(t.Name)
	if !ok {
		return t
	}
	expanded := typestr.ParseType(full)
	if expanded == nil {
		return t
	}
	expanded.Modifiers |= t.Modifiers
	return expanded
}

func (r *Resolver) isEnum(name string) bool {
	return len(r.index.FindAllEnumDefinitions(name)) > 0
}

func isGenericParam(t *ast.TypeNode, env *Env) bool {
	if t == nil || t.Kind != ast.TypeRef || len(t.Args) > 0 {
		return false
	}
	if env == nil || env.Class == nil {
		return false
	}
	for _, p := range env.Class.GenericParams {
		if t.Name == p {
			return true
		}
	}
	return false
}

// isVectorLiteral accepts exactly three whitespace-separated numbers.
func isVectorLiteral(s string) bool {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return false
	}
	for _, f := range fields {
		if _, err := strconv.ParseFloat(f, 64); err != nil {
			return false
		}
	}
	return true
}
