// Package hier resolves members across class hierarchies: inheritance
// chains, modded fragments, generic substitution and static/instance
// disambiguation. Resolution is fail-open: when the workspace index
// cannot answer, lookups report Unknown and callers assume the code is
// correct.
package hier

import (
	"context"

	"enscript/internal/ast"
)

// SymbolIndex is the capability the resolver needs from the workspace.
// index.Workspace is the shipped implementation; tests substitute
// small fakes.
type SymbolIndex interface {
	// FindAllClassDefinitions returns every fragment sharing the
	// name, base definition first, modded fragments after.
	FindAllClassDefinitions(name string) []*ast.ClassDecl
	FindAllEnumDefinitions(name string) []*ast.EnumDecl
	FindAllTypedefDefinitions(name string) []*ast.TypedefDecl
	FindAllGlobalFunctionDefinitions(name string) []*ast.FuncDecl
	FindAllGlobalVariableDefinitions(name string) []*ast.VarDecl

	GlobalFunctionReturnType(name string) (string, bool)
	ResolveTypedefClassName(name string) (string, bool)
	ResolveTypedefFullType(name string) (string, bool)

	AllAvailableClassNames() []string
	AllAvailableEnumNames() []string
	AllAvailableTypedefNames() []string

	// LoadClassFromIncludePaths lazily parses include sources that
	// may declare name. Idempotent; repeated calls are cheap.
	LoadClassFromIncludePaths(ctx context.Context, name string) bool
	HasIncludePaths() bool
	IsOpenDocument(path string) bool
}

// Status tells a rule what a lookup established.
type Status uint8

const (
	// StatusFound means the member resolved.
	StatusFound Status = iota
	// StatusMissing means the hierarchy is fully known and the
	// member is genuinely absent. Only this status may be diagnosed.
	StatusMissing
	// StatusUnknown means resolution hit missing index data. Callers
	// fail open and assume the member exists.
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Lookup is a successful (or mismatched) member resolution.
type Lookup struct {
	// Member is the resolved declaration: *ast.VarDecl for fields,
	// *ast.FuncDecl for methods. Synthetic for builtin containers.
	Member ast.Decl
	// Type is the member's declared type after generic substitution:
	// the field type for fields, the return type for methods.
	Type *ast.TypeNode
	// ParamTypes are the substituted parameter types of a method;
	// nil for fields.
	ParamTypes []*ast.TypeNode
	// Owner is the class fragment that declared the member; nil for
	// builtin container methods.
	Owner *ast.ClassDecl
	// StaticMismatch is set when the member exists only in the
	// opposite access mode. The static-mismatch rule consumes this;
	// undeclared-member rules must stand down.
	StaticMismatch bool
}

// IsMethod reports whether the lookup resolved to a callable member.
func (l *Lookup) IsMethod() bool {
	_, ok := l.Member.(*ast.FuncDecl)
	return ok
}

// LookupOptions mirror the resolver contract's flags.
type LookupOptions struct {
	// WantStatic selects the access form: true for ClassName.member,
	// false for instance.member.
	WantStatic bool
	// AllowPrivate includes private members, for lookups made from
	// code lexically inside the declaring class.
	AllowPrivate bool
	// ExcludeModded restricts resolution to non-modded fragments,
	// which is how `super` access behaves.
	ExcludeModded bool
}
