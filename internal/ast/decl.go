package ast

import (
	"enscript/internal/source"
)

// DeclKind tags the Decl union.
type DeclKind uint8

const (
	DeclClass DeclKind = iota
	DeclMethod
	DeclFunction
	DeclVariable
	DeclParameter
	DeclEnum
	DeclEnumMember
	DeclTypedef
)

func (k DeclKind) String() string {
	switch k {
	case DeclClass:
		return "class"
	case DeclMethod:
		return "method"
	case DeclFunction:
		return "function"
	case DeclVariable:
		return "variable"
	case DeclParameter:
		return "parameter"
	case DeclEnum:
		return "enum"
	case DeclEnumMember:
		return "enum member"
	case DeclTypedef:
		return "typedef"
	}
	return "declaration"
}

// Decl is implemented by every declaration node.
type Decl interface {
	Node
	DeclName() string
	// NamePos is the span of just the declared name, used for diagnostics.
	NamePos() source.Span
	Kind() DeclKind
	Mods() Modifiers
}

// ClassDecl is one class fragment. Several fragments may share a name: the
// original declaration plus any number of `modded` reopenings. Fragments
// are never merged; hierarchy lookups always collect all of them.
type ClassDecl struct {
	Name          string
	BaseName      string    // empty when the class has no `extends`
	BaseType      *TypeNode // nil when BaseName is empty
	GenericParams []string  // declared `<Class T1, Class T2>` names in order
	Members       []Decl
	Modifiers     Modifiers
	Span          source.Span
	NameSpan      source.Span
}

func (d *ClassDecl) Pos() source.Span     { return d.Span }
func (d *ClassDecl) NamePos() source.Span { return d.NameSpan }
func (d *ClassDecl) DeclName() string     { return d.Name }
func (d *ClassDecl) Kind() DeclKind       { return DeclClass }
func (d *ClassDecl) Mods() Modifiers      { return d.Modifiers }

// IsModded reports whether this fragment reopens an existing class.
func (d *ClassDecl) IsModded() bool { return d.Modifiers.Has(ModModded) }

// FuncDecl is a method (Owner set) or a global function (Owner nil).
type FuncDecl struct {
	Name       string
	ReturnType *TypeNode
	Params     []*ParamDecl
	Body       *BlockStmt // nil for native/proto declarations
	Modifiers  Modifiers
	Owner      *ClassDecl // weak back-reference, lookup only
	Span       source.Span
	NameSpan   source.Span
}

func (d *FuncDecl) Pos() source.Span     { return d.Span }
func (d *FuncDecl) NamePos() source.Span { return d.NameSpan }
func (d *FuncDecl) DeclName() string     { return d.Name }
func (d *FuncDecl) Mods() Modifiers      { return d.Modifiers }

func (d *FuncDecl) Kind() DeclKind {
	if d.Owner != nil {
		return DeclMethod
	}
	return DeclFunction
}

// IsMethod reports whether the function belongs to a class.
func (d *FuncDecl) IsMethod() bool { return d.Owner != nil }

// HasBody reports whether a statement body was parsed.
func (d *FuncDecl) HasBody() bool {
	return d.Body != nil && len(d.Body.Stmts) > 0
}

// VarDecl is a class field (Owner set), a global variable, or a local.
type VarDecl struct {
	Name      string
	Type      *TypeNode
	Init      Expr // nil when uninitialized
	Modifiers Modifiers
	Owner     *ClassDecl // weak back-reference, lookup only
	Span      source.Span
	NameSpan  source.Span
}

func (d *VarDecl) Pos() source.Span     { return d.Span }
func (d *VarDecl) NamePos() source.Span { return d.NameSpan }
func (d *VarDecl) DeclName() string     { return d.Name }
func (d *VarDecl) Kind() DeclKind       { return DeclVariable }
func (d *VarDecl) Mods() Modifiers      { return d.Modifiers }

// ParamDecl is one function or method parameter.
type ParamDecl struct {
	Name      string
	Type      *TypeNode
	Default   Expr // nil when the parameter has no default value
	Modifiers Modifiers
	Span      source.Span
	NameSpan  source.Span
}

func (d *ParamDecl) Pos() source.Span     { return d.Span }
func (d *ParamDecl) NamePos() source.Span { return d.NameSpan }
func (d *ParamDecl) DeclName() string     { return d.Name }
func (d *ParamDecl) Kind() DeclKind       { return DeclParameter }
func (d *ParamDecl) Mods() Modifiers      { return d.Modifiers }

// EnumDecl declares an enumeration. Enum values are int-compatible in both
// directions.
type EnumDecl struct {
	Name      string
	BaseName  string // optional `enum E : Base`
	Members   []*EnumMemberDecl
	Modifiers Modifiers
	Span      source.Span
	NameSpan  source.Span
}

func (d *EnumDecl) Pos() source.Span     { return d.Span }
func (d *EnumDecl) NamePos() source.Span { return d.NameSpan }
func (d *EnumDecl) DeclName() string     { return d.Name }
func (d *EnumDecl) Kind() DeclKind       { return DeclEnum }
func (d *EnumDecl) Mods() Modifiers      { return d.Modifiers }

// EnumMemberDecl is one enumerator.
type EnumMemberDecl struct {
	Name     string
	Value    Expr // nil when implicit
	Owner    *EnumDecl
	Span     source.Span
	NameSpan source.Span
}

func (d *EnumMemberDecl) Pos() source.Span     { return d.Span }
func (d *EnumMemberDecl) NamePos() source.Span { return d.NameSpan }
func (d *EnumMemberDecl) DeclName() string     { return d.Name }
func (d *EnumMemberDecl) Kind() DeclKind       { return DeclEnumMember }
func (d *EnumMemberDecl) Mods() Modifiers      { return 0 }

// TypedefDecl aliases a (possibly generic) type.
type TypedefDecl struct {
	Name     string
	Target   *TypeNode
	Span     source.Span
	NameSpan source.Span
}

func (d *TypedefDecl) Pos() source.Span     { return d.Span }
func (d *TypedefDecl) NamePos() source.Span { return d.NameSpan }
func (d *TypedefDecl) DeclName() string     { return d.Name }
func (d *TypedefDecl) Kind() DeclKind       { return DeclTypedef }
func (d *TypedefDecl) Mods() Modifiers      { return 0 }

// FindMember returns the first member of this fragment with the given name.
func (d *ClassDecl) FindMember(name string) Decl {
	for _, m := range d.Members {
		if m.DeclName() == name {
			return m
		}
	}
	return nil
}

// MethodCount counts method members of this fragment.
func (d *ClassDecl) MethodCount() int {
	n := 0
	for _, m := range d.Members {
		if f, ok := m.(*FuncDecl); ok && f != nil {
			n++
		}
	}
	return n
}
