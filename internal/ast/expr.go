package ast

import (
	"enscript/internal/source"
	"enscript/internal/token"
)

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// IdentExpr is a bare identifier.
type IdentExpr struct {
	Name string
	Span source.Span
}

// ThisExpr is the `this` receiver.
type ThisExpr struct {
	Span source.Span
}

// SuperExpr is the `super` receiver.
type SuperExpr struct {
	Span source.Span
}

// NullLit is the `null` / `NULL` literal.
type NullLit struct {
	Span source.Span
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Value bool
	Span  source.Span
}

// IntLit is an integer literal.
type IntLit struct {
	Text  string
	Value int64
	Span  source.Span
}

// FloatLit is a floating point literal.
type FloatLit struct {
	Text  string
	Value float64
	Span  source.Span
}

// StringLit is a double-quoted string literal. Vector constants are written
// as "x y z" strings, so the parser keeps the raw value around.
type StringLit struct {
	Value string
	Span  source.Span
}

// MemberExpr is `Object.Name`.
type MemberExpr struct {
	Object   Expr
	Name     string
	NameSpan source.Span
	Span     source.Span
}

// CallExpr is `Callee(Args...)`.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Span   source.Span
}

// IndexExpr is `Object[Index]`.
type IndexExpr struct {
	Object Expr
	Index  Expr
	Span   source.Span
}

// NewExpr is `new Type(Args...)`.
type NewExpr struct {
	Type *TypeNode
	Args []Expr
	Span source.Span
}

// UnaryExpr is a prefix or postfix unary operation.
type UnaryExpr struct {
	Op      token.Kind
	Operand Expr
	Postfix bool
	Span    source.Span
}

// BinaryExpr is `Left Op Right`.
type BinaryExpr struct {
	Op    token.Kind
	Left  Expr
	Right Expr
	Span  source.Span
}

// AssignExpr is `Target Op Value` where Op is = or a compound assignment.
type AssignExpr struct {
	Op     token.Kind
	Target Expr
	Value  Expr
	Span   source.Span
}

func (e *IdentExpr) Pos() source.Span  { return e.Span }
func (e *ThisExpr) Pos() source.Span   { return e.Span }
func (e *SuperExpr) Pos() source.Span  { return e.Span }
func (e *NullLit) Pos() source.Span    { return e.Span }
func (e *BoolLit) Pos() source.Span    { return e.Span }
func (e *IntLit) Pos() source.Span     { return e.Span }
func (e *FloatLit) Pos() source.Span   { return e.Span }
func (e *StringLit) Pos() source.Span  { return e.Span }
func (e *MemberExpr) Pos() source.Span { return e.Span }
func (e *CallExpr) Pos() source.Span   { return e.Span }
func (e *IndexExpr) Pos() source.Span  { return e.Span }
func (e *NewExpr) Pos() source.Span    { return e.Span }
func (e *UnaryExpr) Pos() source.Span  { return e.Span }
func (e *BinaryExpr) Pos() source.Span { return e.Span }
func (e *AssignExpr) Pos() source.Span { return e.Span }

func (*IdentExpr) exprNode()  {}
func (*ThisExpr) exprNode()   {}
func (*SuperExpr) exprNode()  {}
func (*NullLit) exprNode()    {}
func (*BoolLit) exprNode()    {}
func (*IntLit) exprNode()     {}
func (*FloatLit) exprNode()   {}
func (*StringLit) exprNode()  {}
func (*MemberExpr) exprNode() {}
func (*CallExpr) exprNode()   {}
func (*IndexExpr) exprNode()  {}
func (*NewExpr) exprNode()    {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*AssignExpr) exprNode() {}
