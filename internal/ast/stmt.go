package ast

import (
	"enscript/internal/source"
)

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// BlockStmt is a `{ ... }` statement list introducing a scope.
type BlockStmt struct {
	Stmts []Stmt
	Span  source.Span
}

// VarDeclStmt declares one or more locals, e.g. `int a, b = 2;`.
type VarDeclStmt struct {
	Decls []*VarDecl
	Span  source.Span
}

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	X    Expr
	Span source.Span
}

// ReturnStmt is `return [expr];`.
type ReturnStmt struct {
	Value Expr // nil for bare return
	Span  source.Span
}

// IfStmt is `if (Cond) Then [else Else]`.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil, a BlockStmt, or a nested IfStmt
	Span source.Span
}

// WhileStmt is `while (Cond) Body`.
type WhileStmt struct {
	Cond Expr
	Body Stmt
	Span source.Span
}

// ForStmt is the classic three-clause loop.
type ForStmt struct {
	Init Stmt // nil or VarDeclStmt/ExprStmt
	Cond Expr
	Post Expr
	Body Stmt
	Span source.Span
}

// ForeachStmt is `foreach (T v [, T2 v2] : iterable) Body`.
type ForeachStmt struct {
	Vars     []*VarDecl
	Iterable Expr
	Body     Stmt
	Span     source.Span
}

// CaseClause is one `case expr:` or `default:` arm.
type CaseClause struct {
	Values []Expr // empty for default
	Body   []Stmt
	Span   source.Span
}

// SwitchStmt is `switch (Tag) { cases }`.
type SwitchStmt struct {
	Tag   Expr
	Cases []*CaseClause
	Span  source.Span
}

// BreakStmt is `break;`.
type BreakStmt struct {
	Span source.Span
}

// ContinueStmt is `continue;`.
type ContinueStmt struct {
	Span source.Span
}

// DeleteStmt is `delete expr;`.
type DeleteStmt struct {
	X    Expr
	Span source.Span
}

func (s *BlockStmt) Pos() source.Span    { return s.Span }
func (s *VarDeclStmt) Pos() source.Span  { return s.Span }
func (s *ExprStmt) Pos() source.Span     { return s.Span }
func (s *ReturnStmt) Pos() source.Span   { return s.Span }
func (s *IfStmt) Pos() source.Span       { return s.Span }
func (s *WhileStmt) Pos() source.Span    { return s.Span }
func (s *ForStmt) Pos() source.Span      { return s.Span }
func (s *ForeachStmt) Pos() source.Span  { return s.Span }
func (s *SwitchStmt) Pos() source.Span   { return s.Span }
func (s *BreakStmt) Pos() source.Span    { return s.Span }
func (s *ContinueStmt) Pos() source.Span { return s.Span }
func (s *DeleteStmt) Pos() source.Span   { return s.Span }

func (*BlockStmt) stmtNode()    {}
func (*VarDeclStmt) stmtNode()  {}
func (*ExprStmt) stmtNode()     {}
func (*ReturnStmt) stmtNode()   {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*ForStmt) stmtNode()      {}
func (*ForeachStmt) stmtNode()  {}
func (*SwitchStmt) stmtNode()   {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*DeleteStmt) stmtNode()   {}
