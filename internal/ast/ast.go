// Package ast defines the syntax tree for Enforce-style scripts.
//
// Nodes are plain pointer structs: the analyzer keys its per-pass caches by
// node identity and declarations carry weak owner back-references, both of
// which map directly onto pointers. The tree is immutable for the lifetime
// of one analysis pass.
package ast

import (
	"enscript/internal/source"
)

// Node is implemented by every syntax tree node.
type Node interface {
	Pos() source.Span
}

// File is one parsed script file.
type File struct {
	FileID source.FileID
	Path   string
	Decls  []Decl
	Span   source.Span
}

func (f *File) Pos() source.Span { return f.Span }

// Visitor is called by Inspect for every node. Returning false prunes the
// subtree.
type Visitor func(Node) bool

// Inspect walks the tree rooted at n in depth-first order.
func Inspect(n Node, v Visitor) {
	if n == nil || isNilNode(n) {
		return
	}
	if !v(n) {
		return
	}
	walkChildren(n, v)
}

func walkChildren(n Node, v Visitor) {
	switch x := n.(type) {
	case *File:
		for _, d := range x.Decls {
			Inspect(d, v)
		}
	case *ClassDecl:
		for _, m := range x.Members {
			Inspect(m, v)
		}
	case *FuncDecl:
		for _, p := range x.Params {
			Inspect(p, v)
		}
		if x.Body != nil {
			Inspect(x.Body, v)
		}
	case *VarDecl:
		if x.Init != nil {
			Inspect(x.Init, v)
		}
	case *ParamDecl:
		if x.Default != nil {
			Inspect(x.Default, v)
		}
	case *EnumDecl:
		for _, m := range x.Members {
			Inspect(m, v)
		}
	case *EnumMemberDecl:
		if x.Value != nil {
			Inspect(x.Value, v)
		}
	case *TypedefDecl:
		// leaf

	case *BlockStmt:
		for _, s := range x.Stmts {
			Inspect(s, v)
		}
	case *VarDeclStmt:
		for _, d := range x.Decls {
			Inspect(d, v)
		}
	case *ExprStmt:
		Inspect(x.X, v)
	case *ReturnStmt:
		if x.Value != nil {
			Inspect(x.Value, v)
		}
	case *IfStmt:
		Inspect(x.Cond, v)
		Inspect(x.Then, v)
		if x.Else != nil {
			Inspect(x.Else, v)
		}
	case *WhileStmt:
		Inspect(x.Cond, v)
		Inspect(x.Body, v)
	case *ForStmt:
		if x.Init != nil {
			Inspect(x.Init, v)
		}
		if x.Cond != nil {
			Inspect(x.Cond, v)
		}
		if x.Post != nil {
			Inspect(x.Post, v)
		}
		Inspect(x.Body, v)
	case *ForeachStmt:
		for _, d := range x.Vars {
			Inspect(d, v)
		}
		Inspect(x.Iterable, v)
		Inspect(x.Body, v)
	case *SwitchStmt:
		Inspect(x.Tag, v)
		for _, c := range x.Cases {
			for _, val := range c.Values {
				Inspect(val, v)
			}
			for _, s := range c.Body {
				Inspect(s, v)
			}
		}
	case *DeleteStmt:
		Inspect(x.X, v)

	case *MemberExpr:
		Inspect(x.Object, v)
	case *CallExpr:
		Inspect(x.Callee, v)
		for _, a := range x.Args {
			Inspect(a, v)
		}
	case *IndexExpr:
		Inspect(x.Object, v)
		Inspect(x.Index, v)
	case *NewExpr:
		for _, a := range x.Args {
			Inspect(a, v)
		}
	case *UnaryExpr:
		Inspect(x.Operand, v)
	case *BinaryExpr:
		Inspect(x.Left, v)
		Inspect(x.Right, v)
	case *AssignExpr:
		Inspect(x.Target, v)
		Inspect(x.Value, v)
	}
}

// isNilNode guards against typed-nil interface values produced by optional
// child fields.
func isNilNode(n Node) bool {
	switch x := n.(type) {
	case *File:
		return x == nil
	case *ClassDecl:
		return x == nil
	case *FuncDecl:
		return x == nil
	case *VarDecl:
		return x == nil
	case *ParamDecl:
		return x == nil
	case *EnumDecl:
		return x == nil
	case *EnumMemberDecl:
		return x == nil
	case *TypedefDecl:
		return x == nil
	case *BlockStmt:
		return x == nil
	}
	return false
}
