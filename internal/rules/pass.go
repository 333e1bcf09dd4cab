package rules

import (
	"enscript/internal/ast"
	"enscript/internal/hier"
	"enscript/internal/source"
	"enscript/internal/trace"
)

// Pass carries everything the rules need while checking one file. The
// caller builds a fresh Resolver per Pass, so memoized lookups never
// outlive the index state they were computed from.
type Pass struct {
	File     *ast.File
	FileSet  *source.FileSet
	Resolver *hier.Resolver
	Tracer   trace.Tracer

	nodes   []ast.Node
	envs    map[ast.Node]*hier.Env
	handled map[ast.Node]map[string]bool
	callees map[ast.Node]bool
}

// NewPass walks the file once, recording every node in source order and
// the class/function scope it sits in.
func NewPass(file *ast.File, fs *source.FileSet, r *hier.Resolver, tracer trace.Tracer) *Pass {
	if tracer == nil {
		tracer = trace.Nop
	}
	p := &Pass{
		File:     file,
		FileSet:  fs,
		Resolver: r,
		Tracer:   tracer,
		envs:     make(map[ast.Node]*hier.Env),
		handled:  make(map[ast.Node]map[string]bool),
		callees:  make(map[ast.Node]bool),
	}
	ast.Inspect(file, func(n ast.Node) bool {
		if call, ok := n.(*ast.CallExpr); ok {
			p.callees[call.Callee] = true
		}
		return true
	})
	p.nodes = append(p.nodes, file)
	for _, d := range file.Decls {
		switch decl := d.(type) {
		case *ast.ClassDecl:
			classEnv := &hier.Env{Class: decl}
			p.record(decl, classEnv)
			for _, m := range decl.Members {
				if fn, ok := m.(*ast.FuncDecl); ok {
					p.recordTree(fn, &hier.Env{Class: decl, Func: fn})
					continue
				}
				p.recordTree(m, classEnv)
			}
		case *ast.FuncDecl:
			p.recordTree(decl, &hier.Env{Func: decl})
		default:
			p.recordTree(d, nil)
		}
	}
	return p
}

func (p *Pass) record(n ast.Node, env *hier.Env) {
	p.nodes = append(p.nodes, n)
	if env != nil {
		p.envs[n] = env
	}
}

func (p *Pass) recordTree(root ast.Node, env *hier.Env) {
	ast.Inspect(root, func(n ast.Node) bool {
		p.record(n, env)
		return true
	})
}

// Nodes returns every node of the file in depth-first source order.
func (p *Pass) Nodes() []ast.Node { return p.nodes }

// Env returns the scope for a node, or nil for file-level nodes
// outside any class or function.
func (p *Pass) Env(n ast.Node) *hier.Env { return p.envs[n] }

// InCallPosition reports whether the node is the callee of a call.
// Callee names resolve to functions and methods, never to values, so
// the variable rule leaves them to the call rules.
func (p *Pass) InCallPosition(n ast.Node) bool { return p.callees[n] }

// MarkHandled records that a rule has fully accounted for a node.
// Later rules use ShouldSkip to avoid reporting twice on it.
func (p *Pass) MarkHandled(n ast.Node, ruleID string) {
	m := p.handled[n]
	if m == nil {
		m = make(map[string]bool)
		p.handled[n] = m
	}
	m[ruleID] = true
}

// ShouldSkip reports whether any of the named rules handled the node.
func (p *Pass) ShouldSkip(n ast.Node, ruleIDs ...string) bool {
	m := p.handled[n]
	if m == nil {
		return false
	}
	for _, id := range ruleIDs {
		if m[id] {
			return true
		}
	}
	return false
}
