// Package rules implements the semantic diagnostic rules and the
// registry that orders and executes them over one document's AST.
package rules

import (
	"context"

	"enscript/internal/ast"
	"enscript/internal/diag"
)

// SourceTag marks every diagnostic produced by this engine.
const SourceTag = "enscript"

// Rule is one semantic check. Rules are stateless: all per-pass data
// flows through the Pass, and the only cross-rule channel is the
// pass's handled-node map.
type Rule interface {
	// ID is the stable rule identifier, e.g. "undeclared-method".
	ID() string
	// After lists rule IDs that must execute before this one. The
	// registry turns these edges into a topological order, so
	// dependencies are explicit instead of encoded in priorities.
	After() []string
	// Priority breaks topological ties: higher runs first.
	Priority() int
	// AppliesTo filters AST nodes before Check is called.
	AppliesTo(n ast.Node) bool
	// Check inspects one node. Returned diagnostics carry the
	// default severity; the registry applies config overrides.
	Check(ctx context.Context, n ast.Node, p *Pass, cfg Config) []diag.Diagnostic
}

// Config is the per-rule configuration surface.
type Config struct {
	Enabled bool
	// Severity, when non-nil, overrides the rule's default severity
	// on every diagnostic it emits.
	Severity *diag.Severity
	// Params carries rule-specific keys.
	Params map[string]string
}

// DefaultConfig is an enabled rule with no overrides.
func DefaultConfig() Config {
	return Config{Enabled: true}
}

// baseRule carries the static identity shared by all rule
// implementations.
type baseRule struct {
	id    string
	after []string
	prio  int
}

func (b baseRule) ID() string      { return b.id }
func (b baseRule) After() []string { return b.after }
func (b baseRule) Priority() int   { return b.prio }
