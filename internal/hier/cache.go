package hier

import "enscript/internal/ast"

// passCache memoizes resolver answers for one analysis pass. It is
// keyed by lookup arguments and by AST node identity, owned by exactly
// one pass, and discarded with it, which keeps repeated passes over an
// unchanged AST idempotent.
type passCache struct {
	members map[memberKey]memberEntry
	objects map[ast.Expr]objectEntry
}

type memberKey struct {
	typeName string
	member   string
	opts     LookupOptions
}

type memberEntry struct {
	lookup *Lookup
	status Status
}

type objectEntry struct {
	obj    ObjectType
	status Status
}

func newPassCache() *passCache {
	return &passCache{
		members: make(map[memberKey]memberEntry),
		objects: make(map[ast.Expr]objectEntry),
	}
}
