package hier

import (
	"context"

	"enscript/internal/ast"
	"enscript/internal/source"
	"enscript/internal/trace"
	"enscript/internal/typestr"
)

// Resolver answers member lookups against the workspace index. One
// Resolver serves one analysis pass: its memoization cache is owned by
// the pass and never shared, so repeated passes cannot accumulate
// state.
type Resolver struct {
	index  SymbolIndex
	fs     *source.FileSet // optional, enables open-document stub checks
	tracer trace.Tracer
	cache  *passCache
}

func NewResolver(index SymbolIndex, fs *source.FileSet, tracer trace.Tracer) *Resolver {
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Resolver{
		index:  index,
		fs:     fs,
		tracer: tracer,
		cache:  newPassCache(),
	}
}

// Index exposes the underlying symbol index to rules that need direct
// queries (enum members, global names).
func (r *Resolver) Index() SymbolIndex { return r.index }

// FindMember resolves memberName on typeName, which may carry generic
// arguments and leading modifiers ("ref map<string,int>"). Results are
// memoized for the pass.
func (r *Resolver) FindMember(ctx context.Context, typeName, memberName string, opts LookupOptions) (*Lookup, Status) {
	if typeName == "" || memberName == "" {
		return nil, StatusUnknown
	}
	key := memberKey{typeName: typeName, member: memberName, opts: opts}
	if e, ok := r.cache.members[key]; ok {
		return e.lookup, e.status
	}
	l, st := r.findMember(ctx, typeName, memberName, opts)
	r.cache.members[key] = memberEntry{lookup: l, status: st}
	return l, st
}

func (r *Resolver) findMember(ctx context.Context, typeName, memberName string, opts LookupOptions) (*Lookup, Status) {
	base, argStrs := typestr.ParseGenericType(typeName)
	base, args := r.resolveClassRef(base, parseTypeArgs(argStrs))

	if typestr.IsBuiltinContainer(base) {
		return lookupBuiltinMember(base, args, memberName)
	}
	if typestr.IsPrimitive(base) {
		// Primitive methods (string.Length and friends) live in the
		// engine, outside any indexed source. Fail open.
		return nil, StatusUnknown
	}

	frags := r.fragmentsFor(ctx, base)
	if len(frags) == 0 {
		trace.Warnf(r.tracer, "hier.resolve", "no definition for %s, assuming declared", base)
		return nil, StatusUnknown
	}
	if opts.ExcludeModded {
		frags = nonModdedOnly(frags)
		if len(frags) == 0 {
			// super has nothing to land on; reload once, then give up
			// without diagnosing.
			r.index.LoadClassFromIncludePaths(ctx, base)
			frags = nonModdedOnly(r.index.FindAllClassDefinitions(base))
			if len(frags) == 0 {
				return nil, StatusUnknown
			}
		}
	}

	var cands []candidate
	visited := map[string]bool{base: true}
	complete := r.collectLevel(ctx, frags, args, memberName, visited, &cands)

	return r.pickCandidate(cands, opts, complete)
}

// candidate is one same-named member found somewhere in the hierarchy,
// ordered closest level first.
type candidate struct {
	decl  ast.Decl
	owner *ast.ClassDecl
	binds Bindings
}

// collectLevel gathers matching members from one hierarchy level's
// merged fragments and recurses into the base class. Returns false
// when any level of the chain could not be resolved.
func (r *Resolver) collectLevel(ctx context.Context, frags []*ast.ClassDecl, args []*ast.TypeNode, memberName string, visited map[string]bool, out *[]candidate) bool {
	classDef := primaryFragment(frags)
	binds := BindGenericArgs(classDef, args)

	for _, frag := range frags {
		for _, m := range frag.Members {
			if m.DeclName() != memberName {
				continue
			}
			*out = append(*out, candidate{decl: m, owner: frag, binds: binds})
		}
	}

	baseName, baseArgs := baseClassRef(frags)
	if baseName == "" {
		return true
	}
	for i, a := range baseArgs {
		baseArgs[i] = Substitute(a, binds)
	}
	baseName, baseArgs = r.resolveClassRef(baseName, baseArgs)
	if visited[baseName] {
		return true // inheritance cycle, stop without failing the lookup
	}
	visited[baseName] = true

	if typestr.IsBuiltin(baseName) {
		return true
	}
	baseFrags := r.fragmentsFor(ctx, baseName)
	if len(baseFrags) == 0 {
		trace.Warnf(r.tracer, "hier.resolve", "base class %s unresolved, lookup stays open", baseName)
		return false
	}
	return r.collectLevel(ctx, baseFrags, baseArgs, memberName, visited, out)
}

// pickCandidate partitions by access mode. The closest exact-mode
// match wins; an opposite-mode member comes back flagged so the
// static-mismatch rule can take over.
func (r *Resolver) pickCandidate(cands []candidate, opts LookupOptions, complete bool) (*Lookup, Status) {
	var opposite *candidate
	for i := range cands {
		c := &cands[i]
		if c.decl.Mods().IsPrivate() && !opts.AllowPrivate {
			continue
		}
		if c.decl.Mods().IsStaticLike() == opts.WantStatic {
			return buildLookup(c, false), StatusFound
		}
		if opposite == nil {
			opposite = c
		}
	}
	if opposite != nil {
		return buildLookup(opposite, true), StatusFound
	}
	if complete {
		return nil, StatusMissing
	}
	return nil, StatusUnknown
}

func buildLookup(c *candidate, mismatch bool) *Lookup {
	l := &Lookup{Member: c.decl, Owner: c.owner, StaticMismatch: mismatch}
	switch d := c.decl.(type) {
	case *ast.VarDecl:
		l.Type = Substitute(d.Type, c.binds)
	case *ast.FuncDecl:
		l.Type = Substitute(d.ReturnType, c.binds)
		for _, p := range d.Params {
			l.ParamTypes = append(l.ParamTypes, Substitute(p.Type, c.binds))
		}
	}
	return l
}

// fragmentsFor loads class fragments, lazily pulling include sources
// and retrying once when the indexed declaration looks like a stub.
func (r *Resolver) fragmentsFor(ctx context.Context, name string) []*ast.ClassDecl {
	frags := r.index.FindAllClassDefinitions(name)
	if len(frags) == 0 && r.index.HasIncludePaths() {
		if r.index.LoadClassFromIncludePaths(ctx, name) {
			frags = r.index.FindAllClassDefinitions(name)
		}
	}
	if len(frags) > 0 && r.looksLikeStub(frags) && r.index.HasIncludePaths() {
		if r.index.LoadClassFromIncludePaths(ctx, name) {
			if reloaded := r.index.FindAllClassDefinitions(name); len(reloaded) > 0 {
				frags = reloaded
			}
		}
	}
	return frags
}

// looksLikeStub flags forward-declaration placeholders: at most two
// methods, every body empty or absent, and no fragment backed by an
// open document.
func (r *Resolver) looksLikeStub(frags []*ast.ClassDecl) bool {
	methods := 0
	for _, frag := range frags {
		if r.fs != nil {
			if f := r.fs.Get(frag.Pos().File); f != nil && r.index.IsOpenDocument(f.Path) {
				return false
			}
		}
		for _, m := range frag.Members {
			fn, ok := m.(*ast.FuncDecl)
			if !ok {
				continue
			}
			methods++
			if fn.Body != nil && len(fn.Body.Stmts) > 0 {
				return false
			}
		}
	}
	return methods <= 2
}

// resolveClassRef follows one typedef hop: a name with no class
// fragments but a typedef definition resolves to the typedef's target
// class and its argument list (use-site arguments win when present).
func (r *Resolver) resolveClassRef(name string, args []*ast.TypeNode) (string, []*ast.TypeNode) {
	if name == "" || len(r.index.FindAllClassDefinitions(name)) > 0 {
		return name, args
	}
	full, ok := r.index.ResolveTypedefFullType(name)
	if !ok {
		return name, args
	}
	tdBase, tdArgStrs := typestr.ParseGenericType(full)
	if len(args) == 0 {
		args = parseTypeArgs(tdArgStrs)
	}
	return tdBase, args
}

// IsSubclassOf walks sub's base chain looking for super. The second
// return is false when the chain could not be fully resolved, which
// callers treat as fail-open.
func (r *Resolver) IsSubclassOf(ctx context.Context, sub, super string) (bool, bool) {
	sub, _ = r.resolveClassRef(typestr.BaseName(sub), nil)
	super, _ = r.resolveClassRef(typestr.BaseName(super), nil)
	if sub == "" || super == "" {
		return false, false
	}
	if sub == super {
		return true, true
	}
	visited := map[string]bool{}
	cur := sub
	for cur != "" && !visited[cur] {
		visited[cur] = true
		frags := r.fragmentsFor(ctx, cur)
		if len(frags) == 0 {
			return false, false
		}
		baseName, _ := baseClassRef(frags)
		baseName, _ = r.resolveClassRef(baseName, nil)
		if baseName == super {
			return true, true
		}
		cur = baseName
	}
	return false, true
}

// FindMethodInBases searches the base chain (not the class itself) for
// a non-private, non-static method with the given name. Used by the
// override checks. The bool result reports whether the chain resolved
// completely.
func (r *Resolver) FindMethodInBases(ctx context.Context, class *ast.ClassDecl, name string) (*ast.FuncDecl, *ast.ClassDecl, bool) {
	if class == nil {
		return nil, nil, false
	}
	visited := map[string]bool{class.Name: true}
	frags := r.fragmentsFor(ctx, class.Name)
	if len(frags) == 0 {
		frags = []*ast.ClassDecl{class}
	}
	baseName, _ := baseClassRef(frags)
	baseName, _ = r.resolveClassRef(baseName, nil)

	for baseName != "" && !visited[baseName] {
		visited[baseName] = true
		if typestr.IsBuiltin(baseName) {
			return nil, nil, true
		}
		baseFrags := r.fragmentsFor(ctx, baseName)
		if len(baseFrags) == 0 {
			return nil, nil, false
		}
		for _, frag := range baseFrags {
			for _, m := range frag.Members {
				fn, ok := m.(*ast.FuncDecl)
				if !ok || fn.Name != name {
					continue
				}
				if fn.Modifiers.IsPrivate() || fn.Modifiers.IsStaticLike() {
					continue
				}
				return fn, frag, true
			}
		}
		baseName, _ = baseClassRef(baseFrags)
		baseName, _ = r.resolveClassRef(baseName, nil)
	}
	return nil, nil, true
}

// SignatureMatches compares two methods by arity and parameter type
// names. Return types are not compared; the language keeps them tied.
func SignatureMatches(a, b *ast.FuncDecl) bool {
	if a == nil || b == nil || len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		at, bt := a.Params[i].Type, b.Params[i].Type
		if typestr.NormalizeTypeName(at.String()) != typestr.NormalizeTypeName(bt.String()) {
			return false
		}
	}
	return true
}

func primaryFragment(frags []*ast.ClassDecl) *ast.ClassDecl {
	for _, f := range frags {
		if !f.IsModded() {
			return f
		}
	}
	if len(frags) > 0 {
		return frags[0]
	}
	return nil
}

func nonModdedOnly(frags []*ast.ClassDecl) []*ast.ClassDecl {
	out := frags[:0:0]
	for _, f := range frags {
		if !f.IsModded() {
			out = append(out, f)
		}
	}
	return out
}

// baseClassRef finds the inheritance edge declared by any fragment.
func baseClassRef(frags []*ast.ClassDecl) (string, []*ast.TypeNode) {
	for _, f := range frags {
		if f.BaseName == "" {
			continue
		}
		if f.BaseType != nil && len(f.BaseType.Args) > 0 {
			args := make([]*ast.TypeNode, len(f.BaseType.Args))
			copy(args, f.BaseType.Args)
			return f.BaseName, args
		}
		return f.BaseName, nil
	}
	return "", nil
}

func parseTypeArgs(strs []string) []*ast.TypeNode {
	if len(strs) == 0 {
		return nil
	}
	out := make([]*ast.TypeNode, len(strs))
	for i, s := range strs {
		out[i] = typestr.ParseType(s)
	}
	return out
}
