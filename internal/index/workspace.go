// Package index maintains the workspace symbol tables the analyzer
// resolves against: class fragments, enums, typedefs, global functions
// and variables, collected from open documents and lazily loaded
// include files.
package index

import (
	"sort"
	"sync"

	"enscript/internal/ast"
	"enscript/internal/source"
	"enscript/internal/trace"
	"enscript/internal/typestr"
)

// Workspace is the shipped symbol index. Class definitions are kept as
// fragment lists: a base definition plus any number of modded fragments,
// never merged eagerly. All query methods are safe for concurrent use.
type Workspace struct {
	mu sync.RWMutex

	fs     *source.FileSet
	tracer trace.Tracer

	classes  map[string][]*ast.ClassDecl
	enums    map[string][]*ast.EnumDecl
	typedefs map[string][]*ast.TypedefDecl
	funcs    map[string][]*ast.FuncDecl
	globals  map[string][]*ast.VarDecl

	openDocs map[string]bool // normalized path -> open document

	includePaths []string
	cache        *IncludeCache
	attempted    map[string]bool // class name -> include scan already ran
}

// Options configures a Workspace.
type Options struct {
	IncludePaths []string
	Cache        *IncludeCache // nil disables the disk cache
	Tracer       trace.Tracer
}

func NewWorkspace(fs *source.FileSet, opts Options) *Workspace {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Workspace{
		fs:           fs,
		tracer:       tracer,
		classes:      make(map[string][]*ast.ClassDecl),
		enums:        make(map[string][]*ast.EnumDecl),
		typedefs:     make(map[string][]*ast.TypedefDecl),
		funcs:        make(map[string][]*ast.FuncDecl),
		globals:      make(map[string][]*ast.VarDecl),
		openDocs:     make(map[string]bool),
		includePaths: opts.IncludePaths,
		cache:        opts.Cache,
		attempted:    make(map[string]bool),
	}
}

// FileSet returns the file set the workspace resolves spans against.
func (w *Workspace) FileSet() *source.FileSet { return w.fs }

// AddDocument registers a parsed file as an open document and indexes
// its declarations. Re-adding the same path replaces the previous
// version's symbols.
func (w *Workspace) AddDocument(f *ast.File) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.removeFileLocked(f.Path)
	w.openDocs[f.Path] = true
	w.indexFileLocked(f)
}

// AddIncludeFile registers a parsed file as include-side source. Its
// symbols are queryable but the file is not an open document.
func (w *Workspace) AddIncludeFile(f *ast.File) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.removeFileLocked(f.Path)
	w.indexFileLocked(f)
}

// RemoveDocument drops all symbols declared by path.
func (w *Workspace) RemoveDocument(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.removeFileLocked(path)
	delete(w.openDocs, path)
}

func (w *Workspace) indexFileLocked(f *ast.File) {
	for _, d := range f.Decls {
		switch decl := d.(type) {
		case *ast.ClassDecl:
			w.classes[decl.Name] = append(w.classes[decl.Name], decl)
		case *ast.EnumDecl:
			w.enums[decl.Name] = append(w.enums[decl.Name], decl)
		case *ast.TypedefDecl:
			w.typedefs[decl.Name] = append(w.typedefs[decl.Name], decl)
		case *ast.FuncDecl:
			w.funcs[decl.Name] = append(w.funcs[decl.Name], decl)
		case *ast.VarDecl:
			w.globals[decl.Name] = append(w.globals[decl.Name], decl)
		}
	}
}

func (w *Workspace) removeFileLocked(path string) {
	pruneDecls(w.fs, w.classes, path)
	pruneDecls(w.fs, w.enums, path)
	pruneDecls(w.fs, w.typedefs, path)
	pruneDecls(w.fs, w.funcs, path)
	pruneDecls(w.fs, w.globals, path)
}

// pruneDecls drops every declaration whose owning file has the given
// path. Declarations carry FileIDs; the file set maps them back.
func pruneDecls[D ast.Decl](fs *source.FileSet, m map[string][]D, path string) {
	for name, decls := range m {
		kept := decls[:0]
		for _, d := range decls {
			f := fs.Get(d.Pos().File)
			if f == nil || f.Path != path {
				kept = append(kept, d)
			}
		}
		if len(kept) == 0 {
			delete(m, name)
		} else {
			m[name] = kept
		}
	}
}

// FindAllClassDefinitions returns every known fragment of name: the
// base definition first if present, then modded fragments in
// registration order. The returned slice is a copy.
func (w *Workspace) FindAllClassDefinitions(name string) []*ast.ClassDecl {
	w.mu.RLock()
	defer w.mu.RUnlock()
	frags := w.classes[name]
	if len(frags) == 0 {
		return nil
	}
	out := make([]*ast.ClassDecl, 0, len(frags))
	for _, c := range frags {
		if !c.IsModded() {
			out = append(out, c)
		}
	}
	for _, c := range frags {
		if c.IsModded() {
			out = append(out, c)
		}
	}
	return out
}

func (w *Workspace) FindAllEnumDefinitions(name string) []*ast.EnumDecl {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]*ast.EnumDecl(nil), w.enums[name]...)
}

func (w *Workspace) FindAllTypedefDefinitions(name string) []*ast.TypedefDecl {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]*ast.TypedefDecl(nil), w.typedefs[name]...)
}

func (w *Workspace) FindAllGlobalFunctionDefinitions(name string) []*ast.FuncDecl {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]*ast.FuncDecl(nil), w.funcs[name]...)
}

func (w *Workspace) FindAllGlobalVariableDefinitions(name string) []*ast.VarDecl {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]*ast.VarDecl(nil), w.globals[name]...)
}

// GlobalFunctionReturnType returns the declared return type of the
// first known global function with the given name.
func (w *Workspace) GlobalFunctionReturnType(name string) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	fns := w.funcs[name]
	if len(fns) == 0 || fns[0].ReturnType == nil {
		return "", false
	}
	return fns[0].ReturnType.String(), true
}

// ResolveTypedefClassName maps a typedef name to the base class name of
// its target with generic arguments stripped: typedef Param2<string,
// string> TP resolves TP to "Param2".
func (w *Workspace) ResolveTypedefClassName(name string) (string, bool) {
	full, ok := w.ResolveTypedefFullType(name)
	if !ok {
		return "", false
	}
	base, _ := typestr.ParseGenericType(full)
	return base, true
}

// ResolveTypedefFullType maps a typedef name to the full target type
// string including generic arguments.
func (w *Workspace) ResolveTypedefFullType(name string) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	tds := w.typedefs[name]
	if len(tds) == 0 || tds[0].Target == nil {
		return "", false
	}
	return tds[0].Target.String(), true
}

func (w *Workspace) AllAvailableClassNames() []string {
	return sortedKeys(w, w.classes)
}

func (w *Workspace) AllAvailableEnumNames() []string {
	return sortedKeys(w, w.enums)
}

func (w *Workspace) AllAvailableTypedefNames() []string {
	return sortedKeys(w, w.typedefs)
}

func sortedKeys[V any](w *Workspace, m map[string][]V) []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// HasIncludePaths reports whether any include search paths are
// configured. Without include paths unresolved symbols stay silent.
func (w *Workspace) HasIncludePaths() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.includePaths) > 0
}

// IsOpenDocument reports whether path was registered via AddDocument.
func (w *Workspace) IsOpenDocument(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.openDocs[path]
}
