package index

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"enscript/internal/ast"
	"enscript/internal/source"
	"enscript/internal/typestr"
)

// Bump when the payload layout changes; stale entries are ignored.
const includeCacheSchemaVersion uint16 = 1

// Digest identifies file content by its SHA-256 hash.
type Digest = [32]byte

// IncludeCache persists declaration summaries of parsed include files
// so unchanged includes are not re-lexed on every run. Bodies are not
// cached; restored declarations carry zero spans except the owning
// file id. Thread-safe for concurrent access.
type IncludeCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenIncludeCache initializes a disk cache at the standard location
// ($XDG_CACHE_HOME/<app> or ~/.cache/<app>).
func OpenIncludeCache(app string) (*IncludeCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &IncludeCache{dir: dir}, nil
}

// OpenIncludeCacheAt initializes a disk cache rooted at dir.
func OpenIncludeCacheAt(dir string) (*IncludeCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &IncludeCache{dir: dir}, nil
}

func (c *IncludeCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "includes", hexKey+".mp")
}

// Put serializes and atomically writes a payload keyed by content hash.
func (c *IncludeCache) Put(key Digest, payload *cachedFile) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload by content hash. A miss is (false, nil).
func (c *IncludeCache) Get(key Digest, out *cachedFile) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, fmt.Errorf("decode include cache entry: %w", err)
	}
	if out.Schema != includeCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *IncludeCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// cachedFile is the on-disk declaration summary of one include file.
type cachedFile struct {
	Schema   uint16
	Path     string
	Classes  []cachedClass
	Enums    []cachedEnum
	Typedefs []cachedTypedef
	Funcs    []cachedFunc
	Globals  []cachedVar
}

type cachedClass struct {
	Name     string
	Base     string
	Modded   bool
	Generics []string
	Fields   []cachedVar
	Methods  []cachedFunc
}

type cachedFunc struct {
	Name      string
	Return    string
	Mods      uint16
	Params    []cachedParam
	HasBody   bool
	EmptyBody bool
}

type cachedParam struct {
	Name       string
	Type       string
	Mods       uint16
	HasDefault bool
}

type cachedVar struct {
	Name string
	Type string
	Mods uint16
}

type cachedEnum struct {
	Name    string
	Base    string
	Members []string
}

type cachedTypedef struct {
	Name   string
	Target string
}

// fileToPayload flattens a parsed include file into its cacheable
// declaration summary. Bodies and spans are dropped.
func fileToPayload(f *ast.File) *cachedFile {
	payload := &cachedFile{
		Schema: includeCacheSchemaVersion,
		Path:   f.Path,
	}
	for _, d := range f.Decls {
		switch decl := d.(type) {
		case *ast.ClassDecl:
			payload.Classes = append(payload.Classes, classToPayload(decl))
		case *ast.EnumDecl:
			e := cachedEnum{Name: decl.Name, Base: decl.BaseName}
			for _, m := range decl.Members {
				e.Members = append(e.Members, m.Name)
			}
			payload.Enums = append(payload.Enums, e)
		case *ast.TypedefDecl:
			td := cachedTypedef{Name: decl.Name}
			if decl.Target != nil {
				td.Target = decl.Target.String()
			}
			payload.Typedefs = append(payload.Typedefs, td)
		case *ast.FuncDecl:
			payload.Funcs = append(payload.Funcs, funcToPayload(decl))
		case *ast.VarDecl:
			payload.Globals = append(payload.Globals, varToPayload(decl))
		}
	}
	return payload
}

func classToPayload(c *ast.ClassDecl) cachedClass {
	out := cachedClass{
		Name:     c.Name,
		Base:     c.BaseName,
		Modded:   c.IsModded(),
		Generics: append([]string(nil), c.GenericParams...),
	}
	for _, m := range c.Members {
		switch member := m.(type) {
		case *ast.VarDecl:
			out.Fields = append(out.Fields, varToPayload(member))
		case *ast.FuncDecl:
			out.Methods = append(out.Methods, funcToPayload(member))
		}
	}
	return out
}

func funcToPayload(fn *ast.FuncDecl) cachedFunc {
	out := cachedFunc{
		Name:    fn.Name,
		Mods:    uint16(fn.Modifiers),
		HasBody: fn.Body != nil,
	}
	if fn.ReturnType != nil {
		out.Return = fn.ReturnType.String()
	}
	if fn.Body != nil && len(fn.Body.Stmts) == 0 {
		out.EmptyBody = true
	}
	for _, p := range fn.Params {
		cp := cachedParam{
			Name:       p.Name,
			Mods:       uint16(p.Modifiers),
			HasDefault: p.Default != nil,
		}
		if p.Type != nil {
			cp.Type = p.Type.String()
		}
		out.Params = append(out.Params, cp)
	}
	return out
}

func varToPayload(v *ast.VarDecl) cachedVar {
	out := cachedVar{Name: v.Name, Mods: uint16(v.Modifiers)}
	if v.Type != nil {
		out.Type = v.Type.String()
	}
	return out
}

// payloadToFile rebuilds declaration stubs from a cache entry. All
// spans point at fileID with zero offsets; method bodies come back as
// empty blocks when the cached method had one.
func payloadToFile(payload *cachedFile, fileID source.FileID) *ast.File {
	at := source.Span{File: fileID}
	f := &ast.File{FileID: fileID, Path: payload.Path, Span: at}

	for i := range payload.Classes {
		pc := &payload.Classes[i]
		cls := &ast.ClassDecl{
			Name:          pc.Name,
			BaseName:      pc.Base,
			GenericParams: append([]string(nil), pc.Generics...),
			Span:          at,
			NameSpan:      at,
		}
		if pc.Modded {
			cls.Modifiers |= ast.ModModded
		}
		if pc.Base != "" {
			cls.BaseType = typestr.ParseType(pc.Base)
		}
		for j := range pc.Fields {
			field := payloadToVar(&pc.Fields[j], at)
			field.Owner = cls
			cls.Members = append(cls.Members, field)
		}
		for j := range pc.Methods {
			method := payloadToFunc(&pc.Methods[j], at)
			method.Owner = cls
			cls.Members = append(cls.Members, method)
		}
		f.Decls = append(f.Decls, cls)
	}

	for i := range payload.Enums {
		pe := &payload.Enums[i]
		e := &ast.EnumDecl{Name: pe.Name, BaseName: pe.Base, Span: at, NameSpan: at}
		for _, name := range pe.Members {
			e.Members = append(e.Members, &ast.EnumMemberDecl{
				Name: name, Owner: e, Span: at, NameSpan: at,
			})
		}
		f.Decls = append(f.Decls, e)
	}

	for i := range payload.Typedefs {
		pt := &payload.Typedefs[i]
		f.Decls = append(f.Decls, &ast.TypedefDecl{
			Name:     pt.Name,
			Target:   typestr.ParseType(pt.Target),
			Span:     at,
			NameSpan: at,
		})
	}

	for i := range payload.Funcs {
		f.Decls = append(f.Decls, payloadToFunc(&payload.Funcs[i], at))
	}
	for i := range payload.Globals {
		f.Decls = append(f.Decls, payloadToVar(&payload.Globals[i], at))
	}
	return f
}

func payloadToFunc(p *cachedFunc, at source.Span) *ast.FuncDecl {
	fn := &ast.FuncDecl{
		Name:      p.Name,
		Modifiers: ast.Modifiers(p.Mods),
		Span:      at,
		NameSpan:  at,
	}
	if p.Return != "" {
		fn.ReturnType = typestr.ParseType(p.Return)
	}
	if p.HasBody {
		fn.Body = &ast.BlockStmt{Span: at}
		if !p.EmptyBody {
			// Keep non-empty bodies visibly non-empty so stub
			// detection does not misread cache hits.
			fn.Body.Stmts = []ast.Stmt{&ast.BlockStmt{Span: at}}
		}
	}
	for i := range p.Params {
		pp := &p.Params[i]
		param := &ast.ParamDecl{
			Name:      pp.Name,
			Modifiers: ast.Modifiers(pp.Mods),
			Span:      at,
			NameSpan:  at,
		}
		if pp.Type != "" {
			param.Type = typestr.ParseType(pp.Type)
		}
		if pp.HasDefault {
			param.Default = &ast.NullLit{Span: at}
		}
		fn.Params = append(fn.Params, param)
	}
	return fn
}

func payloadToVar(p *cachedVar, at source.Span) *ast.VarDecl {
	v := &ast.VarDecl{Name: p.Name, Modifiers: ast.Modifiers(p.Mods), Span: at, NameSpan: at}
	if p.Type != "" {
		v.Type = typestr.ParseType(p.Type)
	}
	return v
}
