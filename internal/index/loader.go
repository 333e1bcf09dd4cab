package index

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"enscript/internal/ast"
	"enscript/internal/diag"
	"enscript/internal/parser"
	"enscript/internal/source"
	"enscript/internal/trace"
)

// LoadClassFromIncludePaths scans the configured include search paths
// for a file named <name>.c and indexes whatever it declares. The scan
// runs at most once per class name; repeated calls for the same name
// are cheap no-ops. Returns true when at least one file was indexed.
//
// Loading is best effort. Scan and parse failures are traced at warn
// level and swallowed; the caller stays fail-open either way.
func (w *Workspace) LoadClassFromIncludePaths(ctx context.Context, name string) bool {
	if name == "" {
		return false
	}

	w.mu.Lock()
	if w.attempted[name] || len(w.includePaths) == 0 {
		w.mu.Unlock()
		return false
	}
	w.attempted[name] = true
	paths := append([]string(nil), w.includePaths...)
	w.mu.Unlock()

	want := name + ".c"
	loaded := false
	for _, root := range paths {
		if ctx.Err() != nil {
			return loaded
		}
		found, err := findFileNamed(ctx, root, want)
		if err != nil {
			trace.Warnf(w.tracer, "index.include", "scan %s: %v", root, err)
			continue
		}
		for _, path := range found {
			if w.loadIncludeFile(path) {
				loaded = true
			}
		}
	}
	if !loaded {
		trace.Debugf(w.tracer, "index.include", "no include source for %s", name)
	}
	return loaded
}

// findFileNamed walks root looking for files with the given base name.
func findFileNamed(ctx context.Context, root, want string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if !d.IsDir() && d.Name() == want {
			found = append(found, path)
		}
		return nil
	})
	return found, err
}

// loadIncludeFile parses (or restores from cache) one include file and
// registers its declarations.
func (w *Workspace) loadIncludeFile(path string) bool {
	if w.alreadyIndexed(path) {
		return false
	}

	content, err := os.ReadFile(path) // #nosec G304 -- include path from project config
	if err != nil {
		trace.Warnf(w.tracer, "index.include", "read %s: %v", path, err)
		return false
	}

	w.mu.Lock()
	id := w.fs.AddVirtual(path, content)
	file := w.fs.Get(id)
	file.Flags |= source.FileInclude
	w.mu.Unlock()

	if f := w.restoreFromCache(file); f != nil {
		w.AddIncludeFile(f)
		return true
	}

	// Syntax trouble in include files is not the open document's
	// problem; parse diagnostics are dropped.
	p := parser.New(file, diag.NopReporter{})
	parsed := p.ParseFile()
	w.AddIncludeFile(parsed)
	w.storeToCache(file, parsed)
	trace.Infof(w.tracer, "index.include", "indexed %s", path)
	return true
}

func (w *Workspace) alreadyIndexed(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.fs.GetLatest(path)
	return ok
}

func (w *Workspace) restoreFromCache(file *source.File) *ast.File {
	if w.cache == nil {
		return nil
	}
	var payload cachedFile
	hit, err := w.cache.Get(file.Hash, &payload)
	if err != nil {
		trace.Warnf(w.tracer, "index.cache", "get %s: %v", file.Path, err)
		return nil
	}
	if !hit {
		return nil
	}
	trace.Debugf(w.tracer, "index.cache", "hit %s", file.Path)
	return payloadToFile(&payload, file.ID)
}

func (w *Workspace) storeToCache(file *source.File, parsed *ast.File) {
	if w.cache == nil {
		return
	}
	if err := w.cache.Put(file.Hash, fileToPayload(parsed)); err != nil {
		trace.Warnf(w.tracer, "index.cache", "put %s: %v", file.Path, err)
	}
}
