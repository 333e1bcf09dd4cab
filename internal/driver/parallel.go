package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"enscript/internal/source"
	"enscript/internal/trace"
)

// listScriptFiles returns the sorted script files under dir.
func listScriptFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ScriptExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// AnalyzeDir analyzes every script under dir. All files are parsed and
// indexed before any rule runs, so cross-file references resolve
// regardless of order; the rule passes then run in parallel. Results
// come back sorted by path.
func (a *Analyzer) AnalyzeDir(ctx context.Context, dir string) ([]*Result, error) {
	files, err := listScriptFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	ids := make([]source.FileID, 0, len(files))
	for _, path := range files {
		id, err := a.fs.Load(path)
		if err != nil {
			trace.Warnf(a.tracer, "driver", "skipping %s: %v", path, err)
			continue
		}
		ids = append(ids, id)
	}

	// Parse phase. Slots are per-goroutine, no locking needed.
	results := make([]*Result, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(a.jobs, len(ids)))
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.parse(id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Index phase: the whole directory becomes visible at once.
	for _, res := range results {
		a.ws.AddDocument(res.File)
	}

	// Rule phase.
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(min(a.jobs, len(ids)))
	for _, res := range results {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a.runRules(gctx, res)
			res.Bag.Sort()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
