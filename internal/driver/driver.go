// Package driver orchestrates the analysis pipeline: load, parse,
// index, then run the rule registry over each document.
package driver

import (
	"context"
	"runtime"

	"enscript/internal/ast"
	"enscript/internal/diag"
	"enscript/internal/hier"
	"enscript/internal/index"
	"enscript/internal/parser"
	"enscript/internal/rules"
	"enscript/internal/source"
	"enscript/internal/trace"
)

// ScriptExt is the file extension of script sources.
const ScriptExt = ".c"

// DefaultMaxDiagnostics caps the per-file bag when the caller does not
// set a limit.
const DefaultMaxDiagnostics = 256

// Options configure an Analyzer.
type Options struct {
	// IncludePaths are directories searched for lazily loaded
	// engine/framework classes.
	IncludePaths []string
	// Cache, when non-nil, persists parsed include files across runs.
	Cache *index.IncludeCache
	// Rules overrides the rule registry; nil means the default set.
	Rules *rules.Registry
	// Tracer receives diagnostic engine logs; nil means silent.
	Tracer trace.Tracer
	// MaxDiagnostics caps diagnostics per file; 0 means the default.
	MaxDiagnostics int
	// Jobs bounds directory-analysis parallelism; 0 means GOMAXPROCS.
	Jobs int
}

// Analyzer holds the shared workspace state for one analysis session.
// A single Analyzer serves any number of Analyze calls; the workspace
// index accumulates every document it has seen.
type Analyzer struct {
	fs       *source.FileSet
	ws       *index.Workspace
	registry *rules.Registry
	tracer   trace.Tracer
	maxDiags int
	jobs     int
}

// Result is the analysis outcome for one file. The bag holds parse and
// rule diagnostics together, sorted by position.
type Result struct {
	Path   string
	FileID source.FileID
	File   *ast.File
	Bag    *diag.Bag
}

// New creates an Analyzer with an empty workspace.
func New(opts Options) *Analyzer {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	maxDiags := opts.MaxDiagnostics
	if maxDiags <= 0 {
		maxDiags = DefaultMaxDiagnostics
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	fs := source.NewFileSet()
	ws := index.NewWorkspace(fs, index.Options{
		IncludePaths: opts.IncludePaths,
		Cache:        opts.Cache,
		Tracer:       tracer,
	})
	registry := opts.Rules
	if registry == nil {
		registry = rules.NewDefaultRegistry()
	}
	return &Analyzer{
		fs:       fs,
		ws:       ws,
		registry: registry,
		tracer:   tracer,
		maxDiags: maxDiags,
		jobs:     jobs,
	}
}

// Workspace exposes the symbol index, for hosts that feed documents
// incrementally.
func (a *Analyzer) Workspace() *index.Workspace { return a.ws }

// Registry exposes the rule registry for configuration.
func (a *Analyzer) Registry() *rules.Registry { return a.registry }

// FileSet returns the shared file set for span resolution.
func (a *Analyzer) FileSet() *source.FileSet { return a.fs }

// AnalyzeSource analyzes in-memory content registered under path. The
// document replaces any earlier version of the same path.
func (a *Analyzer) AnalyzeSource(ctx context.Context, path string, content []byte) *Result {
	id := a.fs.AddVirtual(path, content)
	return a.analyze(ctx, id)
}

// AnalyzeFile loads one script from disk and analyzes it.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*Result, error) {
	id, err := a.fs.Load(path)
	if err != nil {
		return nil, err
	}
	return a.analyze(ctx, id), nil
}

// analyze parses the file, replaces it in the index and runs the rule
// registry over the fresh tree.
func (a *Analyzer) analyze(ctx context.Context, id source.FileID) *Result {
	res := a.parse(id)
	a.ws.AddDocument(res.File)
	a.runRules(ctx, res)
	res.Bag.Sort()
	return res
}

// parse builds the AST with lexer and parser diagnostics collected in
// the result bag.
func (a *Analyzer) parse(id source.FileID) *Result {
	file := a.fs.Get(id)
	bag := diag.NewBag(a.maxDiags)
	p := parser.New(file, diag.BagReporter{Bag: bag})
	f := p.ParseFile()
	return &Result{Path: file.Path, FileID: id, File: f, Bag: bag}
}

// runRules executes the registry over one parsed document. Each run
// gets its own resolver so memoized lookups match the current index.
func (a *Analyzer) runRules(ctx context.Context, res *Result) {
	r := hier.NewResolver(a.ws, a.fs, a.tracer)
	pass := rules.NewPass(res.File, a.fs, r, a.tracer)
	a.registry.Run(ctx, pass, diag.BagReporter{Bag: res.Bag})
}
