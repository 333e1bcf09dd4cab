package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"enscript/internal/diag"
	"enscript/internal/diagfmt"
	"enscript/internal/driver"
	"enscript/internal/index"
	"enscript/internal/rules"
	"enscript/internal/trace"
	"enscript/internal/ui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] <file.c|directory>",
	Short: "Analyze Enforce script sources",
	Long:  `Analyze a script file, or every *.c file under a directory, and report semantic and syntax diagnostics`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	analyzeCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	analyzeCmd.Flags().Bool("show-rule", false, "append the producing rule id to each diagnostic")
	analyzeCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	analyzeCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	analyzeCmd.Flags().StringArray("include", nil, "extra include directory for engine classes (repeatable)")
	analyzeCmd.Flags().Bool("disk-cache", false, "persist parsed include files across runs")
	analyzeCmd.Flags().Bool("summary", false, "print a per-file summary after directory analysis")
}

type analyzeOptions struct {
	format    string
	withNotes bool
	showRule  bool
	pathMode  diagfmt.PathMode
	color     bool
	summary   bool
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	target := args[0]

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("cannot access %q: %w", target, err)
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, short or json)", format)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	showRule, err := cmd.Flags().GetBool("show-rule")
	if err != nil {
		return fmt.Errorf("failed to get show-rule flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	extraIncludes, err := cmd.Flags().GetStringArray("include")
	if err != nil {
		return fmt.Errorf("failed to get include flag: %w", err)
	}
	diskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	summary, err := cmd.Flags().GetBool("summary")
	if err != nil {
		return fmt.Errorf("failed to get summary flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	color, err := useColor(cmd)
	if err != nil {
		return err
	}

	startDir := target
	if !info.IsDir() {
		startDir = filepath.Dir(target)
	}
	manifest, hasManifest, err := loadManifest(startDir)
	if err != nil {
		return err
	}

	tracer, err := setupTracer(cmd)
	if err != nil {
		return err
	}

	includePaths := append([]string(nil), extraIncludes...)
	if hasManifest {
		includePaths = append(includePaths, manifest.includePaths()...)
		// Flags win over the manifest when set explicitly.
		if !cmd.Flags().Changed("jobs") && manifest.Config.Analysis.Jobs > 0 {
			jobs = manifest.Config.Analysis.Jobs
		}
		if !cmd.Root().PersistentFlags().Changed("max-diagnostics") &&
			manifest.Config.Analysis.MaxDiagnostics > 0 {
			maxDiagnostics = manifest.Config.Analysis.MaxDiagnostics
		}
	}

	var cache *index.IncludeCache
	if diskCache || (hasManifest && manifest.Config.Cache.Enabled) {
		cache, err = openCache(manifest)
		if err != nil {
			return fmt.Errorf("failed to open include cache: %w", err)
		}
	}

	registry := rules.NewDefaultRegistry()
	if hasManifest {
		if err := manifest.applyRuleSettings(registry); err != nil {
			return err
		}
	}

	analyzer := driver.New(driver.Options{
		IncludePaths:   includePaths,
		Cache:          cache,
		Rules:          registry,
		Tracer:         tracer,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
	})

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	opts := analyzeOptions{
		format:    format,
		withNotes: withNotes,
		showRule:  showRule,
		pathMode:  pathMode,
		color:     color,
		summary:   summary,
	}

	cmd.SilenceUsage = true

	var results []*driver.Result
	if info.IsDir() {
		results, err = analyzer.AnalyzeDir(cmd.Context(), target)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
	} else {
		result, ferr := analyzer.AnalyzeFile(cmd.Context(), target)
		if ferr != nil {
			return fmt.Errorf("analysis failed: %w", ferr)
		}
		results = []*driver.Result{result}
	}

	if err := renderResults(analyzer, results, opts, info.IsDir()); err != nil {
		return err
	}

	for _, r := range results {
		if r.Bag.HasErrors() {
			os.Exit(1)
		}
	}
	return nil
}

func renderResults(analyzer *driver.Analyzer, results []*driver.Result, opts analyzeOptions, isDir bool) error {
	fs := analyzer.FileSet()

	if opts.format == "json" {
		combined := diag.NewBag(driver.DefaultMaxDiagnostics)
		for _, r := range results {
			combined.Merge(r.Bag)
		}
		combined.Sort()
		return diagfmt.JSON(os.Stdout, combined, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         opts.pathMode,
			IncludeNotes:     opts.withNotes,
			IncludeFixes:     true,
		})
	}

	pretty := diagfmt.PrettyOpts{
		Color:     opts.color,
		PathMode:  opts.pathMode,
		ShowNotes: opts.withNotes,
		ShowRule:  opts.showRule,
	}
	for _, r := range results {
		if opts.format == "short" {
			diagfmt.Short(os.Stdout, r.Bag, fs, pretty)
		} else {
			diagfmt.Pretty(os.Stdout, r.Bag, fs, pretty)
		}
	}

	if isDir && (opts.summary || isTerminal(os.Stdout)) && opts.format == "pretty" {
		ui.Summary(os.Stdout, summarize(results), opts.color, 0)
	}
	return nil
}

func summarize(results []*driver.Result) []ui.FileSummary {
	rows := make([]ui.FileSummary, 0, len(results))
	for _, r := range results {
		row := ui.FileSummary{Path: r.Path}
		for _, d := range r.Bag.Items() {
			switch d.Severity {
			case diag.SevError:
				row.Errors++
			case diag.SevWarning:
				row.Warnings++
			default:
				row.Infos++
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// setupTracer builds a stderr tracer from the --trace-level flag.
func setupTracer(cmd *cobra.Command) (trace.Tracer, error) {
	levelStr, err := cmd.Root().PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	if level == trace.LevelOff {
		return trace.Nop, nil
	}
	return trace.NewStreamTracer(os.Stderr, level), nil
}

func openCache(manifest *projectManifest) (*index.IncludeCache, error) {
	if manifest != nil && manifest.Config.Cache.Dir != "" {
		dir := manifest.Config.Cache.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(manifest.Root, dir)
		}
		return index.OpenIncludeCacheAt(dir)
	}
	return index.OpenIncludeCache("enscript")
}
