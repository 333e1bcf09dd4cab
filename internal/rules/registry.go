package rules

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"enscript/internal/ast"
	"enscript/internal/diag"
	"enscript/internal/trace"
)

// Registry holds the registered rules, their configuration and the
// cached execution order. Safe for concurrent Run calls; registration
// and configuration updates may interleave with them.
type Registry struct {
	mu      sync.Mutex
	rules   map[string]Rule
	configs map[string]Config
	order   []Rule // nil until recomputed
	stats   map[string]RuleStats
}

// RuleStats counts a rule's activity across Run calls.
type RuleStats struct {
	NodesChecked int
	Diagnostics  int
	Panics       int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rules:   make(map[string]Rule),
		configs: make(map[string]Config),
		stats:   make(map[string]RuleStats),
	}
}

// Register adds a rule with the default configuration. Registering an
// ID twice replaces the earlier rule.
func (rg *Registry) Register(r Rule) {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	rg.rules[r.ID()] = r
	if _, ok := rg.configs[r.ID()]; !ok {
		rg.configs[r.ID()] = DefaultConfig()
	}
	rg.order = nil
}

// Unregister removes a rule and its configuration.
func (rg *Registry) Unregister(id string) {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	delete(rg.rules, id)
	delete(rg.configs, id)
	rg.order = nil
}

// GetRuleConfig returns the configuration for a rule ID.
func (rg *Registry) GetRuleConfig(id string) (Config, bool) {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	cfg, ok := rg.configs[id]
	return cfg, ok
}

// UpdateRuleConfig replaces the configuration for a registered rule.
func (rg *Registry) UpdateRuleConfig(id string, cfg Config) error {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	if _, ok := rg.rules[id]; !ok {
		return fmt.Errorf("rules: unknown rule %q", id)
	}
	rg.configs[id] = cfg
	return nil
}

// Stats returns a copy of the per-rule counters.
func (rg *Registry) Stats() map[string]RuleStats {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	out := make(map[string]RuleStats, len(rg.stats))
	for id, s := range rg.stats {
		out[id] = s
	}
	return out
}

// RuleInfo is one row of the registry's debug snapshot.
type RuleInfo struct {
	ID       string
	Priority int
	After    []string
	Enabled  bool
	Severity *diag.Severity
}

// Export returns a snapshot of the registry in execution order: each
// rule's ID, priority, After edges and effective configuration. Hosts
// use it to surface the active rule set without reaching into
// registry internals.
func (rg *Registry) Export() []RuleInfo {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	order := rg.orderLocked()
	out := make([]RuleInfo, 0, len(order))
	for _, r := range order {
		cfg := rg.configs[r.ID()]
		out = append(out, RuleInfo{
			ID:       r.ID(),
			Priority: r.Priority(),
			After:    append([]string(nil), r.After()...),
			Enabled:  cfg.Enabled,
			Severity: cfg.Severity,
		})
	}
	return out
}

// GetAllRules returns the rules in execution order: a topological sort
// of the After edges, ties broken by priority (higher first) and then
// by ID. The order is cached until registration changes.
func (rg *Registry) GetAllRules() []Rule {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	return rg.orderLocked()
}

func (rg *Registry) orderLocked() []Rule {
	if rg.order == nil {
		rg.order = rg.sortRules()
	}
	return rg.order
}

func (rg *Registry) sortRules() []Rule {
	indegree := make(map[string]int, len(rg.rules))
	succ := make(map[string][]string, len(rg.rules))
	for id := range rg.rules {
		indegree[id] = 0
	}
	for id, r := range rg.rules {
		for _, dep := range r.After() {
			if _, ok := rg.rules[dep]; !ok {
				// Edge to an unregistered rule is vacuously satisfied.
				continue
			}
			succ[dep] = append(succ[dep], id)
			indegree[id]++
		}
	}

	ready := make([]Rule, 0, len(rg.rules))
	for id, deg := range indegree {
		if deg == 0 {
			ready = append(ready, rg.rules[id])
		}
	}
	out := make([]Rule, 0, len(rg.rules))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool {
			if ready[i].Priority() != ready[j].Priority() {
				return ready[i].Priority() > ready[j].Priority()
			}
			return ready[i].ID() < ready[j].ID()
		})
		r := ready[0]
		ready = ready[1:]
		out = append(out, r)
		for _, next := range succ[r.ID()] {
			indegree[next]--
			if indegree[next] == 0 {
				ready = append(ready, rg.rules[next])
			}
		}
	}
	if len(out) < len(rg.rules) {
		// Dependency cycle. Append the remainder by priority so every
		// registered rule still runs.
		var rest []Rule
		for id, r := range rg.rules {
			if indegree[id] > 0 {
				rest = append(rest, r)
			}
		}
		sort.Slice(rest, func(i, j int) bool {
			if rest[i].Priority() != rest[j].Priority() {
				return rest[i].Priority() > rest[j].Priority()
			}
			return rest[i].ID() < rest[j].ID()
		})
		out = append(out, rest...)
	}
	return out
}

// Run executes every enabled rule over the pass's nodes and sends the
// stamped diagnostics to the reporter. A panicking rule is contained:
// it loses its findings for the current node but never aborts the run.
// Concurrent Run calls on different passes are safe.
func (rg *Registry) Run(ctx context.Context, p *Pass, reporter diag.Reporter) {
	rg.mu.Lock()
	order := rg.orderLocked()
	configs := make(map[string]Config, len(rg.configs))
	for id, cfg := range rg.configs {
		configs[id] = cfg
	}
	rg.mu.Unlock()

	for _, r := range order {
		if err := ctx.Err(); err != nil {
			return
		}
		cfg := configs[r.ID()]
		if !cfg.Enabled {
			continue
		}
		var st RuleStats
		for _, n := range p.Nodes() {
			if !r.AppliesTo(n) {
				continue
			}
			st.NodesChecked++
			ds, panicked := rg.checkNode(ctx, r, n, p, cfg)
			if panicked {
				st.Panics++
			}
			for _, d := range ds {
				d.Rule = r.ID()
				d.SourceTag = SourceTag
				if cfg.Severity != nil {
					d.Severity = *cfg.Severity
				}
				reporter.Report(d)
			}
			st.Diagnostics += len(ds)
		}
		rg.addStats(r.ID(), st)
	}
}

func (rg *Registry) addStats(id string, st RuleStats) {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	total := rg.stats[id]
	total.NodesChecked += st.NodesChecked
	total.Diagnostics += st.Diagnostics
	total.Panics += st.Panics
	rg.stats[id] = total
}

func (rg *Registry) checkNode(ctx context.Context, r Rule, n ast.Node, p *Pass, cfg Config) (ds []diag.Diagnostic, panicked bool) {
	defer func() {
		if rec := recover(); rec != nil {
			trace.Warnf(p.Tracer, "rules", "rule %s panicked at %v: %v", r.ID(), n.Pos(), rec)
			ds, panicked = nil, true
		}
	}()
	return r.Check(ctx, n, p, cfg), false
}
