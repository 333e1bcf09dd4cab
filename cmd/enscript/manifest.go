package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"enscript/internal/diag"
	"enscript/internal/rules"
)

// manifestName is the project configuration file searched for upward
// from the analyzed path.
const manifestName = "enscript.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Project  projectSection         `toml:"project"`
	Analysis analysisSection        `toml:"analysis"`
	Cache    cacheSection           `toml:"cache"`
	Rules    map[string]ruleSection `toml:"rules"`
}

type projectSection struct {
	Name string `toml:"name"`
}

type analysisSection struct {
	IncludePaths   []string `toml:"include_paths"`
	Jobs           int      `toml:"jobs"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
}

type cacheSection struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type ruleSection struct {
	Enabled  *bool  `toml:"enabled"`
	Severity string `toml:"severity"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadManifest locates and parses enscript.toml. The manifest is
// optional; a missing file yields (nil, false, nil).
func loadManifest(startDir string) (*projectManifest, bool, error) {
	path, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("project", "name") && strings.TrimSpace(cfg.Project.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: [project].name must not be empty", path)
	}
	for id, rc := range cfg.Rules {
		if rc.Severity == "" {
			continue
		}
		if _, err := diag.ParseSeverity(rc.Severity); err != nil {
			return projectConfig{}, fmt.Errorf("%s: [rules.%s]: %w", path, id, err)
		}
	}
	return cfg, nil
}

// includePaths returns the manifest's include paths resolved against
// the project root.
func (m *projectManifest) includePaths() []string {
	paths := make([]string, 0, len(m.Config.Analysis.IncludePaths))
	for _, p := range m.Config.Analysis.IncludePaths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(m.Root, p)
		}
		paths = append(paths, p)
	}
	return paths
}

// applyRuleSettings pushes per-rule manifest overrides into the
// registry. Unknown rule ids are rejected so typos do not silently
// leave a rule at its default.
func (m *projectManifest) applyRuleSettings(reg *rules.Registry) error {
	for id, rc := range m.Config.Rules {
		cfg, ok := reg.GetRuleConfig(id)
		if !ok {
			cfg = rules.DefaultConfig()
		}
		if rc.Enabled != nil {
			cfg.Enabled = *rc.Enabled
		}
		if rc.Severity != "" {
			sev, err := diag.ParseSeverity(rc.Severity)
			if err != nil {
				return fmt.Errorf("%s: [rules.%s]: %w", m.Path, id, err)
			}
			cfg.Severity = &sev
		}
		if err := reg.UpdateRuleConfig(id, cfg); err != nil {
			return fmt.Errorf("%s: %w", m.Path, err)
		}
	}
	return nil
}
