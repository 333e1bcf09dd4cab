package main

import (
	"os"
	"path/filepath"
	"testing"

	"enscript/internal/diag"
	"enscript/internal/rules"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, manifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindManifestWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[project]\nname = \"mod\"\n")
	nested := filepath.Join(root, "scripts", "world")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := findManifest(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("manifest not found from nested directory")
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %s, want manifest in %s", path, root)
	}
}

func TestLoadManifestMissingIsNotAnError(t *testing.T) {
	_, ok, err := loadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("reported a manifest in an empty directory")
	}
}

func TestLoadManifestResolvesIncludePaths(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[project]
name = "mod"

[analysis]
include_paths = ["engine", "/abs/engine"]
`)

	m, ok, err := loadManifest(root)
	if err != nil || !ok {
		t.Fatalf("loadManifest: ok=%v err=%v", ok, err)
	}
	paths := m.includePaths()
	if len(paths) != 2 {
		t.Fatalf("got %d include paths, want 2", len(paths))
	}
	if paths[0] != filepath.Join(root, "engine") {
		t.Errorf("relative path not rooted: %s", paths[0])
	}
	if paths[1] != "/abs/engine" {
		t.Errorf("absolute path rewritten: %s", paths[1])
	}
}

func TestLoadManifestRejectsBadSeverity(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[rules.narrowing-conversion]
severity = "fatal"
`)

	_, _, err := loadManifest(root)
	if err == nil {
		t.Fatal("expected error for invalid severity")
	}
}

func TestApplyRuleSettings(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[rules.narrowing-conversion]
severity = "error"

[rules.missing-override]
enabled = false
`)

	m, ok, err := loadManifest(root)
	if err != nil || !ok {
		t.Fatalf("loadManifest: ok=%v err=%v", ok, err)
	}

	reg := rules.NewDefaultRegistry()
	if err := m.applyRuleSettings(reg); err != nil {
		t.Fatal(err)
	}

	cfg, _ := reg.GetRuleConfig(rules.RuleNarrowingConversion)
	if cfg.Severity == nil || *cfg.Severity != diag.SevError {
		t.Errorf("narrowing-conversion severity override not applied: %+v", cfg)
	}
	cfg, _ = reg.GetRuleConfig(rules.RuleMissingOverride)
	if cfg.Enabled {
		t.Error("missing-override still enabled")
	}
}

func TestApplyRuleSettingsRejectsUnknownRule(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[rules.no-such-rule]
enabled = false
`)

	m, _, err := loadManifest(root)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.applyRuleSettings(rules.NewDefaultRegistry()); err == nil {
		t.Fatal("expected error for unknown rule id")
	}
}
