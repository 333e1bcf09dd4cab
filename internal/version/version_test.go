package version

import (
	"strings"
	"testing"
)

func TestDescribeDefaults(t *testing.T) {
	info := Describe()
	if info.Version == "" {
		t.Error("Describe should always report a version")
	}
	if info.Version != strings.TrimSpace(Number) {
		t.Errorf("Version = %q, want %q", info.Version, Number)
	}
}

func TestDescribeTrimsAndFallsBack(t *testing.T) {
	origNumber := Number
	origGitCommit := GitCommit
	origBuildDate := BuildDate
	defer func() {
		Number = origNumber
		GitCommit = origGitCommit
		BuildDate = origBuildDate
	}()

	// Simulate build-time ldflags.
	Number = " 1.2.3 "
	GitCommit = "abc123def456\n"
	BuildDate = "2026-01-15T10:30:00Z"

	info := Describe()
	if info.Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", info.Version, "1.2.3")
	}
	if info.GitCommit != "abc123def456" {
		t.Errorf("GitCommit = %q, want %q", info.GitCommit, "abc123def456")
	}
	if info.BuildDate != "2026-01-15T10:30:00Z" {
		t.Errorf("BuildDate = %q, want %q", info.BuildDate, "2026-01-15T10:30:00Z")
	}

	Number = ""
	if got := Describe().Version; got != "dev" {
		t.Errorf("empty version should fall back to dev, got %q", got)
	}
}

func TestStyledKeepsUnrecognizedShapes(t *testing.T) {
	if got := styled("dev"); got != "dev" {
		t.Errorf("styled(dev) = %q", got)
	}
	// The styled triplet must still contain every plain component.
	got := styled("1.2.3-rc.1")
	for _, part := range []string{"1", "2", "3-rc"} {
		if !strings.Contains(got, part) {
			t.Errorf("styled output %q lost component %q", got, part)
		}
	}
}
