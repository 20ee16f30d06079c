package version

import (
	"strings"
	"testing"
	"time"
)

func stamp(t *testing.T, version, commit, buildTime string) {
	t.Helper()
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	t.Cleanup(func() {
		Version, GitCommit, BuildTime = origVersion, origCommit, origBuildTime
	})
	Version, GitCommit, BuildTime = version, commit, buildTime
}

func TestGetVersionInfo_Dev(t *testing.T) {
	stamp(t, "dev", "", "")

	info := GetVersionInfo()
	if info.Version != "dev" {
		t.Errorf("expected dev, got %q", info.Version)
	}
	if info.IsRelease {
		t.Error("dev must not be a release")
	}
	if info.GoVersion == "" {
		t.Error("expected go version from build info")
	}
}

func TestGetVersionInfo_Stamped(t *testing.T) {
	stamp(t, "1.2.0", "abcdef1234567", "2026-03-01T10:00:00Z")

	info := GetVersionInfo()
	if info.GitCommit != "abcdef1" {
		t.Errorf("expected commit shortened to 7 chars, got %q", info.GitCommit)
	}
	want := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if !info.BuildDate.Equal(want) {
		t.Errorf("expected build date %v, got %v", want, info.BuildDate)
	}
}

func TestShort(t *testing.T) {
	stamp(t, "1.2.0", "abcdef1", "")
	if got := Short(); !strings.HasPrefix(got, "1.2.0-abcdef1") {
		t.Errorf("unexpected short version %q", got)
	}
}

func TestResolve(t *testing.T) {
	stamp(t, "1.2.0", "", "")
	if got := Resolve("2.0.0"); got != "2.0.0" {
		t.Errorf("expected configured version, got %q", got)
	}
	if got := Resolve(""); !strings.HasPrefix(got, "1.2.0") {
		t.Errorf("expected build version, got %q", got)
	}
}
