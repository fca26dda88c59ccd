package buildinfo

import (
	"runtime/debug"
	"testing"
)

func setVars(t *testing.T, version, commit, date string) {
	t.Helper()
	v, c, d := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func TestTemplateAndScope(t *testing.T) {
	setVars(t, "v0.3.1", "abc123", "2026-01-02")

	if got, want := Template(), "{{.Name}} v0.3.1 (commit abc123, built 2026-01-02)\n"; got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
	if got := CacheScope(); got != "treeplot@v0.3.1:" {
		t.Errorf("CacheScope() = %q", got)
	}
}

func TestFillFrom(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "deadbeef"},
			{Key: "vcs.time", Value: "2026-03-04T05:06:07Z"},
		},
	}

	tests := []struct {
		name                    string
		version, commit, date   string
		wantVersion, wantCommit string
	}{
		{"defaults filled", "dev", "none", "unknown", "v1.2.0", "deadbeef"},
		{"ldflags kept", "v9.0.0", "cafe", "x", "v9.0.0", "cafe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setVars(t, tt.version, tt.commit, tt.date)
			fillFrom(bi)
			if Version != tt.wantVersion || Commit != tt.wantCommit {
				t.Errorf("got %s/%s, want %s/%s", Version, Commit, tt.wantVersion, tt.wantCommit)
			}
		})
	}
}

func TestFillFromDevelBuild(t *testing.T) {
	setVars(t, "dev", "none", "unknown")
	fillFrom(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if Version != "dev" {
		t.Errorf("Version = %q, want dev", Version)
	}
}
