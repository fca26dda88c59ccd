// Package buildinfo reports the treeplot release a binary was built from.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/treeplot/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/treeplot/pkg/buildinfo.Commit=$(git rev-parse HEAD)"
//
// Builds from "go install" fall back to the module version and VCS
// revision recorded by the toolchain.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	fillFrom(bi)
}

// fillFrom copies the module version and vcs settings into variables that
// ldflags left at their defaults.
func fillFrom(bi *debug.BuildInfo) {
	if Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == "none":
			Commit = s.Value
		case s.Key == "vcs.time" && Date == "unknown":
			Date = s.Value
		}
	}
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}

// CacheScope prefixes artifact cache keys so entries written by another
// release are never read back.
func CacheScope() string {
	return "treeplot@" + Version + ":"
}
