package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/MrSnakeDoc/navdir/internal/version.Version=v0.1.0 ...".
var (
	Version   = "dev"             // ex: v0.1.0
	Commit    = "none"            // ex: abcd123
	BuildDate = "unknown"         // ex: 2025-08-11T18:42:00Z
	GoVersion = runtime.Version() // go version
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	fromBuildInfo(info)
}

// fromBuildInfo fills the values ldflags did not set from the module and
// VCS data embedded by `go build` / `go install`.
func fromBuildInfo(info *debug.BuildInfo) {
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" {
				Commit = s.Value
			}
		case "vcs.time":
			if BuildDate == "unknown" {
				BuildDate = s.Value
			}
		}
	}
}

// String returns a one-line version description.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, %s)", Version, shortCommit(), BuildDate, GoVersion)
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
