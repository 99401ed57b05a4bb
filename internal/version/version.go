// Where: internal/version/version.go
// What: Version information retrieval.
// Why: Report a release tag when installed via go install, or the VCS revision for local builds.
package version

import (
	"runtime/debug"
)

// Version may be set at link time with -ldflags "-X .../internal/version.Version=v1.2.3".
var Version = ""

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns, in order of preference: the link-time Version, the
// module version recorded by go install, the short VCS revision (with a
// "(dirty)" suffix for modified trees), or "dev".
func GetVersion() string {
	if Version != "" {
		return Version
	}
	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	revision, modified := "", false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	switch {
	case revision == "":
		return "dev"
	case modified:
		return revision + " (dirty)"
	default:
		return revision
	}
}
