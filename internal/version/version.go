package version

import "runtime/debug"

// Variables set via ldflags at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	if Version != "dev" {
		return
	}
	// `go install module@version` builds carry the module version instead
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
}

// Full returns full version information including commit and build date
func Full() string {
	return Version + " (" + GitCommit + ") built " + BuildDate
}
