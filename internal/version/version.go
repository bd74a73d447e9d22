// Package version holds the build identity of the hybrid binary. It is also
// the fallback version of the about document when no manifest is configured.
package version

import "runtime/debug"

// Set with -ldflags "-X hybrid/internal/version.Version=..." at release time.
var (
	Version   = "0.4.0"
	Commit    = ""
	BuildDate = ""
)

// commit returns Commit, or the VCS revision the toolchain stamped into
// the binary when Commit was not set.
func commit() string {
	if Commit != "" {
		return Commit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

// Info returns the version with a short commit suffix when one is known.
func Info() string {
	if c := commit(); len(c) >= 7 {
		return Version + " (" + c[:7] + ")"
	}
	return Version
}

// Full is the multi-line text printed by --version.
func Full() string {
	out := "hybrid version " + Version + "\n"
	if c := commit(); c != "" {
		out += "commit " + c + "\n"
	}
	if BuildDate != "" {
		out += "built " + BuildDate + "\n"
	}
	return out
}
