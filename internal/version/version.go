// Package version provides build information for the famicore emulator.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// String returns a one-line version description.
func String() string {
	commit := GitCommit
	if commit == "unknown" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" {
					commit = setting.Value
				}
			}
		}
	}
	if len(commit) >= 7 {
		commit = commit[:7]
	}

	s := fmt.Sprintf("famicore %s", Version)
	if commit != "unknown" {
		s += fmt.Sprintf(" (%s)", commit)
	}
	return s + fmt.Sprintf(" %s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
