// Package buildinfo carries the version stamped into sensorwatch binaries:
//
//	go build -ldflags "-X sensorwatch/internal/buildinfo.Version=v1.2.0 \
//	    -X sensorwatch/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

import "strings"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func stamped(v string) bool { return v != "" && v != "dev" && v != "unknown" }

// Short names the build in one word: the release version when stamped,
// otherwise the commit, otherwise "dev". It fits the window title.
func Short() string {
	switch {
	case stamped(Version):
		return Version
	case stamped(Commit):
		return Commit
	}
	return "dev"
}

// String is Short plus whatever commit and date were stamped, for the boot
// log and the feed server banner.
func String() string {
	var extra []string
	if stamped(Version) && stamped(Commit) {
		extra = append(extra, Commit)
	}
	if stamped(Date) {
		extra = append(extra, Date)
	}
	if len(extra) == 0 {
		return Short()
	}
	return Short() + " (" + strings.Join(extra, ", ") + ")"
}
