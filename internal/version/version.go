package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Name of the application
	AppName = "gsync"

	// Version of the application
	Version = "0.2.0-dev"

	// Git commit hash of the application
	Revision = "HEAD"
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			rev := s.Value
			if len(rev) > 12 {
				rev = rev[:12]
			}
			Revision = rev
		}
	}
}

// Detailed returns a human readable version string.
func Detailed() string {
	return fmt.Sprintf("%s %s (%s) %s/%s", AppName, Version, Revision, runtime.GOOS, runtime.GOARCH)
}
