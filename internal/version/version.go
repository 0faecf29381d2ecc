// Package version carries build identification stamped in via -ldflags.
package version

var (
	// Version is the current release version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String renders the full build identification.
func String() string {
	return Version + " (" + GitSHA + ", built " + BuildTime + ")"
}
