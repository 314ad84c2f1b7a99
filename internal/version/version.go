// Package version holds build metadata injected via ldflags.
package version

var (
	Version = "dev"
	Commit  = "unknown"
)

// String renders the build identity for startup logs.
func String() string {
	return Version + " (" + Commit + ")"
}
