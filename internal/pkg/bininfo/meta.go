// Values in this file are injected at build time through -ldflags, e.g.
// -X mediawatch.dev/backend/internal/pkg/bininfo.Version=v1.2.0
// Keep the variable names stable: the release pipeline refers to them.

package bininfo

var (
	// Version is the SemVer version of the binary.
	// Git commit is appended, if available, separated by a plus sign [+].
	Version = "v0.0.0"

	// BuildTime is the time at which the application was built.
	BuildTime = "1970-01-01T00:00:00Z"
)
