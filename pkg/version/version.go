// Package version exposes the build version of pybites-search.
package version

// version is set at build time:
//
//	go build -ldflags "-X github.com/rshade/pybites-search/pkg/version.version=v1.2.3"
var version = "dev" //nolint:gochecknoglobals // set via ldflags

// GetVersion returns the version string embedded at build time, or "dev".
func GetVersion() string {
	return version
}
