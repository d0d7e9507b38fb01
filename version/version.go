// Package version exposes build information, stamped at link time with
// -ldflags "-X github.com/farcloser/dichecker/version.version=... -X github.com/farcloser/dichecker/version.commit=...".
package version

//nolint:gochecknoglobals // set by the linker
var (
	name    = "di-checker"
	version = "dev"
	commit  = "unknown"
)

// Name returns the binary name.
func Name() string {
	return name
}

// Version returns the release version.
func Version() string {
	return version
}

// Commit returns the VCS revision the binary was built from.
func Commit() string {
	return commit
}
