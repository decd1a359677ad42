// Package version exposes the application version, overridable at build
// time via -ldflags "-X github.com/findesk/backoffice/internal/version.Version=...".
package version

// Version is the application version string.
var Version = "dev"
