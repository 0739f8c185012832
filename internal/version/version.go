// Package version exposes build metadata.
package version

// Version is the application version, overridden at build time with
// -ldflags "-X github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/version.Version=..."
var Version = "dev"
