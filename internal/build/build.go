// Package build holds build-time information.
package build

// Version is the toolchain version.
// It defaults to "dev" and can be overwritten by linker flags.
var Version = "dev"

// Commit is the VCS revision the binaries were built from.
var Commit = "none"

// Date is the build timestamp.
var Date = "unknown"
