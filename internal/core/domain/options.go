package domain

import (
	"runtime"
	"time"
)

// DefaultTargetRoot is where the target system is mounted during installation.
const DefaultTargetRoot = "/target"

// DupScope selects how far pkginstall duplicate detection reaches.
type DupScope int

const (
	// DupScopeScript flags a package repeated anywhere in the script.
	DupScopeScript DupScope = iota
	// DupScopeLine flags a package repeated on the same line only.
	DupScopeLine
)

// ParseDupScope maps a settings value to a DupScope.
func ParseDupScope(s string) (DupScope, bool) {
	switch s {
	case "", "script":
		return DupScopeScript, true
	case "line":
		return DupScopeLine, true
	}
	return DupScopeScript, false
}

func (s DupScope) String() string {
	if s == DupScopeLine {
		return "line"
	}
	return "script"
}

// Options is the resolved run configuration handed to the engine.
type Options struct {
	// KeepGoing accumulates every diagnostic instead of stopping at the first error.
	KeepGoing bool
	// Strict escalates warnings to errors at the end of validation.
	Strict bool
	// InstallEnvironment enables checks against the real host (block devices).
	InstallEnvironment bool
	// Workers above 1 enables parallel validation.
	Workers int
	// TargetRoot is prefixed to every path written on the target system.
	TargetRoot string
	// Arch is the fallback CPU architecture when the script has no arch key.
	Arch string
	// PkgDupScope selects the pkginstall duplicate detection scope.
	PkgDupScope DupScope
	// Repositories replaces the built-in repository defaults when non-empty.
	Repositories []string
	// SigningKeys replaces the built-in signing key defaults when non-empty.
	SigningKeys []string
	// Now is the clock used for time-dependent output. Defaults to time.Now.
	Now func() time.Time
}

// DefaultRepositories are used when a script names no repository.
var DefaultRepositories = []string{"https://depot.originull.org/system"}

// DefaultSigningKeys are trusted when a script names no signing key.
var DefaultSigningKeys = []string{"/etc/apk/keys/packages@originull.org.pub"}

// DefaultOptions returns options with the built-in defaults filled in.
func DefaultOptions() Options {
	return Options{
		Workers:    1,
		TargetRoot: DefaultTargetRoot,
		Arch:       HostArch(),
		Now:        time.Now,
	}
}

// Normalize fills zero values with defaults.
func (o Options) Normalize() Options {
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.TargetRoot == "" {
		o.TargetRoot = DefaultTargetRoot
	}
	if o.Arch == "" {
		o.Arch = HostArch()
	}
	if len(o.Repositories) == 0 {
		o.Repositories = DefaultRepositories
	}
	if len(o.SigningKeys) == 0 {
		o.SigningKeys = DefaultSigningKeys
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// HostArch maps the Go architecture name to the distribution's name for it.
func HostArch() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	default:
		return runtime.GOARCH
	}
}
