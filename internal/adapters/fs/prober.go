// Package fs inspects the host filesystem.
package fs

import (
	"errors"
	"fmt"
	"os"

	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/kitsnotes/hollywood/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sys/unix"
)

var (
	_ ports.DeviceProber = (*Prober)(nil)
	_ ports.OwnerLookup  = (*Prober)(nil)
)

// Prober implements ports.DeviceProber and ports.OwnerLookup with stat(2).
type Prober struct{}

// NewProber creates a new Prober.
func NewProber() *Prober {
	return &Prober{}
}

// Exists reports whether path exists without following a final symlink.
func (p *Prober) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
}

// IsBlockDevice reports whether path resolves to a block special file.
func (p *Prober) IsBlockDevice(path string) (bool, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		if errors.Is(err, unix.ENOENT) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}
	return st.Mode&unix.S_IFMT == unix.S_IFBLK, nil
}

// Owner returns the numeric user ID owning path.
func (p *Prober) Owner(path string) (uint32, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, zerr.With(zerr.Wrap(fmt.Errorf("%w: %w", domain.ErrOwnerLookupFailed, err), ""), "path", path)
	}
	return st.Uid, nil
}
