package domain

import (
	"errors"
	"math/bits"

	"go.trai.ch/zerr"
)

// PartitionAlignment leaves the first MiB of every disk to firmware and boot code.
const PartitionAlignment = 1 << 20

// ErrDiskOvercommitted is returned when percentage partitions on one disk add up past 100.
var ErrDiskOvercommitted = zerr.New("partitions exceed 100% of the disk")

// DiskCursor is the start of the next partition on a disk: a byte offset
// plus a percentage of a disk size that is only known on the machine being installed.
type DiskCursor struct {
	Bytes   uint64
	Percent uint64
}

// NewDiskCursor returns a cursor at the first aligned offset.
func NewDiskCursor() DiskCursor {
	return DiskCursor{Bytes: PartitionAlignment}
}

// Advance moves the cursor past a partition of the given size.
// The cursor is unchanged when an error is returned.
func (c *DiskCursor) Advance(size Size) error {
	switch size.Type {
	case SizePercent:
		if size.Value > 100-c.Percent {
			return Tag(ErrDiskOvercommitted, "percent", c.Percent+size.Value)
		}
		c.Percent += size.Value
	case SizeBytes:
		sum, carry := bits.Add64(c.Bytes, size.Value, 0)
		if carry != 0 {
			return Tag(ErrSizeTooLarge, "offset", c.Bytes)
		}
		c.Bytes = sum
	}
	return nil
}

// CursorErrorMessage returns the user-facing text for an Advance error.
func CursorErrorMessage(err error) string {
	if errors.Is(err, ErrDiskOvercommitted) {
		return ErrDiskOvercommitted.Error()
	}
	return SizeErrorMessage(err)
}
