package domain_test

import (
	"testing"

	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSize(t *testing.T, in string) domain.Size {
	t.Helper()
	s, err := domain.ParseSize(in)
	require.NoError(t, err)
	return s
}

func TestDiskCursor_Advance(t *testing.T) {
	c := domain.NewDiskCursor()
	require.NoError(t, c.Advance(mustSize(t, "100M")))
	require.NoError(t, c.Advance(mustSize(t, "60%")))
	require.NoError(t, c.Advance(mustSize(t, "fill")))

	assert.Equal(t, domain.DiskCursor{Bytes: 105906176, Percent: 60}, c)
}

func TestDiskCursor_ByteOverflow(t *testing.T) {
	c := domain.NewDiskCursor()
	require.NoError(t, c.Advance(mustSize(t, "16777215T")))
	before := c

	err := c.Advance(mustSize(t, "16777215T"))
	require.ErrorIs(t, err, domain.ErrSizeTooLarge)
	assert.Equal(t, "value too large", domain.CursorErrorMessage(err))
	assert.Equal(t, before, c)
}

func TestDiskCursor_PercentOverCommit(t *testing.T) {
	c := domain.NewDiskCursor()
	require.NoError(t, c.Advance(mustSize(t, "60%")))
	require.NoError(t, c.Advance(mustSize(t, "40%")))

	err := c.Advance(mustSize(t, "1%"))
	require.ErrorIs(t, err, domain.ErrDiskOvercommitted)
	assert.Equal(t, "partitions exceed 100% of the disk", domain.CursorErrorMessage(err))
	assert.Equal(t, uint64(100), c.Percent)
}
