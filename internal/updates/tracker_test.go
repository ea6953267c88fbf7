package updates

import (
	"image"
	"testing"

	"github.com/atomicstack/inkshell/internal/framebuffer"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLookup(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Register(1, image.Rect(0, 0, 10, 10)))
	require.NoError(t, tr.Register(2, image.Rect(20, 20, 30, 30)))
	require.Equal(t, 2, tr.Len())

	entries := tr.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, framebuffer.Token(2), entries[1].Token)
	require.Equal(t, image.Rect(20, 20, 30, 30), entries[1].Rect)
}

func TestRegisterRejectsOutstandingToken(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Register(7, image.Rect(0, 0, 1, 1)))
	require.ErrorIs(t, tr.Register(7, image.Rect(0, 0, 2, 2)), ErrDuplicateToken)

	require.True(t, tr.Forget(7))
	require.NoError(t, tr.Register(7, image.Rect(0, 0, 2, 2)))
}

func TestOverlappingKeepsRegistrationOrder(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Register(3, image.Rect(0, 0, 100, 100)))
	require.NoError(t, tr.Register(1, image.Rect(200, 200, 300, 300)))
	require.NoError(t, tr.Register(2, image.Rect(50, 50, 60, 60)))

	got := tr.Overlapping(image.Rect(40, 40, 70, 70))
	require.Equal(t, []Entry{
		{Token: 3, Rect: image.Rect(0, 0, 100, 100)},
		{Token: 2, Rect: image.Rect(50, 50, 60, 60)},
	}, got)
}

func TestForgetUnknownToken(t *testing.T) {
	tr := New()
	require.False(t, tr.Forget(framebuffer.Token(9)))
	require.Empty(t, tr.Entries())
}
