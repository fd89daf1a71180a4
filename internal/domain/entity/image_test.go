package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImage_Validate(t *testing.T) {
	img := Image{Width: 2, Height: 2, Channels: 3, Pix: make([]byte, 12)}
	require.NoError(t, img.Validate())

	bad := Image{Width: 0, Height: 2, Channels: 3, Pix: nil}
	require.ErrorIs(t, bad.Validate(), ErrInvalidImage)

	bad = Image{Width: 2, Height: 2, Channels: 2, Pix: make([]byte, 8)}
	require.ErrorIs(t, bad.Validate(), ErrInvalidImage)

	bad = Image{Width: 2, Height: 2, Channels: 1, Pix: make([]byte, 3)}
	require.ErrorIs(t, bad.Validate(), ErrInvalidImage)
}

func TestImage_CloneIsIndependent(t *testing.T) {
	img := Image{Width: 2, Height: 1, Channels: 1, Pix: []byte{10, 20}}

	clone := img.Clone()
	clone.Pix[0] = 99

	require.Equal(t, byte(10), img.Pix[0])
	require.Equal(t, img.Width, clone.Width)
	require.Equal(t, img.Height, clone.Height)
	require.Equal(t, img.Channels, clone.Channels)
}
