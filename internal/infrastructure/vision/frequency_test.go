package vision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tamperscope/internal/domain/entity"
)

func TestFrequencyAnalyzer_OutputShape(t *testing.T) {
	result := NewFrequencyAnalyzer().Analyze(context.Background(), texturedImage(32, 24))

	require.True(t, result.Available())
	require.Equal(t, entity.KindFrequency, result.Kind)
	require.Equal(t, 32, result.Image.Width)
	require.Equal(t, 24, result.Image.Height)
	require.Equal(t, 1, result.Image.Channels)
}

func TestFrequencyAnalyzer_InvalidInputIsUnavailable(t *testing.T) {
	result := NewFrequencyAnalyzer().Analyze(context.Background(), entity.Image{})

	require.False(t, result.Available())
	require.ErrorIs(t, result.Err, entity.ErrInvalidImage)
}

func TestFFTShift_SwapsQuadrants(t *testing.T) {
	f := [][]complex128{
		{1, 2},
		{3, 4},
	}

	shifted := fftShift(f)

	require.Equal(t, complex128(4), shifted[0][0])
	require.Equal(t, complex128(3), shifted[0][1])
	require.Equal(t, complex128(2), shifted[1][0])
	require.Equal(t, complex128(1), shifted[1][1])
}

func TestDetailMagnitude(t *testing.T) {
	cH := [][]float64{{3, 0}}
	cV := [][]float64{{4, 0}}

	out := detailMagnitude(cH, cV)

	require.InDelta(t, 5.0, out[0][0], 1e-12)
	require.Zero(t, out[0][1])
}
