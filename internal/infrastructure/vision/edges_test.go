package vision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tamperscope/internal/domain/entity"
)

func TestCannyThresholds_WithinRange(t *testing.T) {
	for _, median := range []float64{0, 1, 42.5, 127, 196, 255} {
		lower, upper := cannyThresholds(median)
		require.GreaterOrEqual(t, lower, 0)
		require.LessOrEqual(t, lower, upper)
		require.LessOrEqual(t, upper, 255)
	}
}

func TestCannyThresholds_MedianScaling(t *testing.T) {
	lower, upper := cannyThresholds(100)
	require.Equal(t, 70, lower)
	require.Equal(t, 130, upper)

	lower, upper = cannyThresholds(250)
	require.Equal(t, 175, lower)
	require.Equal(t, 255, upper)
}

func TestEdgeAnalyzer_OutputShape(t *testing.T) {
	result := NewEdgeAnalyzer().Analyze(context.Background(), texturedImage(40, 30))

	require.True(t, result.Available())
	require.Equal(t, entity.KindEdges, result.Kind)
	require.Equal(t, 40, result.Image.Width)
	require.Equal(t, 30, result.Image.Height)
	require.Equal(t, 1, result.Image.Channels)
}

func TestEdgeAnalyzer_InvalidInput(t *testing.T) {
	result := NewEdgeAnalyzer().Analyze(context.Background(), entity.Image{})

	require.False(t, result.Available())
	require.ErrorIs(t, result.Err, entity.ErrInvalidImage)
}
