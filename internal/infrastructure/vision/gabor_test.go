package vision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tamperscope/internal/domain/entity"
)

func TestGaborAnalyzer_FlatInputIsUnavailable(t *testing.T) {
	result := NewGaborAnalyzer(0.6).Analyze(context.Background(), solidImage(32, 32, 3, 200))

	require.False(t, result.Available())
	require.ErrorIs(t, result.Err, ErrFlatResponse)
}

func TestGaborAnalyzer_OutputShape(t *testing.T) {
	result := NewGaborAnalyzer(0.6).Analyze(context.Background(), texturedImage(48, 36))

	require.True(t, result.Available())
	require.Equal(t, entity.KindGabor, result.Kind)
	require.Equal(t, 48, result.Image.Width)
	require.Equal(t, 36, result.Image.Height)
	require.Equal(t, 1, result.Image.Channels)
}

func TestGaborAnalyzer_InvalidInputIsUnavailable(t *testing.T) {
	result := NewGaborAnalyzer(0.6).Analyze(context.Background(), entity.Image{})

	require.False(t, result.Available())
	require.ErrorIs(t, result.Err, entity.ErrInvalidImage)
}

func TestNewGaborAnalyzer_DefaultFrequency(t *testing.T) {
	require.Equal(t, defaultGaborFrequency, NewGaborAnalyzer(0).Frequency)
	require.Equal(t, 0.4, NewGaborAnalyzer(0.4).Frequency)
}
