package vision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"

	"tamperscope/internal/domain/entity"
)

func TestELAAnalyzer_OutputShape(t *testing.T) {
	result := NewELAAnalyzer().Analyze(context.Background(), texturedImage(40, 30))

	require.True(t, result.Available())
	require.Equal(t, entity.KindELA, result.Kind)
	require.Equal(t, 40, result.Image.Width)
	require.Equal(t, 30, result.Image.Height)
	require.Equal(t, 3, result.Image.Channels)
}

func TestELAAnalyzer_InvalidInputIsUnavailable(t *testing.T) {
	result := NewELAAnalyzer().Analyze(context.Background(), entity.Image{})

	require.False(t, result.Available())
	require.ErrorIs(t, result.Err, entity.ErrInvalidImage)
}

func TestELAAnalyzer_FlatInputIsNearDark(t *testing.T) {
	mat, err := MatFromImage(solidImage(64, 64, 3, 180))
	require.NoError(t, err)
	defer mat.Close()

	composite, err := amplifiedDifference(mat)
	require.NoError(t, err)
	defer composite.Close()

	require.Less(t, meanIntensity(composite), 40.0)
}

// Чем выше качество предыдущего сохранения, тем меньше средняя разница ELA.
func TestELAAnalyzer_MonotonicSensitivityToPriorCompression(t *testing.T) {
	src, err := MatFromImage(texturedImage(64, 64))
	require.NoError(t, err)
	defer src.Close()

	saved95, err := recompress(src, 95)
	require.NoError(t, err)
	defer saved95.Close()

	saved50, err := recompress(src, 50)
	require.NoError(t, err)
	defer saved50.Close()

	diff95, err := amplifiedDifference(saved95)
	require.NoError(t, err)
	defer diff95.Close()

	diff50, err := amplifiedDifference(saved50)
	require.NoError(t, err)
	defer diff50.Close()

	require.Less(t, meanIntensity(diff95), meanIntensity(diff50))
}

func meanIntensity(gray gocv.Mat) float64 {
	data := gray.ToBytes()
	samples := make([]float64, len(data))
	for i, v := range data {
		samples[i] = float64(v)
	}
	return stat.Mean(samples, nil)
}
