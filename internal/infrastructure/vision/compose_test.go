package vision

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tamperscope/internal/domain/entity"
)

func sixResults() []entity.Result {
	img := texturedImage(40, 30)
	return []entity.Result{
		entity.OK(entity.KindOriginal, img),
		entity.OK(entity.KindELA, img.Clone()),
		entity.OK(entity.KindGabor, solidImage(40, 30, 1, 100)),
		entity.OK(entity.KindEdges, solidImage(40, 30, 1, 0)),
		entity.OK(entity.KindFrequency, solidImage(40, 30, 1, 50)),
		entity.OK(entity.KindTexture, solidImage(40, 30, 1, 128)),
	}
}

func TestReportComposer_GridDimensions(t *testing.T) {
	composer := NewReportComposer(entity.GridLayout{Rows: 2, Cols: 3})

	report, err := composer.Compose(context.Background(), sixResults())
	require.NoError(t, err)
	require.Equal(t, 3*40, report.Width)
	require.Equal(t, 2*30, report.Height)
	require.Equal(t, 3, report.Channels)
}

func TestReportComposer_UnavailablePanelsKeepGeometry(t *testing.T) {
	composer := NewReportComposer(entity.GridLayout{Rows: 2, Cols: 3})

	results := sixResults()
	results[2] = entity.Unavailable(entity.KindGabor, errors.New("flat response"))
	results[4] = entity.Unavailable(entity.KindFrequency, errors.New("codec error"))

	report, err := composer.Compose(context.Background(), results)
	require.NoError(t, err)
	require.Equal(t, 3*40, report.Width)
	require.Equal(t, 2*30, report.Height)
}

func TestReportComposer_ResizesPanelsToReference(t *testing.T) {
	composer := NewReportComposer(entity.GridLayout{Rows: 2, Cols: 3})

	results := sixResults()
	// Вейвлет-панель приходит в половинном разрешении.
	results[4] = entity.OK(entity.KindFrequency, solidImage(20, 15, 1, 50))

	report, err := composer.Compose(context.Background(), results)
	require.NoError(t, err)
	require.Equal(t, 3*40, report.Width)
	require.Equal(t, 2*30, report.Height)
}

func TestReportComposer_WrongResultCount(t *testing.T) {
	composer := NewReportComposer(entity.GridLayout{Rows: 2, Cols: 3})

	_, err := composer.Compose(context.Background(), sixResults()[:4])
	require.Error(t, err)
}

func TestReportComposer_AllUnavailable(t *testing.T) {
	composer := NewReportComposer(entity.GridLayout{Rows: 2, Cols: 3})

	results := make([]entity.Result, 6)
	for i, kind := range []entity.AnalysisKind{
		entity.KindOriginal, entity.KindELA, entity.KindGabor,
		entity.KindEdges, entity.KindFrequency, entity.KindTexture,
	} {
		results[i] = entity.Unavailable(kind, errors.New("unavailable"))
	}

	_, err := composer.Compose(context.Background(), results)
	require.Error(t, err)
}
