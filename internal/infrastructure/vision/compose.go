package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"tamperscope/internal/domain/entity"
	"tamperscope/internal/domain/port"
)

// Стиль подписи панели.
var annotationColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

const (
	annotationScale     = 0.7
	annotationThickness = 2
)

// ReportComposer складывает результаты анализов в подписанную сетку отчёта.
// Недоступные результаты заменяются чёрной панелью с пометкой, чтобы
// геометрия сетки не зависела от сбоев отдельных анализов.
type ReportComposer struct {
	Grid entity.GridLayout
}

// NewReportComposer создаёт сборщик отчёта с сеткой заданной формы.
func NewReportComposer(grid entity.GridLayout) *ReportComposer {
	return &ReportComposer{Grid: grid}
}

// Compose приводит панели к размеру первой доступной, подписывает каждую
// и склеивает их в сетку отчёта.
func (c *ReportComposer) Compose(ctx context.Context, results []entity.Result) (entity.Image, error) {
	_ = ctx

	if len(results) != c.Grid.Panels() {
		return entity.Image{}, fmt.Errorf("compose: got %d results, grid wants %d", len(results), c.Grid.Panels())
	}

	refW, refH, err := referenceSize(results)
	if err != nil {
		return entity.Image{}, err
	}

	panels := make([]gocv.Mat, 0, len(results))
	defer func() {
		for i := range panels {
			panels[i].Close()
		}
	}()

	for _, result := range results {
		panel, err := c.panel(result, refW, refH)
		if err != nil {
			return entity.Image{}, fmt.Errorf("compose %s panel: %w", result.Kind, err)
		}
		panels = append(panels, panel)
	}

	grid, err := c.tile(panels)
	if err != nil {
		return entity.Image{}, err
	}
	defer grid.Close()

	return ImageFromMat(grid)
}

// referenceSize берёт размер первой доступной панели за канонический размер сетки.
func referenceSize(results []entity.Result) (w, h int, err error) {
	for _, r := range results {
		if r.Available() {
			return r.Image.Width, r.Image.Height, nil
		}
	}
	return 0, 0, errors.New("compose: no available panels")
}

// panel готовит одну подписанную панель отчёта.
func (c *ReportComposer) panel(result entity.Result, refW, refH int) (gocv.Mat, error) {
	if !result.Available() {
		placeholder := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), refH, refW, gocv.MatTypeCV8UC3)
		annotate(&placeholder, result.Kind.Title()+": unavailable")
		return placeholder, nil
	}

	mat, err := MatFromImage(result.Image)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer mat.Close()

	bgr := bgrFrom(mat)
	defer bgr.Close()

	var panel gocv.Mat
	if bgr.Cols() != refW || bgr.Rows() != refH {
		panel = gocv.NewMat()
		gocv.Resize(bgr, &panel, image.Pt(refW, refH), 0, 0, gocv.InterpolationLinear)
	} else {
		panel = bgr.Clone()
	}

	annotate(&panel, result.Kind.Caption())
	return panel, nil
}

// annotate печатает подпись в левом верхнем углу панели.
func annotate(panel *gocv.Mat, text string) {
	gocv.PutText(panel, text, image.Pt(10, 30), gocv.FontHersheySimplex, annotationScale, annotationColor, annotationThickness)
}

// tile склеивает панели в строки, а строки в итоговый буфер.
func (c *ReportComposer) tile(panels []gocv.Mat) (gocv.Mat, error) {
	for i := 1; i < len(panels); i++ {
		if panels[i].Cols() != panels[0].Cols() || panels[i].Rows() != panels[0].Rows() {
			return gocv.NewMat(), fmt.Errorf("compose: panel %d is %dx%d, want %dx%d",
				i, panels[i].Cols(), panels[i].Rows(), panels[0].Cols(), panels[0].Rows())
		}
	}

	rows := make([]gocv.Mat, 0, c.Grid.Rows)
	defer func() {
		for i := range rows {
			rows[i].Close()
		}
	}()

	for r := 0; r < c.Grid.Rows; r++ {
		row := panels[r*c.Grid.Cols].Clone()
		for col := 1; col < c.Grid.Cols; col++ {
			joined := gocv.NewMat()
			gocv.Hconcat(row, panels[r*c.Grid.Cols+col], &joined)
			row.Close()
			row = joined
		}
		rows = append(rows, row)
	}

	grid := rows[0].Clone()
	for r := 1; r < c.Grid.Rows; r++ {
		joined := gocv.NewMat()
		gocv.Vconcat(grid, rows[r], &joined)
		grid.Close()
		grid = joined
	}
	return grid, nil
}

var _ port.Composer = (*ReportComposer)(nil)
