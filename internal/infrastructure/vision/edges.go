package vision

import (
	"context"
	"image"
	"math"
	"sort"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"

	"tamperscope/internal/domain/entity"
	"tamperscope/internal/domain/port"
)

// EdgeAnalyzer извлекает границы детектором Канни с адаптивными порогами.
type EdgeAnalyzer struct{}

// NewEdgeAnalyzer создаёт адаптивный детектор границ.
func NewEdgeAnalyzer() *EdgeAnalyzer {
	return &EdgeAnalyzer{}
}

// Kind возвращает вид анализа.
func (a *EdgeAnalyzer) Kind() entity.AnalysisKind {
	return entity.KindEdges
}

// Analyze сглаживает изображение, берёт медиану яркости и строит карту границ
// с порогами гистерезиса, выведенными из медианы.
func (a *EdgeAnalyzer) Analyze(ctx context.Context, img entity.Image) entity.Result {
	_ = ctx

	src, err := MatFromImage(img)
	if err != nil {
		return entity.Unavailable(entity.KindEdges, err)
	}
	defer src.Close()

	gray := grayFrom(src)
	defer gray.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	lower, upper := cannyThresholds(medianIntensity(blurred))

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, float32(lower), float32(upper))

	out, err := ImageFromMat(edges)
	if err != nil {
		return entity.Unavailable(entity.KindEdges, err)
	}
	return entity.OK(entity.KindEdges, out)
}

// medianIntensity возвращает медиану яркости одноканального изображения.
func medianIntensity(gray gocv.Mat) float64 {
	data := gray.ToBytes()
	samples := make([]float64, len(data))
	for i, v := range data {
		samples[i] = float64(v)
	}
	sort.Float64s(samples)
	return stat.Quantile(0.5, stat.LinInterp, samples, nil)
}

// cannyThresholds выводит пороги гистерезиса из медианы, зажимая их в [0, 255].
func cannyThresholds(median float64) (lower, upper int) {
	lower = int(math.Max(0, 0.7*median))
	upper = int(math.Min(255, 1.3*median))
	return lower, upper
}

var _ port.Analyzer = (*EdgeAnalyzer)(nil)
