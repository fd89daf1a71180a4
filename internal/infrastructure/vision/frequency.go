package vision

import (
	"context"
	"image"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gocv.io/x/gocv"

	"tamperscope/internal/domain/entity"
	"tamperscope/internal/domain/port"
)

// FrequencyAnalyzer совмещает лог-спектр Фурье с величиной вейвлет-деталей.
type FrequencyAnalyzer struct{}

// NewFrequencyAnalyzer создаёт частотно-вейвлетный анализатор.
func NewFrequencyAnalyzer() *FrequencyAnalyzer {
	return &FrequencyAnalyzer{}
}

// Kind возвращает вид анализа.
func (a *FrequencyAnalyzer) Kind() entity.AnalysisKind {
	return entity.KindFrequency
}

// Analyze строит центрированный лог-спектр, поднимает детальные суб-полосы
// Хаара до его размера и смешивает оба слоя поровну.
func (a *FrequencyAnalyzer) Analyze(ctx context.Context, img entity.Image) entity.Result {
	_ = ctx

	src, err := MatFromImage(img)
	if err != nil {
		return entity.Unavailable(entity.KindFrequency, err)
	}
	defer src.Close()

	gray := grayFrom(src)
	defer gray.Close()

	values := grayFloats(gray)

	spectrum := matFromFloats(logSpectrum(values))
	defer spectrum.Close()

	_, cH, cV, _ := dwt2Haar(values)
	detail := matFromFloats(detailMagnitude(cH, cV))
	defer detail.Close()

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(detail, &resized, image.Pt(spectrum.Cols(), spectrum.Rows()), 0, 0, gocv.InterpolationLinear)

	blended := gocv.NewMat()
	defer blended.Close()
	gocv.AddWeighted(spectrum, 0.5, resized, 0.5, 0, &blended)

	out8 := gocv.NewMat()
	defer out8.Close()
	gocv.ConvertScaleAbs(blended, &out8, 1, 0)

	out, err := ImageFromMat(out8)
	if err != nil {
		return entity.Unavailable(entity.KindFrequency, err)
	}
	return entity.OK(entity.KindFrequency, out)
}

// logSpectrum возвращает центрированный лог-спектр двумерного ДПФ.
func logSpectrum(values [][]float64) [][]float64 {
	shifted := fftShift(fft.FFT2Real(values))

	rows := len(shifted)
	cols := len(shifted[0])
	out := make([][]float64, rows)
	for y := 0; y < rows; y++ {
		row := make([]float64, cols)
		for x := 0; x < cols; x++ {
			row[x] = math.Log(cmplx.Abs(shifted[y][x]))
		}
		out[y] = row
	}
	return out
}

// fftShift переносит нулевую частоту в центр спектра.
func fftShift(f [][]complex128) [][]complex128 {
	rows := len(f)
	cols := len(f[0])

	out := make([][]complex128, rows)
	for y := 0; y < rows; y++ {
		row := make([]complex128, cols)
		srcY := (y + (rows+1)/2) % rows
		for x := 0; x < cols; x++ {
			row[x] = f[srcY][(x+(cols+1)/2)%cols]
		}
		out[y] = row
	}
	return out
}

// detailMagnitude совмещает горизонтальную и вертикальную суб-полосы деталей.
func detailMagnitude(cH, cV [][]float64) [][]float64 {
	rows := len(cH)
	cols := len(cH[0])

	out := make([][]float64, rows)
	for y := 0; y < rows; y++ {
		row := make([]float64, cols)
		for x := 0; x < cols; x++ {
			row[x] = math.Hypot(cH[y][x], cV[y][x])
		}
		out[y] = row
	}
	return out
}

var _ port.Analyzer = (*FrequencyAnalyzer)(nil)
