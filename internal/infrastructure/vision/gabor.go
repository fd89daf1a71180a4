package vision

import (
	"context"
	"errors"
	"image"
	"math"

	"gocv.io/x/gocv"

	"tamperscope/internal/domain/entity"
	"tamperscope/internal/domain/port"
)

var (
	// ErrEmptyResponse означает пустой отклик фильтра.
	ErrEmptyResponse = errors.New("empty filter response")
	// ErrFlatResponse означает вырожденный отклик без текстурного сигнала.
	ErrFlatResponse = errors.New("flat filter response")
)

const (
	defaultGaborFrequency = 0.6
	gaborKernelSize       = 9
)

// GaborAnalyzer выделяет текстурные аномалии величиной отклика фильтра Габора.
type GaborAnalyzer struct {
	Frequency float64
}

// NewGaborAnalyzer создаёт анализатор текстуры с заданной частотой фильтра.
func NewGaborAnalyzer(frequency float64) *GaborAnalyzer {
	if frequency <= 0 {
		frequency = defaultGaborFrequency
	}
	return &GaborAnalyzer{Frequency: frequency}
}

// Kind возвращает вид анализа.
func (a *GaborAnalyzer) Kind() entity.AnalysisKind {
	return entity.KindGabor
}

// Analyze считает величину комплексного отклика Габора и растягивает её в 8 бит.
func (a *GaborAnalyzer) Analyze(ctx context.Context, img entity.Image) entity.Result {
	_ = ctx

	src, err := MatFromImage(img)
	if err != nil {
		return entity.Unavailable(entity.KindGabor, err)
	}
	defer src.Close()

	gray := grayFrom(src)
	defer gray.Close()

	grayF := gocv.NewMat()
	defer grayF.Close()
	gray.ConvertTo(&grayF, gocv.MatTypeCV32F)

	magnitude, err := a.responseMagnitude(grayF)
	if err != nil {
		return entity.Unavailable(entity.KindGabor, err)
	}
	defer magnitude.Close()

	minVal, maxVal, _, _ := gocv.MinMaxLoc(magnitude)
	if minVal == maxVal {
		return entity.Unavailable(entity.KindGabor, ErrFlatResponse)
	}

	normalized := gocv.NewMat()
	defer normalized.Close()
	gocv.Normalize(magnitude, &normalized, 0, 255, gocv.NormMinMax)

	out8 := gocv.NewMat()
	defer out8.Close()
	normalized.ConvertTo(&out8, gocv.MatTypeCV8U)

	out, err := ImageFromMat(out8)
	if err != nil {
		return entity.Unavailable(entity.KindGabor, err)
	}
	return entity.OK(entity.KindGabor, out)
}

// responseMagnitude свёртывает изображение с действительным и мнимым ядрами Габора.
func (a *GaborAnalyzer) responseMagnitude(grayF gocv.Mat) (gocv.Mat, error) {
	// Длина волны и ширина гауссианы выводятся из частоты полосы фильтра.
	lambda := 1.0 / a.Frequency
	sigma := 0.56 * lambda
	ksize := image.Pt(gaborKernelSize, gaborKernelSize)

	kernelReal := gocv.GetGaborKernel(ksize, sigma, 0, lambda, 1, 0, gocv.MatTypeCV32F)
	defer kernelReal.Close()
	kernelImag := gocv.GetGaborKernel(ksize, sigma, 0, lambda, 1, math.Pi/2, gocv.MatTypeCV32F)
	defer kernelImag.Close()

	respReal := gocv.NewMat()
	defer respReal.Close()
	gocv.Filter2D(grayF, &respReal, gocv.MatTypeCV32F, kernelReal, image.Pt(-1, -1), 0, gocv.BorderDefault)

	respImag := gocv.NewMat()
	defer respImag.Close()
	gocv.Filter2D(grayF, &respImag, gocv.MatTypeCV32F, kernelImag, image.Pt(-1, -1), 0, gocv.BorderDefault)

	if respReal.Empty() || respImag.Empty() {
		return gocv.NewMat(), ErrEmptyResponse
	}

	magnitude := gocv.NewMat()
	gocv.Magnitude(respReal, respImag, &magnitude)
	if magnitude.Empty() {
		magnitude.Close()
		return gocv.NewMat(), ErrEmptyResponse
	}
	return magnitude, nil
}

var _ port.Analyzer = (*GaborAnalyzer)(nil)
