package vision

import (
	"context"
	"math"
	"math/bits"

	"gonum.org/v1/gonum/floats"

	"tamperscope/internal/domain/entity"
	"tamperscope/internal/domain/port"
)

const (
	lbpRadius = 3.0
	lbpPoints = 24
	lbpMask   = (1 << lbpPoints) - 1

	// Уровень серого для вырожденной карты без текстурного контраста.
	lbpFlatGray = 128
)

// TextureAnalyzer строит карту равномерных локальных бинарных шаблонов.
type TextureAnalyzer struct{}

// NewTextureAnalyzer создаёт анализатор локальной текстуры.
func NewTextureAnalyzer() *TextureAnalyzer {
	return &TextureAnalyzer{}
}

// Kind возвращает вид анализа.
func (a *TextureAnalyzer) Kind() entity.AnalysisKind {
	return entity.KindTexture
}

// Analyze размечает каждый пиксель меткой равномерного шаблона
// и растягивает карту меток в 8 бит.
func (a *TextureAnalyzer) Analyze(ctx context.Context, img entity.Image) entity.Result {
	_ = ctx

	src, err := MatFromImage(img)
	if err != nil {
		return entity.Unavailable(entity.KindTexture, err)
	}
	defer src.Close()

	gray := grayFrom(src)
	defer gray.Close()

	labels := uniformPatterns(grayFloats(gray))

	minVal := floats.Min(labels)
	maxVal := floats.Max(labels)

	pix := make([]byte, len(labels))
	if minVal == maxVal {
		for i := range pix {
			pix[i] = lbpFlatGray
		}
	} else {
		scale := 255 / (maxVal - minVal)
		for i, v := range labels {
			stretched := (v - minVal) * scale
			if stretched > 255 {
				stretched = 255
			}
			pix[i] = uint8(stretched)
		}
	}

	out := entity.Image{
		Width:    gray.Cols(),
		Height:   gray.Rows(),
		Channels: 1,
		Pix:      pix,
	}
	return entity.OK(entity.KindTexture, out)
}

// uniformPatterns считает метку равномерного шаблона для каждого пикселя:
// lbpPoints точек выборки на окружности радиуса lbpRadius сравниваются
// с центром, шаблоны не более чем с двумя переходами 0/1 по кругу получают
// метку-число единиц, остальные lbpPoints+1.
func uniformPatterns(values [][]float64) []float64 {
	rows := len(values)
	cols := len(values[0])

	offY := make([]float64, lbpPoints)
	offX := make([]float64, lbpPoints)
	for p := 0; p < lbpPoints; p++ {
		angle := 2 * math.Pi * float64(p) / lbpPoints
		offY[p] = -lbpRadius * math.Sin(angle)
		offX[p] = lbpRadius * math.Cos(angle)
	}

	labels := make([]float64, 0, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			center := values[y][x]
			var pattern uint32
			for p := 0; p < lbpPoints; p++ {
				sample := bilinear(values, float64(y)+offY[p], float64(x)+offX[p])
				if sample >= center {
					pattern |= 1 << uint(p)
				}
			}
			labels = append(labels, uniformLabel(pattern))
		}
	}
	return labels
}

// uniformLabel сводит битовый шаблон к метке равномерного LBP.
func uniformLabel(pattern uint32) float64 {
	rotated := ((pattern << 1) | (pattern >> (lbpPoints - 1))) & lbpMask
	transitions := bits.OnesCount32((pattern ^ rotated) & lbpMask)
	if transitions <= 2 {
		return float64(bits.OnesCount32(pattern & lbpMask))
	}
	return float64(lbpPoints + 1)
}

// bilinear интерполирует значение в дробных координатах, зажимая выборку у границ.
func bilinear(values [][]float64, y, x float64) float64 {
	rows := len(values)
	cols := len(values[0])

	y0 := int(math.Floor(y))
	x0 := int(math.Floor(x))
	fy := y - float64(y0)
	fx := x - float64(x0)

	v00 := values[clampIdx(y0, rows)][clampIdx(x0, cols)]
	v01 := values[clampIdx(y0, rows)][clampIdx(x0+1, cols)]
	v10 := values[clampIdx(y0+1, rows)][clampIdx(x0, cols)]
	v11 := values[clampIdx(y0+1, rows)][clampIdx(x0+1, cols)]

	top := v00 + (v01-v00)*fx
	bottom := v10 + (v11-v10)*fx
	return top + (bottom-top)*fy
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

var _ port.Analyzer = (*TextureAnalyzer)(nil)
