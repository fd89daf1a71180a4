package vision

import (
	"context"
	"fmt"

	"gocv.io/x/gocv"

	"tamperscope/internal/domain/entity"
	"tamperscope/internal/domain/port"
)

// Лестница качеств повторного сжатия для анализа уровня ошибок.
var elaQualities = []int{75, 85, 95}

// Коэффициент усиления разницы перед раскраской.
const elaGain = 20

// ELAAnalyzer выявляет неоднородности истории сжатия повторным JPEG-кодированием.
type ELAAnalyzer struct{}

// NewELAAnalyzer создаёт анализатор уровня ошибок сжатия.
func NewELAAnalyzer() *ELAAnalyzer {
	return &ELAAnalyzer{}
}

// Kind возвращает вид анализа.
func (a *ELAAnalyzer) Kind() entity.AnalysisKind {
	return entity.KindELA
}

// Analyze строит композит усиленных разниц с повторно сжатыми копиями
// и красит его картой jet.
func (a *ELAAnalyzer) Analyze(ctx context.Context, img entity.Image) entity.Result {
	_ = ctx

	src, err := MatFromImage(img)
	if err != nil {
		return entity.Unavailable(entity.KindELA, err)
	}
	defer src.Close()

	bgr := bgrFrom(src)
	defer bgr.Close()

	composite, err := amplifiedDifference(bgr)
	if err != nil {
		return entity.Unavailable(entity.KindELA, err)
	}
	defer composite.Close()

	colored := gocv.NewMat()
	defer colored.Close()
	gocv.ApplyColorMap(composite, &colored, gocv.ColormapJet)

	out, err := ImageFromMat(colored)
	if err != nil {
		return entity.Unavailable(entity.KindELA, err)
	}
	return entity.OK(entity.KindELA, out)
}

// amplifiedDifference возвращает серый композит: поэлементный максимум
// усиленных разниц по всем качествам лестницы.
func amplifiedDifference(bgr gocv.Mat) (gocv.Mat, error) {
	composite := gocv.NewMat()

	for _, quality := range elaQualities {
		recompressed, err := recompress(bgr, quality)
		if err != nil {
			composite.Close()
			return gocv.NewMat(), err
		}

		diff := gocv.NewMat()
		gocv.AbsDiff(bgr, recompressed, &diff)
		recompressed.Close()

		amplified := gocv.NewMat()
		gocv.ConvertScaleAbs(diff, &amplified, elaGain, 0)
		diff.Close()

		if composite.Empty() {
			composite.Close()
			composite = amplified
			continue
		}
		gocv.Max(composite, amplified, &composite)
		amplified.Close()
	}

	gray := gocv.NewMat()
	gocv.CvtColor(composite, &gray, gocv.ColorBGRToGray)
	composite.Close()
	return gray, nil
}

// recompress прогоняет изображение через JPEG заданного качества.
func recompress(bgr gocv.Mat, quality int) (gocv.Mat, error) {
	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, bgr, []int{gocv.IMWriteJpegQuality, quality})
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("encode jpeg q%d: %w", quality, err)
	}
	defer buf.Close()

	mat, err := gocv.IMDecode(buf.GetBytes(), gocv.IMReadColor)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("decode jpeg q%d: %w", quality, err)
	}
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("decode jpeg q%d: empty image", quality)
	}
	return mat, nil
}

var _ port.Analyzer = (*ELAAnalyzer)(nil)
