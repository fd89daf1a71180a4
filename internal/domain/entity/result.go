package entity

// AnalysisKind идентифицирует вид анализа в отчёте.
type AnalysisKind string

const (
	KindOriginal  AnalysisKind = "original"  // исходное изображение
	KindELA       AnalysisKind = "ela"       // анализ уровня ошибок сжатия
	KindGabor     AnalysisKind = "gabor"     // отклик фильтра Габора
	KindEdges     AnalysisKind = "edges"     // адаптивные границы
	KindFrequency AnalysisKind = "frequency" // частотно-вейвлетный спектр
	KindTexture   AnalysisKind = "texture"   // локальные бинарные шаблоны
)

// Title возвращает короткое имя анализа для подписи панели.
func (k AnalysisKind) Title() string {
	switch k {
	case KindOriginal:
		return "Original"
	case KindELA:
		return "ELA"
	case KindGabor:
		return "Gabor"
	case KindEdges:
		return "Edges"
	case KindFrequency:
		return "Frequency"
	case KindTexture:
		return "Texture"
	}
	return string(k)
}

// Caption возвращает строку аннотации, которая печатается на панели отчёта.
func (k AnalysisKind) Caption() string {
	switch k {
	case KindOriginal:
		return "Original: Baseline for comparison."
	case KindELA:
		return "ELA: Bright areas may suggest tampering."
	case KindGabor:
		return "Gabor: Texture patterns may indicate manipulation."
	case KindEdges:
		return "Edges: Multiple edges can suggest splicing."
	case KindFrequency:
		return "Frequency: Inconsistencies may suggest tampering."
	case KindTexture:
		return "Texture: Inconsistencies may suggest editing."
	}
	return k.Title()
}

// Result — итог одного анализа: буфер либо маркер недоступности.
type Result struct {
	Kind  AnalysisKind
	Image Image
	Err   error // не nil, если анализ не удался
}

// OK создаёт успешный результат анализа.
func OK(kind AnalysisKind, img Image) Result {
	return Result{Kind: kind, Image: img}
}

// Unavailable создаёт результат-маркер недоступности анализа.
func Unavailable(kind AnalysisKind, err error) Result {
	return Result{Kind: kind, Err: err}
}

// Available сообщает, получен ли пригодный буфер.
func (r Result) Available() bool {
	return r.Err == nil
}

// GridLayout описывает сетку панелей итогового отчёта.
type GridLayout struct {
	Rows int // число строк сетки
	Cols int // число панелей в строке
}

// Panels возвращает общее число панелей в сетке.
func (g GridLayout) Panels() int {
	return g.Rows * g.Cols
}
