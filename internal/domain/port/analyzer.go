package port

import (
	"context"

	"tamperscope/internal/domain/entity"
)

// Analyzer интерфейс одного аналитического преобразования изображения
type Analyzer interface {
	// Kind возвращает вид анализа, который выполняет преобразование
	Kind() entity.AnalysisKind

	// Analyze строит выходной буфер анализа либо маркер недоступности.
	// Сбой анализа не является ошибкой конвейера: он возвращается
	// внутри результата и превращается в панель-заглушку.
	Analyze(ctx context.Context, img entity.Image) entity.Result
}
