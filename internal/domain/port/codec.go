package port

import (
	"context"

	"tamperscope/internal/domain/entity"
)

// ImageCodec интерфейс декодирования и сохранения изображений
type ImageCodec interface {
	// LoadFile читает изображение с диска и декодирует его
	LoadFile(ctx context.Context, path string) (entity.Image, error)

	// Decode декодирует изображение из байтов
	Decode(ctx context.Context, data []byte) (entity.Image, error)

	// EncodePNG кодирует буфер в PNG
	EncodePNG(ctx context.Context, img entity.Image) ([]byte, error)

	// SaveReport сохраняет итоговый отчёт в файл без потерь
	SaveReport(ctx context.Context, img entity.Image, path string) error
}
