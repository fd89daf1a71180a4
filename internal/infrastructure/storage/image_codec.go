package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"gocv.io/x/gocv"

	"tamperscope/internal/domain/entity"
	"tamperscope/internal/domain/port"
	"tamperscope/internal/infrastructure/vision"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// FileImageCodec загружает, декодирует и сохраняет изображения через OpenCV.
type FileImageCodec struct {
	BaselineQuality int // качество промежуточного JPEG для PNG-источников
}

// NewFileImageCodec создаёт кодек с заданным базовым качеством пережатия.
func NewFileImageCodec(baselineQuality int) *FileImageCodec {
	if baselineQuality <= 0 || baselineQuality > 100 {
		baselineQuality = 90
	}
	return &FileImageCodec{BaselineQuality: baselineQuality}
}

// LoadFile читает изображение с диска и декодирует его.
func (c *FileImageCodec) LoadFile(ctx context.Context, path string) (entity.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entity.Image{}, fmt.Errorf("read image file: %w", err)
	}
	return c.Decode(ctx, data)
}

// Decode декодирует изображение. PNG-источники сперва прогоняются через
// JPEG базового качества, чтобы выровнять базовые артефакты сжатия.
func (c *FileImageCodec) Decode(ctx context.Context, data []byte) (entity.Image, error) {
	_ = ctx

	mat, err := decodeToMat(data)
	if err != nil {
		return entity.Image{}, err
	}
	defer mat.Close()

	if bytes.HasPrefix(data, pngMagic) {
		rebased, err := c.rebaseline(mat)
		if err != nil {
			return entity.Image{}, err
		}
		defer rebased.Close()
		return vision.ImageFromMat(rebased)
	}

	return vision.ImageFromMat(mat)
}

// EncodePNG кодирует буфер в PNG.
func (c *FileImageCodec) EncodePNG(ctx context.Context, img entity.Image) ([]byte, error) {
	_ = ctx

	mat, err := vision.MatFromImage(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	defer buf.Close()

	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return data, nil
}

// SaveReport пишет итоговый отчёт на диск без потерь.
func (c *FileImageCodec) SaveReport(ctx context.Context, img entity.Image, path string) error {
	_ = ctx

	mat, err := vision.MatFromImage(img)
	if err != nil {
		return err
	}
	defer mat.Close()

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("write report: imwrite failed for %s", path)
	}
	return nil
}

// rebaseline пережимает изображение через JPEG базового качества в памяти.
func (c *FileImageCodec) rebaseline(mat gocv.Mat) (gocv.Mat, error) {
	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, mat, []int{gocv.IMWriteJpegQuality, c.BaselineQuality})
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("rebaseline encode: %w", err)
	}
	defer buf.Close()

	return decodeToMat(buf.GetBytes())
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(data []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

// Проверка реализации интерфейса
var _ port.ImageCodec = (*FileImageCodec)(nil)
