package vision

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"tamperscope/internal/domain/entity"
)

// MatFromImage превращает доменный буфер в gocv.Mat.
func MatFromImage(img entity.Image) (gocv.Mat, error) {
	if err := img.Validate(); err != nil {
		return gocv.NewMat(), err
	}

	matType := gocv.MatTypeCV8UC1
	if img.Channels == 3 {
		matType = gocv.MatTypeCV8UC3
	}

	mat, err := gocv.NewMatFromBytes(img.Height, img.Width, matType, img.Pix)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("mat from bytes: %w", err)
	}
	return mat, nil
}

// ImageFromMat копирует gocv.Mat в доменный буфер.
func ImageFromMat(mat gocv.Mat) (entity.Image, error) {
	if mat.Empty() {
		return entity.Image{}, errors.New("empty mat")
	}
	channels := mat.Channels()
	if channels != 1 && channels != 3 {
		return entity.Image{}, fmt.Errorf("unsupported mat with %d channels", channels)
	}

	img := entity.Image{
		Width:    mat.Cols(),
		Height:   mat.Rows(),
		Channels: channels,
		Pix:      mat.ToBytes(),
	}
	if err := img.Validate(); err != nil {
		return entity.Image{}, err
	}
	return img, nil
}

// grayFrom приводит произвольный Mat к одноканальному.
func grayFrom(mat gocv.Mat) gocv.Mat {
	if mat.Channels() == 1 {
		return mat.Clone()
	}
	gray := gocv.NewMat()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)
	return gray
}

// bgrFrom приводит произвольный Mat к трёхканальному BGR.
func bgrFrom(mat gocv.Mat) gocv.Mat {
	if mat.Channels() == 3 {
		return mat.Clone()
	}
	bgr := gocv.NewMat()
	gocv.CvtColor(mat, &bgr, gocv.ColorGrayToBGR)
	return bgr
}

// grayFloats разворачивает одноканальный Mat в матрицу float64.
func grayFloats(gray gocv.Mat) [][]float64 {
	rows, cols := gray.Rows(), gray.Cols()
	data := gray.ToBytes()

	out := make([][]float64, rows)
	for y := 0; y < rows; y++ {
		row := make([]float64, cols)
		for x := 0; x < cols; x++ {
			row[x] = float64(data[y*cols+x])
		}
		out[y] = row
	}
	return out
}

// matFromFloats собирает одноканальный CV32F Mat из матрицы float64.
func matFromFloats(values [][]float64) gocv.Mat {
	rows := len(values)
	cols := len(values[0])

	mat := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV32F)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			mat.SetFloatAt(y, x, float32(values[y][x]))
		}
	}
	return mat
}
