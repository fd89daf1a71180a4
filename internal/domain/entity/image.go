package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidImage означает, что буфер изображения не прошёл проверку валидности.
var ErrInvalidImage = errors.New("invalid image buffer")

// Image хранит декодированное изображение как непрерывный буфер пикселей.
type Image struct {
	Width    int    // ширина в пикселях
	Height   int    // высота в пикселях
	Channels int    // число каналов: 1 (градации серого) или 3 (BGR)
	Pix      []byte // построчный буфер сэмплов, Width*Height*Channels байт
}

// Validate проверяет инварианты буфера.
func (i Image) Validate() error {
	if i.Width <= 0 || i.Height <= 0 {
		return fmt.Errorf("%w: empty size %dx%d", ErrInvalidImage, i.Width, i.Height)
	}
	if i.Channels != 1 && i.Channels != 3 {
		return fmt.Errorf("%w: unsupported channel count %d", ErrInvalidImage, i.Channels)
	}
	if want := i.Width * i.Height * i.Channels; len(i.Pix) != want {
		return fmt.Errorf("%w: pixel buffer has %d bytes, want %d", ErrInvalidImage, len(i.Pix), want)
	}
	return nil
}

// Clone возвращает независимую копию буфера.
func (i Image) Clone() Image {
	pix := make([]byte, len(i.Pix))
	copy(pix, i.Pix)
	return Image{
		Width:    i.Width,
		Height:   i.Height,
		Channels: i.Channels,
		Pix:      pix,
	}
}
