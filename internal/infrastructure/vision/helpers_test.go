package vision

import (
	"tamperscope/internal/domain/entity"
)

// solidImage строит одноцветный буфер заданной формы.
func solidImage(w, h, channels int, value byte) entity.Image {
	pix := make([]byte, w*h*channels)
	for i := range pix {
		pix[i] = value
	}
	return entity.Image{Width: w, Height: h, Channels: channels, Pix: pix}
}

// texturedImage строит детерминированный трёхканальный буфер с высокочастотным узором.
func texturedImage(w, h int) entity.Image {
	pix := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			pix[i] = byte((x*7 + y*13) % 251)
			pix[i+1] = byte((x*3 + y*5 + 17) % 239)
			pix[i+2] = byte((x ^ y) * 11 % 227)
		}
	}
	return entity.Image{Width: w, Height: h, Channels: 3, Pix: pix}
}
