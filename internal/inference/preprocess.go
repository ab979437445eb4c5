package inference

import (
	"image"

	"github.com/disintegration/imaging"
)

const (
	ChannelOrderRGB = "rgb"
	ChannelOrderBGR = "bgr"
)

// fillInput resizes img to size×size and writes it into dst as planar
// float32 channels scaled to [0,1]. Decoders yield RGB; bgr swaps the
// first and last planes for models trained on BGR input.
func fillInput(img image.Image, size int, channelOrder string, dst []float32) {
	resized := imaging.Resize(img, size, size, imaging.Lanczos)

	plane := size * size
	r, g, b := 0, plane, 2*plane
	if channelOrder == ChannelOrderBGR {
		r, b = b, r
	}

	pix := resized.Pix
	for y := 0; y < size; y++ {
		row := y * resized.Stride
		for x := 0; x < size; x++ {
			i := y*size + x
			p := row + x*4
			dst[r+i] = float32(pix[p]) / 255.0
			dst[g+i] = float32(pix[p+1]) / 255.0
			dst[b+i] = float32(pix[p+2]) / 255.0
		}
	}
}
