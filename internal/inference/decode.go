package inference

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	// imaging registers jpeg, png, gif, bmp and tiff
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
)

// DefaultMaxImagePixels bounds width*height of an upload. Decoders allocate
// the whole pixel buffer from the header before reading any pixel data.
const DefaultMaxImagePixels = 1 << 26

// Decode turns raw upload bytes into an image, applying EXIF orientation.
// Every failure wraps ErrDecode.
func Decode(raw []byte) (image.Image, error) {
	return DecodeLimited(raw, DefaultMaxImagePixels)
}

// DecodeLimited is Decode with an explicit pixel cap. The header is checked
// against maxPixels before the image is decoded.
func DecodeLimited(raw []byte, maxPixels int64) (image.Image, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrDecode)
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxImagePixels
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: zero-sized image", ErrDecode)
	}
	if px := int64(cfg.Width) * int64(cfg.Height); px > maxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrDecode, cfg.Width, cfg.Height, maxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: zero-sized image", ErrDecode)
	}
	return img, nil
}

// IsDecodeError reports whether err came from Decode.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrDecode)
}
