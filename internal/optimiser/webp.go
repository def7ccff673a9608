package optimiser

import (
	"image"
	"io"

	"github.com/chai2010/webp"
)

type chaiWebPEncoder struct{}

// NewWebPEncoder returns the production WebP encoder.
func NewWebPEncoder() WebPEncoder {
	return chaiWebPEncoder{}
}

func (chaiWebPEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	return webp.Encode(w, img, &webp.Options{Quality: float32(quality)})
}
