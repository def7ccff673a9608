package converter

import (
	"github.com/fogleman/gg"
)

// placeholderFrame synthesizes a thumbnail for videos when no frame extractor
// is available: a dark canvas with a centered play triangle.
func placeholderFrame(width, height, quality int, format string) ([]byte, string, error) {
	dc := gg.NewContext(width, height)

	dc.SetRGB(0.13, 0.13, 0.16)
	dc.Clear()

	cx, cy := float64(width)/2, float64(height)/2
	r := float64(height) / 5

	dc.SetRGBA(1, 1, 1, 0.25)
	dc.DrawCircle(cx, cy, r*1.5)
	dc.Fill()

	dc.SetRGB(0.92, 0.92, 0.94)
	dc.MoveTo(cx-r*0.5, cy-r*0.8)
	dc.LineTo(cx-r*0.5, cy+r*0.8)
	dc.LineTo(cx+r*0.9, cy)
	dc.ClosePath()
	dc.Fill()

	data, contentType, err := encode(dc.Image(), format, quality)
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}
