package report

import (
	"bytes"
	"image/color"

	"github.com/fogleman/gg"
)

const (
	pngWidth      = 900
	pngMargin     = 40
	pngLineHeight = 18
)

// renderPNG draws the report with gg's built-in bitmap face.
func renderPNG(lines []string) ([]byte, error) {
	height := 2*pngMargin + pngLineHeight*len(lines)
	dc := gg.NewContext(pngWidth, height)

	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.NRGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff})

	for i, line := range lines {
		if line == "" {
			continue
		}
		dc.DrawString(line, pngMargin, float64(pngMargin+pngLineHeight*(i+1)))
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
