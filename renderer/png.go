package renderer

import (
	"image"
	"image/png"
	"os"
)

// WritePNG encodes an RGBA pixel buffer as a PNG file.
func WritePNG(path string, frameW, frameH uint32, pixels []uint8) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img := &image.RGBA{
		Pix:    pixels,
		Stride: int(frameW) * 4,
		Rect:   image.Rect(0, 0, int(frameW), int(frameH)),
	}
	return png.Encode(f, img)
}
