package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
)

// ImageData contains a decoded image as a packed RGB8 pixel buffer,
// row-major with the top row first
type ImageData struct {
	Width  int
	Height int
	Pixels []byte
}

// LoadImage decodes a JPEG or PNG image file into an RGB8 buffer. Textures
// are decoded once up front; the render hot path only indexes the buffer.
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Auto-detects PNG/JPEG from the file header
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]byte, width*height*3)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			base := (y*width + x) * 3
			// RGBA returns uint32 in [0, 65535]
			pixels[base] = byte(r >> 8)
			pixels[base+1] = byte(g >> 8)
			pixels[base+2] = byte(b >> 8)
		}
	}

	return &ImageData{Width: width, Height: height, Pixels: pixels}, nil
}
