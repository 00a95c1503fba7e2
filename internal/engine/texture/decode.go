package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
)

// MagentaKey is the conventional transparency colour.
const MagentaKey uint32 = 0xFF00FF

// IsMagentaKey reports whether a colour is close enough to magenta to be
// treated as the transparency key. The tolerance absorbs lossy encoders.
func IsMagentaKey(r, g, b uint8) bool {
	return r >= 250 && g <= 10 && b >= 250
}

// Decode decodes an image file by extension. TGA is handled here, every
// other registered format (PNG, JPEG, BMP) goes through image.Decode.
func Decode(name string, data []byte) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// ToARGB converts an image to 8-bit RGB pixels with a zero alpha byte.
func ToARGB(img image.Image) (w, h int, pixels []uint32) {
	bounds := img.Bounds()
	w, h = bounds.Dx(), bounds.Dy()
	pixels = make([]uint32, 0, w*h)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			pixels = append(pixels, ARGB(uint8(r16>>8), uint8(g16>>8), uint8(b16>>8)))
		}
	}
	return w, h, pixels
}

// Load decodes an image file into a texture with its mip chain.
func Load(name string, data []byte, opts ...Option) (*Texture, error) {
	img, err := Decode(name, data)
	if err != nil {
		return nil, err
	}
	w, h, px := ToARGB(img)
	return New(name, w, h, px, opts...)
}
