package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// DecodeTGA decodes uncompressed (type 2) and RLE (type 10) true-colour TGA
// files with 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		width:       width,
		height:      height,
		bpp:         bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	if imageType == TGATypeUncompressed {
		if len(d.src) < width*height*d.bpp {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for i := 0; i < width*height; i++ {
			d.put(i, d.read())
		}
	} else {
		d.decodeRLE()
	}
	return d.img, nil
}

type tgaDecoder struct {
	img           *image.RGBA
	src           []byte
	pos           int
	width, height int
	bpp           int
	topToBottom   bool
}

// read consumes one BGR(A) pixel.
func (d *tgaDecoder) read() color.RGBA {
	p := d.src[d.pos:]
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bpp == 4 {
		c.A = p[3]
	}
	d.pos += d.bpp
	return c
}

// put stores the i-th pixel in file order, flipping bottom-up images.
func (d *tgaDecoder) put(i int, c color.RGBA) {
	x, y := i%d.width, i/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

// decodeRLE stops quietly at the end of truncated data.
func (d *tgaDecoder) decodeRLE() {
	total := d.width * d.height
	i := 0
	for i < total && d.pos < len(d.src) {
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if d.pos+d.bpp > len(d.src) {
				return
			}
			c := d.read()
			for ; count > 0 && i < total; count-- {
				d.put(i, c)
				i++
			}
			continue
		}

		for ; count > 0 && i < total; count-- {
			if d.pos+d.bpp > len(d.src) {
				return
			}
			d.put(i, d.read())
			i++
		}
	}
}
