package ir

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// PixelBuffer is the intermediate representation passed between the PNG codec
// and the chroma-key transform. Pixels are stored as interleaved,
// non-premultiplied R,G,B,A bytes (4 bytes per pixel, row-major order).
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []byte // len = Width * Height * 4
}

// RGBA is a single non-premultiplied pixel.
type RGBA struct {
	R, G, B, A uint8
}

// ByteLen returns width*height*4, rejecting negative dimensions and products
// that do not fit in an int.
func ByteLen(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if width != 0 && height > math.MaxInt/4/width {
		return 0, fmt.Errorf("dimensions %dx%d overflow", width, height)
	}
	return width * height * 4, nil
}

// NewPixelBuffer allocates a zeroed (fully transparent black) buffer.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	n, err := ByteLen(width, height)
	if err != nil {
		return nil, err
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, n),
	}, nil
}

// Len returns the number of pixels.
func (p *PixelBuffer) Len() int {
	return p.Width * p.Height
}

// Validate checks the dimension and length invariants.
func (p *PixelBuffer) Validate() error {
	expected, err := ByteLen(p.Width, p.Height)
	if err != nil {
		return err
	}
	if len(p.Pix) != expected {
		return fmt.Errorf("expected %d RGBA bytes for %dx%d, got %d", expected, p.Width, p.Height, len(p.Pix))
	}
	return nil
}

func (p *PixelBuffer) Clone() *PixelBuffer {
	pix := make([]byte, len(p.Pix))
	copy(pix, p.Pix)
	return &PixelBuffer{Width: p.Width, Height: p.Height, Pix: pix}
}

// At returns pixel i in row-major order.
func (p *PixelBuffer) At(i int) RGBA {
	s := p.Pix[i*4 : i*4+4 : i*4+4]
	return RGBA{R: s[0], G: s[1], B: s[2], A: s[3]}
}

func (p *PixelBuffer) Set(i int, c RGBA) {
	s := p.Pix[i*4 : i*4+4 : i*4+4]
	s[0], s[1], s[2], s[3] = c.R, c.G, c.B, c.A
}

// NRGBA returns an image view sharing the buffer's memory.
func (p *PixelBuffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    p.Pix,
		Stride: p.Width * 4,
		Rect:   image.Rect(0, 0, p.Width, p.Height),
	}
}

// FromImage copies a decoded image into a PixelBuffer. The models the PNG
// decoder produces with alpha (NRGBA, NRGBA64, Paletted) are copied exactly,
// keeping the color of fully transparent pixels; anything else goes through a
// Src draw into an NRGBA view.
func FromImage(img image.Image) *PixelBuffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	buf := &PixelBuffer{Width: w, Height: h, Pix: make([]byte, w*h*4)}
	rowLen := w * 4

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(buf.Pix[y*rowLen:(y+1)*rowLen], src.Pix[off:off+rowLen])
		}
		return buf

	case *image.NRGBA64:
		// 8 bytes per pixel, big-endian; the high byte is the 8-bit value.
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			row := buf.Pix[y*rowLen : (y+1)*rowLen]
			for i := 0; i < rowLen; i++ {
				row[i] = src.Pix[off+i*2]
			}
		}
		return buf

	case *image.Paletted:
		lut := paletteLUT(src.Palette)
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			row := buf.Pix[y*rowLen : (y+1)*rowLen]
			for x := 0; x < w; x++ {
				c := lut[src.Pix[off+x]]
				row[x*4], row[x*4+1], row[x*4+2], row[x*4+3] = c.R, c.G, c.B, c.A
			}
		}
		return buf
	}

	dst := buf.NRGBA()
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return buf
}

// paletteLUT maps palette indices to non-premultiplied colors. Straight
// NRGBA entries (what the PNG decoder builds from tRNS) are used verbatim.
// Indices past the palette stay transparent black.
func paletteLUT(p color.Palette) [256]color.NRGBA {
	var lut [256]color.NRGBA
	for i, c := range p {
		if i >= len(lut) {
			break
		}
		if nc, ok := c.(color.NRGBA); ok {
			lut[i] = nc
			continue
		}
		lut[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
	return lut
}
