package png

import (
	"bytes"
	"fmt"
	"image/color"
	stdpng "image/png"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// colorModelName returns a string for the decoder's color model.
func colorModelName(m color.Model) string {
	if p, ok := m.(color.Palette); ok {
		return fmt.Sprintf("Paletted(%d)", len(p))
	}
	switch m {
	case color.GrayModel:
		return "Gray8"
	case color.Gray16Model:
		return "Gray16"
	case color.RGBAModel:
		return "RGB8"
	case color.RGBA64Model:
		return "RGB16"
	case color.NRGBAModel:
		return "RGBA8"
	case color.NRGBA64Model:
		return "RGBA16"
	}
	return "Unknown"
}

// ImageInfo contains metadata about a PNG file.
type ImageInfo struct {
	Width      int
	Height     int
	ColorModel string
}

// IsPNG reports whether data starts with the PNG signature.
func IsPNG(data []byte) bool {
	return len(data) >= len(pngMagic) && bytes.Equal(data[:len(pngMagic)], pngMagic)
}

// GetInfo reads the PNG header without decoding pixel data.
func GetInfo(data []byte) (*ImageInfo, error) {
	if !IsPNG(data) {
		return nil, &DecodeError{Err: fmt.Errorf("missing PNG signature")}
	}
	cfg, err := stdpng.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &ImageInfo{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ColorModel: colorModelName(cfg.ColorModel),
	}, nil
}
