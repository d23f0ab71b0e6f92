package chromakey

import (
	"fmt"

	"github.com/davesmith10/chromakey/internal/ir"
)

// Transform zeroes the alpha of background-colored pixels. A Transform holds
// no mutable state and may be shared between goroutines.
type Transform struct {
	mode      Mode
	threshold int
	// Light mode compares against 255-threshold; precomputed once.
	cutoff int
}

// NewTransform validates mode and threshold and returns a ready Transform.
func NewTransform(mode Mode, threshold int) (*Transform, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	t := &Transform{mode: mode, threshold: threshold, cutoff: threshold}
	if mode == Light {
		t.cutoff = 255 - threshold
	}
	return t, nil
}

func (t *Transform) Mode() Mode     { return t.mode }
func (t *Transform) Threshold() int { return t.threshold }

// Matches reports whether a color is classified as background. All three
// channels must pass and comparisons are strict, so a channel sitting exactly
// on the boundary is kept.
func (t *Transform) Matches(r, g, b uint8) bool {
	c := t.cutoff
	if t.mode == Light {
		return int(r) > c && int(g) > c && int(b) > c
	}
	return int(r) < c && int(g) < c && int(b) < c
}

// TransformPixels keys src (width*height*4 RGBA bytes) into a new slice and
// returns it with the number of keyed pixels. src is never modified.
func (t *Transform) TransformPixels(src []byte, width, height int) ([]byte, int, error) {
	expected, err := ir.ByteLen(width, height)
	if err != nil {
		return nil, 0, err
	}
	if len(src) != expected {
		return nil, 0, fmt.Errorf("expected %d RGBA bytes, got %d", expected, len(src))
	}

	dst := make([]byte, len(src))
	copy(dst, src)

	keyed := 0
	for i := 0; i < len(dst); i += 4 {
		if t.Matches(dst[i], dst[i+1], dst[i+2]) {
			dst[i+3] = 0
			keyed++
		}
	}
	return dst, keyed, nil
}

// Count returns how many pixels of buf would be keyed.
func (t *Transform) Count(buf *ir.PixelBuffer) int {
	n := 0
	for i := 0; i+3 < len(buf.Pix); i += 4 {
		if t.Matches(buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2]) {
			n++
		}
	}
	return n
}

// Apply returns a keyed copy of buf. Mode and threshold are checked before the
// buffer is looked at; no partial output is ever returned.
func Apply(buf *ir.PixelBuffer, mode Mode, threshold int) (*ir.PixelBuffer, error) {
	t, err := NewTransform(mode, threshold)
	if err != nil {
		return nil, err
	}
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	pix, _, err := t.TransformPixels(buf.Pix, buf.Width, buf.Height)
	if err != nil {
		return nil, err
	}
	return &ir.PixelBuffer{Width: buf.Width, Height: buf.Height, Pix: pix}, nil
}
