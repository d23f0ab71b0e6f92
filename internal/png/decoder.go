package png

import (
	"bytes"
	"fmt"
	stdpng "image/png"

	"github.com/davesmith10/chromakey/internal/ir"
)

// DecodeError reports PNG bytes that could not be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("png decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{e.Err, ir.ErrMalformedInput}
}

// Decode decodes a PNG file from memory into non-premultiplied RGBA pixels.
func Decode(data []byte) (*ir.PixelBuffer, error) {
	if !IsPNG(data) {
		return nil, &DecodeError{Err: fmt.Errorf("missing PNG signature")}
	}

	img, err := stdpng.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return ir.FromImage(img), nil
}
