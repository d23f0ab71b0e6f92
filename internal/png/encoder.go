package png

import (
	"bytes"
	"fmt"
	stdpng "image/png"

	"github.com/davesmith10/chromakey/internal/ir"
)

// EncodeError reports a buffer that could not be encoded.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("png encode: %v", e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// EncoderOptions controls PNG output.
type EncoderOptions struct {
	Compression stdpng.CompressionLevel
}

// Encode writes buf as a lossless PNG. Alpha is kept per pixel, including the
// color channels of fully transparent pixels.
func Encode(buf *ir.PixelBuffer) ([]byte, error) {
	return EncodeWithOptions(buf, EncoderOptions{Compression: stdpng.DefaultCompression})
}

func EncodeWithOptions(buf *ir.PixelBuffer, opts EncoderOptions) ([]byte, error) {
	if buf == nil {
		return nil, &EncodeError{Err: fmt.Errorf("nil buffer")}
	}
	if err := buf.Validate(); err != nil {
		return nil, &EncodeError{Err: err}
	}
	// image/png refuses empty images.
	if buf.Width == 0 || buf.Height == 0 {
		return nil, &EncodeError{Err: fmt.Errorf("cannot encode %dx%d image", buf.Width, buf.Height)}
	}

	var out bytes.Buffer
	enc := stdpng.Encoder{CompressionLevel: opts.Compression}
	if err := enc.Encode(&out, buf.NRGBA()); err != nil {
		return nil, &EncodeError{Err: err}
	}
	return out.Bytes(), nil
}
