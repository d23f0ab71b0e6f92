package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/davesmith10/chromakey/internal/chromakey"
	"github.com/davesmith10/chromakey/internal/ir"
	"github.com/davesmith10/chromakey/internal/payload"
	"github.com/davesmith10/chromakey/internal/png"
)

// Options controls the decode → key → encode pipeline.
type Options struct {
	Mode      chromakey.Mode // light or dark
	Threshold int            // 0-255, no default
}

// Result holds the output of a pipeline run.
type Result struct {
	Data   []byte // encoded PNG
	Width  int
	Height int
	Keyed  int // pixels whose alpha was zeroed
}

// Run executes the full pipeline: decode → chroma-key → encode.
// Options are validated before the input is decoded.
func Run(ctx context.Context, pngData []byte, opts Options) (*Result, error) {
	// 1. Validate parameters up front so nothing is processed on bad input
	xform, err := chromakey.NewTransform(opts.Mode, opts.Threshold)
	if err != nil {
		return nil, err
	}

	// 2. Decode PNG
	decoded, err := png.Decode(pngData)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 3. Key background pixels
	pix, keyed, err := xform.TransformPixels(decoded.Pix, decoded.Width, decoded.Height)
	if err != nil {
		return nil, fmt.Errorf("chroma-key: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 4. Encode PNG
	encoded, err := png.Encode(&ir.PixelBuffer{Width: decoded.Width, Height: decoded.Height, Pix: pix})
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	return &Result{
		Data:   encoded,
		Width:  decoded.Width,
		Height: decoded.Height,
		Keyed:  keyed,
	}, nil
}

// ProcessFile runs the pipeline on inputPath and writes the result to
// outputPath. Input and output may be the same file.
func ProcessFile(ctx context.Context, inputPath, outputPath string, opts Options) (*Result, error) {
	if _, err := chromakey.NewTransform(opts.Mode, opts.Threshold); err != nil {
		return nil, err
	}

	inputData, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, ir.NewIOError("read", inputPath, err)
	}

	result, err := Run(ctx, inputData, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inputPath, err)
	}

	if err := payload.WriteFile(outputPath, result.Data); err != nil {
		return nil, err
	}
	return result, nil
}
