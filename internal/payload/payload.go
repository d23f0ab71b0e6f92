// Package payload turns base64 text blobs (optionally data URLs) back into
// the raw files they encode.
package payload

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/davesmith10/chromakey/internal/ir"
)

// DataURLPrefix is stripped from payloads before decoding.
const DataURLPrefix = "data:image/png;base64,"

// StripDataURL removes a leading data URL marker, if any.
func StripDataURL(s string) string {
	return strings.TrimPrefix(s, DataURLPrefix)
}

func removeSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Decode strips the data URL prefix and any whitespace (payloads are often
// assembled by hand and wrapped), then decodes standard base64.
func Decode(text string) ([]byte, error) {
	s := removeSpace(StripDataURL(strings.TrimSpace(text)))
	if s == "" {
		return nil, errors.Wrap(ir.ErrMalformedInput, "empty payload")
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(ir.ErrMalformedInput, "decoding base64: %v", err)
	}
	return data, nil
}

// WriteFile writes data verbatim to path. Parent directories are created
// first. A mkdir failure only surfaces if the write then fails too.
func WriteFile(path string, data []byte) error {
	mkdirErr := os.MkdirAll(filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		ioErr := ir.NewIOError("write", path, err)
		if mkdirErr != nil {
			return errors.WithMessagef(ioErr, "creating parent directory: %v", mkdirErr)
		}
		return ioErr
	}
	return nil
}

// Reconstruct decodes the payload stored at inputPath into outputPath and
// returns the number of bytes written.
func Reconstruct(inputPath, outputPath string) (int, error) {
	text, err := os.ReadFile(inputPath)
	if err != nil {
		return 0, ir.NewIOError("read", inputPath, err)
	}
	data, err := Decode(string(text))
	if err != nil {
		return 0, errors.WithMessage(err, inputPath)
	}
	if err := WriteFile(outputPath, data); err != nil {
		return 0, err
	}
	return len(data), nil
}
