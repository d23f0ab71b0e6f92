// Package manifest describes a set of images to chroma-key: which files,
// where the results go, and the mode and threshold for each.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"github.com/davesmith10/chromakey/internal/chromakey"
	"github.com/davesmith10/chromakey/internal/ir"
	"github.com/davesmith10/chromakey/internal/pipeline"
)

// Manifest is the on-disk batch description.
type Manifest struct {
	// BaseDir resolves relative entry paths. Defaults to the manifest's
	// directory when loaded from a file.
	BaseDir string  `json:"baseDir,omitempty"`
	Entries []Entry `json:"entries"`
}

// Entry is one image to process.
type Entry struct {
	Input string `json:"input"`
	// Output defaults to Input (in-place).
	Output string `json:"output,omitempty"`
	// Source, when set, is copied over Input before processing.
	Source string `json:"source,omitempty"`
	Mode   string `json:"mode"`
	// Threshold is a pointer so that a missing value is an error rather
	// than a silent 0.
	Threshold *int `json:"threshold"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ir.NewIOError("read", path, err)
	}
	m, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes YAML (or JSON) manifest data. defaultBase is used when the
// manifest does not set baseDir; a relative baseDir is resolved against it.
func Parse(data []byte, defaultBase string) (*Manifest, error) {
	var m Manifest
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w: %v", ir.ErrMalformedInput, err)
	}
	switch {
	case m.BaseDir == "":
		m.BaseDir = defaultBase
	case !filepath.IsAbs(m.BaseDir) && defaultBase != "":
		m.BaseDir = filepath.Join(defaultBase, m.BaseDir)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks every entry before any work starts.
func (m *Manifest) Validate() error {
	if len(m.Entries) == 0 {
		return fmt.Errorf("manifest has no entries")
	}
	for i := range m.Entries {
		if err := m.Entries[i].Validate(); err != nil {
			return fmt.Errorf("entry %d (%s): %w", i, m.Entries[i].Input, err)
		}
	}
	return nil
}

func (e *Entry) Validate() error {
	if e.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if _, err := chromakey.ParseMode(e.Mode); err != nil {
		return err
	}
	if e.Threshold == nil {
		return fmt.Errorf("%w: threshold is required", chromakey.ErrInvalidThreshold)
	}
	return chromakey.ValidateThreshold(*e.Threshold)
}

// Options maps the entry onto pipeline options. The entry must be valid.
func (e *Entry) Options() (pipeline.Options, error) {
	mode, err := chromakey.ParseMode(e.Mode)
	if err != nil {
		return pipeline.Options{}, err
	}
	if e.Threshold == nil {
		return pipeline.Options{}, fmt.Errorf("%w: threshold is required", chromakey.ErrInvalidThreshold)
	}
	return pipeline.Options{Mode: mode, Threshold: *e.Threshold}, nil
}

// Resolve returns p joined to the manifest's base directory unless it is
// absolute or empty.
func (m *Manifest) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || m.BaseDir == "" {
		return p
	}
	return filepath.Join(m.BaseDir, p)
}

// Paths returns the resolved input, output and source paths of e.
func (m *Manifest) Paths(e *Entry) (input, output, source string) {
	input = m.Resolve(e.Input)
	output = input
	if e.Output != "" {
		output = m.Resolve(e.Output)
	}
	return input, output, m.Resolve(e.Source)
}
