package batch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davesmith10/chromakey/internal/chromakey"
	"github.com/davesmith10/chromakey/internal/ir"
	"github.com/davesmith10/chromakey/internal/manifest"
	"github.com/davesmith10/chromakey/internal/png"
)

func writeSolid(t *testing.T, path string, c ir.RGBA, w, h int) {
	t.Helper()
	buf, err := ir.NewPixelBuffer(w, h)
	require.NoError(t, err)
	for i := 0; i < buf.Len(); i++ {
		buf.Set(i, c)
	}
	data, err := png.Encode(buf)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func readPixel(t *testing.T, path string) ir.RGBA {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	buf, err := png.Decode(data)
	require.NoError(t, err)
	return buf.At(0)
}

func parse(t *testing.T, dir, yaml string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Parse([]byte(yaml), dir)
	require.NoError(t, err)
	return m
}

func TestRunCopiesStagingAndProcesses(t *testing.T) {
	dir := t.TempDir()
	white := ir.RGBA{R: 250, G: 250, B: 250, A: 255}
	black := ir.RGBA{R: 5, G: 5, B: 5, A: 255}

	// Stale processed copy in assets, fresh one in staging.
	writeSolid(t, filepath.Join(dir, "public/assets/3d/book.png"), ir.RGBA{R: 1, G: 2, B: 3, A: 9}, 2, 2)
	writeSolid(t, filepath.Join(dir, "public/3d_temp/book.png"), white, 4, 4)
	writeSolid(t, filepath.Join(dir, "public/assets/3d/trophy.png"), black, 3, 3)

	m := parse(t, dir, `
entries:
  - input: public/assets/3d/book.png
    source: public/3d_temp/book.png
    mode: white
    threshold: 30
  - input: public/assets/3d/trophy.png
    mode: black
    threshold: 40
`)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	r := &Runner{Logger: logger}

	report, err := r.Run(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 2)
	assert.Equal(t, 2, report.Count(StatusProcessed))

	book := report.Outcomes[0]
	assert.True(t, book.Copied)
	assert.Equal(t, chromakey.Light, book.Mode)
	assert.Equal(t, 4, book.Width, "fresh staging copy must be processed, not the stale file")
	assert.Equal(t, 16, book.Keyed)
	assert.Equal(t, ir.RGBA{R: 250, G: 250, B: 250, A: 0}, readPixel(t, book.Output))

	trophy := report.Outcomes[1]
	assert.False(t, trophy.Copied)
	assert.Equal(t, 9, trophy.Keyed)
	assert.Equal(t, ir.RGBA{R: 5, G: 5, B: 5, A: 0}, readPixel(t, trophy.Output))

	// Staging file is left untouched.
	assert.Equal(t, white, readPixel(t, filepath.Join(dir, "public/3d_temp/book.png")))

	var processed int
	for _, e := range hook.AllEntries() {
		if e.Message == "processed" {
			processed++
		}
	}
	assert.Equal(t, 2, processed)
}

func TestRunMissingInputFails(t *testing.T) {
	dir := t.TempDir()
	m := parse(t, dir, "entries:\n  - {input: gone.png, mode: light, threshold: 30}\n")

	logger, _ := test.NewNullLogger()
	report, err := (&Runner{Logger: logger}).Run(context.Background(), m)
	assert.ErrorIs(t, err, ir.ErrIOFailure)
	require.NotNil(t, report)
	assert.Equal(t, StatusFailed, report.Outcomes[0].Status)
}

func TestRunSkipMissing(t *testing.T) {
	dir := t.TempDir()
	writeSolid(t, filepath.Join(dir, "cap.png"), ir.RGBA{R: 255, G: 255, B: 255, A: 255}, 1, 1)
	m := parse(t, dir, `
entries:
  - {input: laptop.png, mode: light, threshold: 30}
  - {input: book.png, source: staging/book.png, mode: light, threshold: 30}
  - {input: cap.png, mode: light, threshold: 30}
`)

	logger, hook := test.NewNullLogger()
	report, err := (&Runner{SkipMissing: true, Logger: logger}).Run(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count(StatusSkipped))
	assert.Equal(t, 1, report.Count(StatusProcessed))
	assert.Equal(t, StatusProcessed, report.Outcomes[2].Status)

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	assert.Equal(t, 2, warnings)
}

func TestRunCorruptInputNotSkipped(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.png"), []byte("nope"), 0o644))
	m := parse(t, dir, "entries:\n  - {input: bad.png, mode: dark, threshold: 10}\n")

	logger, _ := test.NewNullLogger()
	_, err := (&Runner{SkipMissing: true, Logger: logger}).Run(context.Background(), m)
	assert.ErrorIs(t, err, ir.ErrMalformedInput)
}

func TestRunStopsAfterFirstFailure(t *testing.T) {
	dir := t.TempDir()
	writeSolid(t, filepath.Join(dir, "ok.png"), ir.RGBA{A: 255}, 1, 1)
	m := parse(t, dir, `
entries:
  - {input: missing.png, mode: dark, threshold: 10}
  - {input: ok.png, mode: dark, threshold: 10}
`)

	logger, _ := test.NewNullLogger()
	report, err := (&Runner{Jobs: 1, Logger: logger}).Run(context.Background(), m)
	assert.ErrorIs(t, err, ir.ErrIOFailure)
	assert.Equal(t, StatusFailed, report.Outcomes[0].Status)
	assert.Equal(t, StatusCanceled, report.Outcomes[1].Status)
	// The untouched file still has its original alpha.
	assert.Equal(t, uint8(255), readPixel(t, filepath.Join(dir, "ok.png")).A)
}

func TestRunParallelJobs(t *testing.T) {
	dir := t.TempDir()
	var yaml bytes.Buffer
	yaml.WriteString("entries:\n")
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		writeSolid(t, filepath.Join(dir, name+".png"), ir.RGBA{R: 250, G: 250, B: 250, A: 255}, 2, 2)
		yaml.WriteString("  - {input: " + name + ".png, output: out/" + name + ".png, mode: light, threshold: 20}\n")
	}
	m := parse(t, dir, yaml.String())

	logger, _ := test.NewNullLogger()
	report, err := (&Runner{Jobs: 3, Logger: logger}).Run(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Count(StatusProcessed))
	for _, o := range report.Outcomes {
		assert.Equal(t, uint8(0), readPixel(t, o.Output).A, o.Output)
	}
}

func TestReportTable(t *testing.T) {
	r := &Report{Outcomes: []Outcome{
		{Input: "book.png", Output: "book.png", Mode: chromakey.Light, Threshold: 30, Status: StatusProcessed, Width: 64, Height: 32, Keyed: 100},
		{Input: "trophy.png", Output: "trophy.png", Mode: chromakey.Dark, Threshold: 40, Status: StatusSkipped},
	}}
	out := r.Table()
	assert.Contains(t, out, "book.png")
	assert.Contains(t, out, "64x32")
	assert.Contains(t, out, "processed")
	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, "dark")
}
