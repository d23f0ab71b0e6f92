package batch

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/davesmith10/chromakey/internal/ir"
	"github.com/davesmith10/chromakey/internal/manifest"
	"github.com/davesmith10/chromakey/internal/pipeline"
)

// Runner processes every entry of a manifest.
type Runner struct {
	// Jobs bounds how many entries run at once. Values below 1 mean 1.
	Jobs int
	// SkipMissing turns a missing input or source into a warning instead of
	// a failure.
	SkipMissing bool
	Logger      logrus.FieldLogger
}

// Run validates the whole manifest, then processes its entries. The first
// failure cancels entries that have not started yet and is returned together
// with the partial report.
func (r *Runner) Run(ctx context.Context, m *manifest.Manifest) (*Report, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	logger := r.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	jobs := r.Jobs
	if jobs < 1 {
		jobs = 1
	}

	report := &Report{Outcomes: make([]Outcome, len(m.Entries))}

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for i := range m.Entries {
		entry := &m.Entries[i]
		outcome := &report.Outcomes[i]
		eg.Go(func() error {
			return r.runEntry(egctx, logger, m, entry, outcome)
		})
	}
	if err := eg.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

func (r *Runner) runEntry(ctx context.Context, logger logrus.FieldLogger, m *manifest.Manifest, e *manifest.Entry, out *Outcome) error {
	input, output, source := m.Paths(e)
	opts, err := e.Options()
	if err != nil {
		return err
	}
	*out = Outcome{
		Input:     input,
		Output:    output,
		Mode:      opts.Mode,
		Threshold: opts.Threshold,
	}
	if err := ctx.Err(); err != nil {
		out.Status = StatusCanceled
		return err
	}

	log := logger.WithFields(logrus.Fields{
		"input":     input,
		"mode":      opts.Mode.String(),
		"threshold": opts.Threshold,
	})

	if source != "" {
		if err := copyFile(source, input); err != nil {
			return r.fail(log, out, err)
		}
		out.Copied = true
		log.WithField("source", source).Debug("copied fresh source")
	}

	res, err := pipeline.ProcessFile(ctx, input, output, opts)
	if err != nil {
		return r.fail(log, out, err)
	}

	out.Status = StatusProcessed
	out.Width, out.Height, out.Keyed = res.Width, res.Height, res.Keyed
	log.WithFields(logrus.Fields{
		"output": output,
		"size":   res.Width * res.Height,
		"keyed":  res.Keyed,
	}).Info("processed")
	return nil
}

func (r *Runner) fail(log logrus.FieldLogger, out *Outcome, err error) error {
	out.Err = err
	if r.SkipMissing && errors.Is(err, fs.ErrNotExist) {
		out.Status = StatusSkipped
		log.WithError(err).Warn("file not found, skipping")
		return nil
	}
	out.Status = StatusFailed
	log.WithError(err).Error("processing failed")
	return err
}

// copyFile copies src over dst, creating dst's directory first.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return ir.NewIOError("open", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return ir.NewIOError("mkdir", filepath.Dir(dst), err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return ir.NewIOError("create", dst, err)
	}
	if _, err := io.Copy(f, in); err != nil {
		f.Close()
		return ir.NewIOError("copy", dst, err)
	}
	if err := f.Close(); err != nil {
		return ir.NewIOError("close", dst, err)
	}
	return nil
}
