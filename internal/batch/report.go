package batch

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/davesmith10/chromakey/internal/chromakey"
)

type Status string

const (
	StatusPending   Status = ""
	StatusProcessed Status = "processed"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// Outcome records what happened to one manifest entry.
type Outcome struct {
	Input     string
	Output    string
	Mode      chromakey.Mode
	Threshold int
	Copied    bool // a staging source was copied over Input first
	Status    Status
	Width     int
	Height    int
	Keyed     int
	Err       error
}

// Report holds one Outcome per manifest entry, in manifest order.
type Report struct {
	Outcomes []Outcome
}

// Count returns the number of outcomes with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Table renders the report for the terminal.
func (r *Report) Table() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Input", "Output", "Mode", "Threshold", "Size", "Keyed", "Status"})
	for _, o := range r.Outcomes {
		size, keyed := "-", "-"
		if o.Status == StatusProcessed {
			size = fmt.Sprintf("%dx%d", o.Width, o.Height)
			keyed = fmt.Sprintf("%d", o.Keyed)
		}
		status := string(o.Status)
		if status == "" {
			status = "not run"
		}
		t.AppendRow(table.Row{o.Input, o.Output, o.Mode.String(), o.Threshold, size, keyed, status})
	}
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	return t.Render()
}
