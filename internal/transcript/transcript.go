// Package transcript collects the ordered record of a scenario run — one
// entry per dispatched call — and renders it as plain text or JSON. The
// transcript is the engine's only external surface besides logs.
package transcript

import (
	"fmt"
	"io"
	"os"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
)

// Record captures the outcome of one dispatched call.
type Record struct {
	Object    string `json:"object"`
	Type      string `json:"type"`
	Operation string `json:"operation"`
	Result    any    `json:"result"`
}

// Recorder accumulates records in call order.
type Recorder struct {
	records []Record
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Append adds one record.
func (r *Recorder) Append(rec Record) {
	r.records = append(r.records, rec)
}

// Records returns the accumulated records in call order.
func (r *Recorder) Records() []Record {
	return r.records
}

// WriteText renders the transcript as one line per call. Color is applied
// only when the writer is a terminal.
func (r *Recorder) WriteText(out io.Writer) error {
	colorize := isTerminal(out)
	for _, rec := range r.records {
		tag := rec.Type
		if colorize {
			tag = "\x1b[36m" + tag + "\x1b[0m"
		}
		if _, err := fmt.Fprintf(out, "%s (%s): %s => %s\n", rec.Object, tag, rec.Operation, formatResult(rec.Result)); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON renders the transcript as an indented JSON array.
func (r *Recorder) WriteJSON(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	records := r.records
	if records == nil {
		records = []Record{}
	}
	return enc.Encode(records)
}

// formatResult renders a native result value for the text transcript.
// Numbers use the shortest round-trippable representation.
func formatResult(v any) string {
	switch tv := v.(type) {
	case nil:
		return "null"
	case string:
		return tv
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(tv)
	default:
		return fmt.Sprintf("%v", tv)
	}
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
