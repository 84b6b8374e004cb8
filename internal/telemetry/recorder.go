// Package telemetry records per-tick motion statistics, writes them as CSV
// and summarizes them for the headless tools.
package telemetry

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"sandfall/internal/driver"
	"sandfall/internal/sand"
)

// Record is one tick of telemetry.
type Record struct {
	Tick      uint64 `csv:"tick"`
	Particles int    `csv:"particles"`
	Moved     int    `csv:"moved"`
	Held      bool   `csv:"held"`
	State     string `csv:"state"`
}

// Recorder keeps every record in memory and optionally streams them as CSV.
type Recorder struct {
	out           io.Writer
	headerWritten bool
	records       []Record
	err           error
}

// NewRecorder returns a recorder streaming CSV to out. A nil out keeps
// records in memory only.
func NewRecorder(out io.Writer) *Recorder {
	return &Recorder{out: out}
}

// Observer returns a tick hook that samples world after every tick.
func (r *Recorder) Observer(world *sand.World) func(driver.TickResult) {
	return func(res driver.TickResult) {
		r.Add(Record{
			Tick:      res.Tick,
			Particles: world.Len(),
			Moved:     world.LastMoves(),
			Held:      res.Held,
			State:     res.State.String(),
		})
	}
}

// Add appends rec and writes it out. The first write error is kept and
// further writes are skipped; see Err.
func (r *Recorder) Add(rec Record) {
	r.records = append(r.records, rec)
	if r.out == nil || r.err != nil {
		return
	}
	records := []Record{rec}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.out); err != nil {
			r.err = fmt.Errorf("writing telemetry: %w", err)
			return
		}
		r.headerWritten = true
		return
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.out); err != nil {
		r.err = fmt.Errorf("writing telemetry: %w", err)
	}
}

// Records returns everything recorded so far.
func (r *Recorder) Records() []Record { return r.records }

// Err returns the first write error, if any.
func (r *Recorder) Err() error { return r.err }

// Moves returns the per-tick move counts as a series.
func (r *Recorder) Moves() []float64 {
	out := make([]float64, len(r.records))
	for i, rec := range r.records {
		out[i] = float64(rec.Moved)
	}
	return out
}

// ReadRecords parses CSV produced by a Recorder.
func ReadRecords(in io.Reader) ([]Record, error) {
	var records []Record
	if err := gocsv.Unmarshal(in, &records); err != nil {
		return nil, fmt.Errorf("reading telemetry: %w", err)
	}
	return records, nil
}
