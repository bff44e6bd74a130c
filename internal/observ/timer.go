// Package observ collects per-phase timings for pipeline runs.
package observ

import "time"

// PhaseReport is one finished phase, in milliseconds.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report aggregates every recorded phase plus the total.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
}

// Timer records pipeline phases. Begin returns a handle that End takes
// back, so phases may nest or overlap.
type Timer struct {
	phases []phase
}

func NewTimer() *Timer { return &Timer{} }

// Begin opens a phase and returns its handle.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, phase{name: name, start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase behind the handle, attaching an optional note.
// Unknown handles are ignored.
func (t *Timer) End(handle int, note string) {
	if handle < 0 || handle >= len(t.phases) {
		return
	}
	p := &t.phases[handle]
	p.dur = time.Since(p.start)
	p.note = note
}

// Report flattens the recorded phases in Begin order.
func (t *Timer) Report() Report {
	var r Report
	var total time.Duration
	for _, p := range t.phases {
		total += p.dur
		r.Phases = append(r.Phases, PhaseReport{
			Name:       p.name,
			DurationMS: millis(p.dur),
			Note:       p.note,
		})
	}
	r.TotalMS = millis(total)
	return r
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
