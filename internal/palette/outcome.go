package palette

import (
	"fmt"

	"github.com/jmylchreest/cetheme/internal/schema"
)

// Status is the result of offering one candidate file to the engine.
type Status int

const (
	// StatusImported means the candidate was merged as a new palette.
	StatusImported Status = iota
	// StatusDuplicate means a theme with the same name is already installed.
	StatusDuplicate
	// StatusInvalid means the candidate failed schema validation.
	StatusInvalid
	// StatusNotFound means the candidate file could not be located.
	StatusNotFound
	// StatusFailed means the candidate validated but could not be read or attached.
	StatusFailed
)

var statusNames = map[Status]string{
	StatusImported:  "imported",
	StatusDuplicate: "duplicate",
	StatusInvalid:   "invalid",
	StatusNotFound:  "not-found",
	StatusFailed:    "failed",
}

// String returns the status name.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Outcome describes what happened to one candidate.
type Outcome struct {
	Path       string
	Status     Status
	ThemeName  string
	PaletteID  int // Only meaningful for StatusImported
	Diagnostic *schema.Diagnostic
	Err        error
}

// Report collects the outcomes of one import request.
type Report struct {
	RunID    string
	Outcomes []Outcome
}

func (r *Report) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Count returns the number of outcomes with the given status.
func (r Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Imported returns the outcomes that produced a new palette.
func (r Report) Imported() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusImported {
			out = append(out, o)
		}
	}
	return out
}

// Skipped returns the number of candidates that did not produce a palette.
func (r Report) Skipped() int {
	return len(r.Outcomes) - r.Count(StatusImported)
}

// Merge appends the outcomes of other to r.
func (r *Report) Merge(other Report) {
	r.Outcomes = append(r.Outcomes, other.Outcomes...)
}
