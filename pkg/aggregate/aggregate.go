// Package aggregate tallies classified results into counts and a summary.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/dkoosis/conform/pkg/classify"
)

// Counts maps each outcome to the number of vectors that received it.
type Counts map[classify.Outcome]int

// Total returns the sum of all counts.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Aggregator accumulates file results for one run. The zero value is not
// usable; call New.
type Aggregator struct {
	counts  Counts
	files   []classify.FileResult
	skipped []string
}

// New returns an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{counts: make(Counts)}
}

// AddFile records a classified file and counts its vectors.
func (a *Aggregator) AddFile(f classify.FileResult) {
	a.files = append(a.files, f)
	for _, c := range f.Cases {
		for _, v := range c.Vectors {
			a.counts[v.Outcome]++
		}
	}
}

// Skip records a file excluded from the run.
func (a *Aggregator) Skip(names ...string) {
	a.skipped = append(a.skipped, names...)
}

// Merge folds other into a. Counts add; files and skips append in order.
func (a *Aggregator) Merge(other *Aggregator) {
	for k, v := range other.counts {
		a.counts[k] += v
	}
	a.files = append(a.files, other.files...)
	a.skipped = append(a.skipped, other.skipped...)
}

// Counts returns a copy of the outcome counts.
func (a *Aggregator) Counts() Counts {
	out := make(Counts, len(a.counts))
	for k, v := range a.counts {
		out[k] = v
	}
	return out
}

// Total returns the number of vectors processed.
func (a *Aggregator) Total() int { return a.counts.Total() }

// Files returns the recorded file results in insertion order.
func (a *Aggregator) Files() []classify.FileResult { return a.files }

// Skipped returns the excluded file names.
func (a *Aggregator) Skipped() []string { return a.skipped }

// Line is one row of the summary.
type Line struct {
	Label   string
	Outcome classify.Outcome // empty for totals and rollups
	Count   int
	Total   int
}

// Percent returns Count as a percentage of Total.
func (l Line) Percent() float64 { return Percent(l.Count, l.Total) }

// String renders "label: count/total pct".
func (l Line) String() string {
	return fmt.Sprintf("%s: %d/%d %s", l.Label, l.Count, l.Total, FormatPercent(l.Count, l.Total))
}

// Summary is the end-of-run report.
type Summary struct {
	Total    int    // vectors
	Failing  []Line // FALSE_POSITIVE, FALSE_NEGATIVE, UNDEFINED
	Failures Line
	Passing  []Line // TRUE_POSITIVE, TRUE_NEGATIVE
	Passes   Line
	Cases    Line // cases with at least one non-passing vector
	Files    Line // files with at least one non-passing vector
	Skipped  int
}

// Summary computes the summary from the current state.
func (a *Aggregator) Summary() Summary {
	total := a.Total()
	s := Summary{Total: total, Skipped: len(a.skipped)}

	for _, o := range classify.Failing {
		n := a.counts[o]
		s.Failing = append(s.Failing, Line{Label: string(o), Outcome: o, Count: n, Total: total})
		s.Failures.Count += n
	}
	s.Failures.Label, s.Failures.Total = "failures", total

	for _, o := range classify.Passing {
		n := a.counts[o]
		s.Passing = append(s.Passing, Line{Label: string(o), Outcome: o, Count: n, Total: total})
		s.Passes.Count += n
	}
	s.Passes.Label, s.Passes.Total = "passes", total

	s.Cases.Label, s.Files.Label = "cases", "files"
	for i := range a.files {
		f := &a.files[i]
		s.Files.Total++
		if f.Status() != classify.StatusPass {
			s.Files.Count++
		}
		for j := range f.Cases {
			s.Cases.Total++
			if f.Cases[j].Status() != classify.StatusPass {
				s.Cases.Count++
			}
		}
	}
	return s
}

// Failed reports whether any non-passing outcome was recorded.
func (s Summary) Failed() bool { return s.Failures.Count > 0 }

// Err returns a *FailureError when the run failed, nil otherwise.
func (s Summary) Err() error {
	if !s.Failed() {
		return nil
	}
	return &FailureError{Summary: s}
}

// FailureError is the run-level failure condition. Its message is the
// concise summary printed on stderr.
type FailureError struct {
	Summary Summary
}

func (e *FailureError) Error() string {
	s := e.Summary
	parts := make([]string, 0, len(s.Failing))
	for _, l := range s.Failing {
		if l.Count > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", l.Outcome, l.Count))
		}
	}
	return fmt.Sprintf("%s (%s); %s; %s",
		s.Failures, strings.Join(parts, " "), s.Cases, s.Files)
}

// Percent returns n as a percentage of total; zero when total is zero.
func Percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

// FormatPercent renders n/total with one decimal place, e.g. "33.3%".
func FormatPercent(n, total int) string {
	return fmt.Sprintf("%.1f%%", Percent(n, total))
}
