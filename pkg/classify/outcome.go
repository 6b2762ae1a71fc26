// Package classify maps validator behaviour on test vectors to outcomes.
//
// Every vector gets exactly one Outcome. When a case's schema does not
// compile, all of its vectors are UNDEFINED and carry the compile error.
package classify

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkoosis/conform/pkg/validator"
)

// Outcome is the classification of one vector.
type Outcome string

const (
	TruePositive  Outcome = "TRUE_POSITIVE"  // expected valid, accepted
	TrueNegative  Outcome = "TRUE_NEGATIVE"  // expected invalid, rejected
	FalsePositive Outcome = "FALSE_POSITIVE" // expected invalid, accepted
	FalseNegative Outcome = "FALSE_NEGATIVE" // expected valid, rejected
	Undefined     Outcome = "UNDEFINED"      // compile failure or unexpected error
)

// Failing lists the non-passing outcomes in report order.
var Failing = []Outcome{FalsePositive, FalseNegative, Undefined}

// Passing lists the passing outcomes in report order.
var Passing = []Outcome{TruePositive, TrueNegative}

// Outcomes lists every outcome: failing first, then passing.
var Outcomes = append(append([]Outcome{}, Failing...), Passing...)

// Passing reports whether o counts as a pass.
func (o Outcome) Passing() bool {
	return o == TruePositive || o == TrueNegative
}

// Status returns the display status of o.
func (o Outcome) Status() Status {
	switch o {
	case TruePositive, TrueNegative:
		return StatusPass
	case Undefined:
		return StatusUndefined
	default:
		return StatusFail
	}
}

// Status orders outcomes for aggregate display: higher is worse.
type Status int

const (
	StatusPass Status = iota
	StatusUndefined
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusFail:
		return "fail"
	case StatusUndefined:
		return "undefined"
	default:
		return "pass"
	}
}

// ErrorInfo is an error captured for display.
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *ErrorInfo) String() string {
	if e == nil {
		return ""
	}
	return e.Type + ": " + e.Message
}

// Capture records err's concrete type name and message.
func Capture(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	return &ErrorInfo{Type: fmt.Sprintf("%T", err), Message: err.Error()}
}

// Classify maps an expectation and a validation result to an outcome.
// A *validator.ValidationError is the rejection signal; any other non-nil
// error is UNDEFINED. The rejection error is kept for FALSE_NEGATIVE so the
// report can show why a valid instance was refused.
func Classify(expectValid bool, err error) (Outcome, *ErrorInfo) {
	if err == nil {
		if expectValid {
			return TruePositive, nil
		}
		return FalsePositive, nil
	}
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		if expectValid {
			return FalseNegative, Capture(err)
		}
		return TrueNegative, nil
	}
	return Undefined, Capture(err)
}

// VectorResult is the outcome of one test vector.
type VectorResult struct {
	Description string          `json:"description"`
	Data        json.RawMessage `json:"data"`
	Valid       bool            `json:"valid"`
	Outcome     Outcome         `json:"outcome"`
	Err         *ErrorInfo      `json:"error,omitempty"`
}

// CaseResult is the outcome of one test case.
type CaseResult struct {
	Description string         `json:"description"`
	SchemaErr   *ErrorInfo     `json:"schema_error,omitempty"`
	Vectors     []VectorResult `json:"vectors"`
}

// Status returns the worst status among the case's vectors. A case whose
// schema failed to compile is at least UNDEFINED even with no vectors.
func (c *CaseResult) Status() Status {
	s := StatusPass
	if c.SchemaErr != nil {
		s = StatusUndefined
	}
	for _, v := range c.Vectors {
		if vs := v.Outcome.Status(); vs > s {
			s = vs
		}
	}
	return s
}

// FileResult is the outcome of one corpus file.
type FileResult struct {
	Name  string       `json:"name"`
	Path  string       `json:"path"`
	Cases []CaseResult `json:"cases"`
}

// Status returns the worst status among the file's cases.
func (f *FileResult) Status() Status {
	s := StatusPass
	for i := range f.Cases {
		if cs := f.Cases[i].Status(); cs > s {
			s = cs
		}
	}
	return s
}

// Vectors returns the number of vectors classified in the file.
func (f *FileResult) Vectors() int {
	n := 0
	for _, c := range f.Cases {
		n += len(c.Vectors)
	}
	return n
}
