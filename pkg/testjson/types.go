// Package testjson writes conformance results as a go test -json event
// stream, so existing test-output tooling can consume a conformance run.
//
// Decode and ComputeStats read a stream back. They exist for round-trip
// checks of what the encoder emits and are not used on the report path.
package testjson

import "time"

// Actions used in the emitted stream.
const (
	ActionStart  = "start"
	ActionRun    = "run"
	ActionOutput = "output"
	ActionPass   = "pass"
	ActionFail   = "fail"
	ActionSkip   = "skip"
)

// TestEvent mirrors one line of go test -json output (cmd/test2json).
type TestEvent struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test,omitempty"`
	Elapsed float64   `json:"Elapsed,omitempty"`
	Output  string    `json:"Output,omitempty"`
}
