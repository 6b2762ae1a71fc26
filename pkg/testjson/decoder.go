package testjson

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads a go test -json stream. Blank lines are skipped; a malformed
// line is an error naming its line number.
func Decode(r io.Reader) ([]TestEvent, error) {
	scanner := bufio.NewScanner(r)
	// Vector details can carry long instances.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var events []TestEvent
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev TestEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning test output: %w", err)
	}
	return events, nil
}

// Stats counts terminal test actions in a stream.
type Stats struct {
	Packages   int
	Passed     int
	Failed     int
	Skipped    int
	FailedPkgs []string
}

// ComputeStats tallies per-test pass/fail/skip actions. Package-level
// actions (no Test) decide FailedPkgs.
func ComputeStats(events []TestEvent) Stats {
	var s Stats
	seen := make(map[string]bool)
	for _, ev := range events {
		if !seen[ev.Package] {
			seen[ev.Package] = true
			s.Packages++
		}
		if ev.Test == "" {
			if ev.Action == ActionFail {
				s.FailedPkgs = append(s.FailedPkgs, ev.Package)
			}
			continue
		}
		switch ev.Action {
		case ActionPass:
			s.Passed++
		case ActionFail:
			s.Failed++
		case ActionSkip:
			s.Skipped++
		}
	}
	return s
}
