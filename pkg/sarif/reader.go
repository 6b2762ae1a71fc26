package sarif

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadFile parses a SARIF file from disk.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sarif file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses SARIF from an io.Reader.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode sarif: %w", err)
	}
	if doc.Version == "" {
		return nil, fmt.Errorf("missing sarif version")
	}
	return &doc, nil
}

// Stats counts results in a document.
type Stats struct {
	Total   int
	ByLevel map[string]int // error, warning, note, none
	ByRule  map[string]int // e.g. false-positive
	ByFile  map[string]int // corpus file URI
}

// ComputeStats tallies every result of every run.
func ComputeStats(doc *Document) Stats {
	stats := Stats{
		ByLevel: make(map[string]int),
		ByRule:  make(map[string]int),
		ByFile:  make(map[string]int),
	}
	for _, run := range doc.Runs {
		for _, result := range run.Results {
			stats.Total++
			stats.ByLevel[result.Level]++
			stats.ByRule[result.RuleID]++
			if len(result.Locations) > 0 {
				stats.ByFile[result.Locations[0].PhysicalLocation.ArtifactLocation.URI]++
			}
		}
	}
	return stats
}
