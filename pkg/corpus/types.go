// Package corpus loads JSON-Schema-Test-Suite style test files.
//
// A corpus file is a JSON array of test cases:
//
//	[{"description": "...", "schema": {...}, "tests": [
//	    {"description": "...", "data": ..., "valid": true}
//	]}]
//
// Schemas and instances are kept as raw JSON; interpreting them is the
// validator's job.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Corpus is the set of test files discovered for one run.
type Corpus struct {
	Root    string   // path the corpus was loaded from
	Files   []File   // parsed files in name order
	Skipped []string // file names excluded by stem
}

// File is one parsed corpus file.
type File struct {
	Name  string // base name, e.g. "type.json"
	Path  string // path on disk, or archive path + "#" + member
	Cases []Case
}

// Case is one schema with its test vectors.
type Case struct {
	Description string          `json:"description"`
	Schema      json.RawMessage `json:"schema"`
	Tests       []Vector        `json:"tests"`
}

// Vector is one instance with its expected validity.
type Vector struct {
	Description string          `json:"description"`
	Data        json.RawMessage `json:"data"`
	Valid       bool            `json:"valid"`
}

// Vectors returns the number of test vectors across all cases in the file.
func (f *File) Vectors() int {
	n := 0
	for _, c := range f.Cases {
		n += len(c.Tests)
	}
	return n
}

// Vectors returns the number of test vectors across the corpus.
func (c *Corpus) Vectors() int {
	n := 0
	for i := range c.Files {
		n += c.Files[i].Vectors()
	}
	return n
}

// ErrInvalidPath is wrapped by Error when the corpus path is neither a
// directory nor a recognized file.
var ErrInvalidPath = errors.New("not a valid corpus path")

// Error is a fatal corpus problem: bad path, unreadable or malformed file.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("corpus %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// UnmarshalJSON rejects vectors without a "valid" or "data" key. An explicit
// "data": null is kept as the JSON null instance.
func (v *Vector) UnmarshalJSON(data []byte) error {
	var raw struct {
		Description string          `json:"description"`
		Data        json.RawMessage `json:"data"`
		Valid       *bool           `json:"valid"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Valid == nil {
		return fmt.Errorf("test %q: missing \"valid\"", raw.Description)
	}
	if raw.Data == nil {
		return fmt.Errorf("test %q: missing \"data\"", raw.Description)
	}
	v.Description = raw.Description
	v.Data = raw.Data
	v.Valid = *raw.Valid
	return nil
}
