// Package validator wraps third-party JSON Schema libraries behind one
// compile/validate contract.
//
// A Compiler turns a schema document into a Schema. Schema.Validate returns
// nil when the instance is accepted and a *ValidationError when it is
// rejected. Any other error means the backend misbehaved.
package validator

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/gowebpki/jcs"
)

// Compiler compiles schema documents for one backend and draft.
type Compiler interface {
	Name() string
	Compile(schema json.RawMessage) (Schema, error)
}

// Schema is a compiled schema.
type Schema interface {
	Validate(instance json.RawMessage) error
}

// Draft identifies a JSON Schema dialect.
type Draft string

const (
	Draft4       Draft = "draft4"
	Draft6       Draft = "draft6"
	Draft7       Draft = "draft7"
	Draft2019_09 Draft = "draft2019-09"
	Draft2020_12 Draft = "draft2020-12"
)

// Drafts lists the recognized drafts, oldest first.
var Drafts = []Draft{Draft4, Draft6, Draft7, Draft2019_09, Draft2020_12}

// ParseDraft accepts the canonical names plus the suite directory spellings
// ("draft2019-09", "draft2020-12") and bare years.
func ParseDraft(s string) (Draft, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "draft4", "4":
		return Draft4, nil
	case "draft6", "6":
		return Draft6, nil
	case "draft7", "7":
		return Draft7, nil
	case "draft2019-09", "2019-09", "2019":
		return Draft2019_09, nil
	case "draft2020-12", "2020-12", "2020":
		return Draft2020_12, nil
	}
	return "", fmt.Errorf("unknown draft %q", s)
}

// ValidationError is the rejection signal: the instance does not conform.
type ValidationError struct {
	Message string
	Causes  []string // backend-specific detail, one line each
}

func (e *ValidationError) Error() string {
	if len(e.Causes) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Causes, "; ")
}

// CompileError reports a schema the backend refused to compile.
type CompileError struct {
	Schema string // schema text as given
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile schema %s: %v", e.Schema, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Factory builds a Compiler for a draft.
type Factory func(draft Draft) (Compiler, error)

var registry = map[string]Factory{
	"santhosh":     newSanthosh,
	"kaptinlin":    newKaptinlin,
	"gojsonschema": newGoJSONSchema,
}

// Default is the backend used when none is configured.
const Default = "santhosh"

// Names returns the registered backend names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New returns the named backend configured for draft.
func New(name string, draft Draft) (Compiler, error) {
	if name == "" {
		name = Default
	}
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown validator %q (expected one of %s)", name, strings.Join(Names(), ", "))
	}
	return f(draft)
}

func compileError(schema json.RawMessage, err error) *CompileError {
	return &CompileError{Schema: Canonical(schema), Err: err}
}

// Canonical renders raw JSON in RFC 8785 canonical form, falling back to the
// input text when it does not parse.
func Canonical(raw json.RawMessage) string {
	out, err := jcs.Transform(raw)
	if err != nil {
		return strings.TrimSpace(string(raw))
	}
	return string(out)
}
