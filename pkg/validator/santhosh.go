package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaURL is the resource location given to in-memory schemas. Relative
// $refs resolve against it; nothing is ever fetched from it.
const schemaURL = "https://conform.invalid/schema.json"

type santhosh struct {
	draft *jsonschema.Draft
}

func newSanthosh(d Draft) (Compiler, error) {
	var draft *jsonschema.Draft
	switch d {
	case Draft4:
		draft = jsonschema.Draft4
	case Draft6:
		draft = jsonschema.Draft6
	case Draft7:
		draft = jsonschema.Draft7
	case Draft2019_09:
		draft = jsonschema.Draft2019
	case Draft2020_12:
		draft = jsonschema.Draft2020
	default:
		return nil, fmt.Errorf("santhosh: unsupported draft %q", d)
	}
	return &santhosh{draft: draft}, nil
}

func (s *santhosh) Name() string { return "santhosh" }

// Compile uses a fresh compiler per schema so resources never leak between
// test cases.
func (s *santhosh) Compile(raw json.RawMessage) (Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, compileError(raw, err)
	}
	c := jsonschema.NewCompiler()
	c.DefaultDraft(s.draft)
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, compileError(raw, err)
	}
	sch, err := c.Compile(schemaURL)
	if err != nil {
		return nil, compileError(raw, err)
	}
	return &santhoshSchema{schema: sch}, nil
}

type santhoshSchema struct {
	schema *jsonschema.Schema
}

func (s *santhoshSchema) Validate(raw json.RawMessage) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode instance: %w", err)
	}
	err = s.schema.Validate(inst)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if errors.As(err, &verr) {
		return &ValidationError{Message: "schema validation failed", Causes: detailLines(verr.Error())}
	}
	return err
}

// detailLines drops the headline of a multi-line library message and keeps
// the indented detail lines.
func detailLines(msg string) []string {
	lines := strings.Split(strings.TrimSpace(msg), "\n")
	if len(lines) > 1 {
		lines = lines[1:]
	}
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(l), "-"))
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
