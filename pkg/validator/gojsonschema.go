package validator

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

type goJSONSchema struct {
	draft gojsonschema.Draft
}

func newGoJSONSchema(d Draft) (Compiler, error) {
	var draft gojsonschema.Draft
	switch d {
	case Draft4:
		draft = gojsonschema.Draft4
	case Draft6:
		draft = gojsonschema.Draft6
	case Draft7:
		draft = gojsonschema.Draft7
	default:
		return nil, fmt.Errorf("gojsonschema: unsupported draft %q (draft4, draft6 and draft7 only)", d)
	}
	return &goJSONSchema{draft: draft}, nil
}

func (g *goJSONSchema) Name() string { return "gojsonschema" }

func (g *goJSONSchema) Compile(raw json.RawMessage) (Schema, error) {
	sl := gojsonschema.NewSchemaLoader()
	sl.Draft = g.draft
	sl.AutoDetect = false
	sch, err := sl.Compile(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, compileError(raw, err)
	}
	return &goJSONSchemaSchema{schema: sch}, nil
}

type goJSONSchemaSchema struct {
	schema *gojsonschema.Schema
}

func (s *goJSONSchemaSchema) Validate(raw json.RawMessage) error {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("gojsonschema: %w", err)
	}
	if result.Valid() {
		return nil
	}
	causes := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		causes = append(causes, re.String())
	}
	return &ValidationError{Message: "schema validation failed", Causes: causes}
}
