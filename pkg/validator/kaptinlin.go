package validator

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/kaptinlin/jsonschema"
)

// kaptinlin implements draft 2020-12 only; the configured draft is recorded
// for reporting but does not change evaluation.
type kaptinlin struct {
	draft Draft
}

func newKaptinlin(d Draft) (Compiler, error) {
	return &kaptinlin{draft: d}, nil
}

func (k *kaptinlin) Name() string { return "kaptinlin" }

func (k *kaptinlin) Compile(raw json.RawMessage) (Schema, error) {
	compiler := jsonschema.NewCompiler()
	sch, err := compiler.Compile(raw)
	if err != nil {
		return nil, compileError(raw, err)
	}
	return &kaptinlinSchema{schema: sch}, nil
}

type kaptinlinSchema struct {
	schema *jsonschema.Schema
}

func (s *kaptinlinSchema) Validate(raw json.RawMessage) error {
	result := s.schema.ValidateJSON(raw)
	if result.IsValid() {
		return nil
	}
	keys := make([]string, 0, len(result.Errors))
	for key := range result.Errors {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	causes := make([]string, 0, len(keys))
	for _, key := range keys {
		causes = append(causes, fmt.Sprintf("%s: %v", key, result.Errors[key]))
	}
	return &ValidationError{Message: "schema validation failed", Causes: causes}
}
