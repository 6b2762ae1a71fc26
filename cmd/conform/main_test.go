package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/conform/pkg/sarif"
	"github.com/dkoosis/conform/pkg/testjson"
)

// These exercise the full pipeline: corpus → classify → aggregate → render.

const integerCases = `[
	{
		"description": "integer type matches integers",
		"schema": {"type": "integer"},
		"tests": [
			{"description": "an integer is an integer", "data": 1, "valid": true},
			{"description": "a float is not an integer", "data": 1.1, "valid": false},
			{"description": "a string is not an integer", "data": "foo", "valid": false}
		]
	}
]`

const enumCases = `[
	{
		"description": "simple enum validation",
		"schema": {"enum": [1, 2, 3]},
		"tests": [
			{"description": "one of the enum is valid", "data": 1, "valid": true},
			{"description": "something else is invalid", "data": 4, "valid": false}
		]
	}
]`

// wrongCases marks a string as a valid integer, so a conforming validator
// produces one FALSE_NEGATIVE.
const wrongCases = `[
	{
		"description": "mislabelled",
		"schema": {"type": "integer"},
		"tests": [
			{"description": "a string marked valid", "data": "foo", "valid": true}
		]
	}
]`

const badSchemaCases = `[
	{
		"description": "type must be a string or array",
		"schema": {"type": 12},
		"tests": [
			{"description": "first", "data": 1, "valid": true},
			{"description": "second", "data": "x", "valid": false}
		]
	}
]`

func isolate(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFORM_TESTS", "CONFORM_VALIDATOR", "CONFORM_DRAFT", "CONFORM_EXCLUDE",
		"CONFORM_FORMAT", "CONFORM_THEME", "NO_COLOR", "CONFORM_DEBUG",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	return dir
}

func runConform(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_AllPass(t *testing.T) {
	isolate(t)
	dir := writeCorpus(t, map[string]string{"type.json": integerCases, "enum.json": enumCases})

	code, out, errOut := runConform(t, "--tests", dir, "--format", "llm")

	assert.Equal(t, 0, code, errOut)
	assert.Empty(t, errOut)
	assert.True(t, strings.HasPrefix(out, "SCOPE: PASS 5/5 vectors\n"), out)
	assert.Contains(t, out, "PASS 1. enum.json (2 tests)", "files are enumerated in sorted order")
	assert.Contains(t, out, "PASS 2. type.json (3 tests)")
	assert.NotContains(t, out, "integer type matches integers", "passing cases hidden without --verbose")
	assert.Contains(t, out, "False Positive: 0/5 0.0%")
	assert.Contains(t, out, "Passes: 5/5 100.0%")
	assert.NotContains(t, out, "\033[")
}

func TestRun_Verbose(t *testing.T) {
	isolate(t)
	dir := writeCorpus(t, map[string]string{"type.json": integerCases})

	code, out, _ := runConform(t, "--tests", dir, "--format", "llm", "--verbose")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "PASS 1. integer type matches integers")
	assert.Contains(t, out, "PASS 2. a float is not an integer (TRUE_NEGATIVE)")
	assert.Contains(t, out, "PASS 1. an integer is an integer (TRUE_POSITIVE)")
}

func TestRun_FailureExitsOneWithPercentage(t *testing.T) {
	isolate(t)
	dir := writeCorpus(t, map[string]string{"type.json": integerCases, "wrong.json": wrongCases})

	code, out, errOut := runConform(t, "--tests", dir, "--format", "llm")

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "SCOPE: FAIL 1/4 vectors (25.0%)")
	assert.Contains(t, out, "FAIL 1. a string marked valid (FALSE_NEGATIVE)")
	assert.Contains(t, out, `data: "foo" (expected valid=true)`)
	assert.Contains(t, out, "False Negative: 1/4 25.0%")
	assert.Contains(t, errOut, "conform: failures: 1/4 25.0% (FALSE_NEGATIVE=1)")
}

func TestRun_CompileFailureIsUndefined(t *testing.T) {
	isolate(t)
	dir := writeCorpus(t, map[string]string{"bad.json": badSchemaCases})

	code, out, errOut := runConform(t, "--tests", dir, "--format", "llm")

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "UNDEF 1. type must be a string or array (schema did not compile)")
	assert.Contains(t, out, "*validator.CompileError")
	assert.Contains(t, out, "Undefined: 2/2 100.0%")
	assert.Contains(t, errOut, "UNDEFINED=2")
}

func TestRun_Exclude(t *testing.T) {
	isolate(t)
	dir := writeCorpus(t, map[string]string{"type.json": integerCases, "wrong.json": wrongCases})

	code, out, errOut := runConform(t, "--tests", dir, "--format", "llm", "--exclude", "wrong")

	assert.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Skipped (1)")
	assert.Contains(t, out, "SKIP wrong.json")
	assert.Contains(t, out, "SCOPE: PASS 3/3 vectors", "skipped files are not counted")
	assert.Contains(t, out, "Files skipped: 1")
}

func TestRun_SingleFileAndArchive(t *testing.T) {
	isolate(t)
	dir := writeCorpus(t, map[string]string{"type.json": integerCases})

	code, out, _ := runConform(t, "--tests", filepath.Join(dir, "type.json"), "--format", "llm")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "PASS 3/3 vectors")

	archive := filepath.Join(dir, "mini.txtar")
	body := "-- type.json --\n" + integerCases + "\n-- wrong.json --\n" + wrongCases + "\n"
	require.NoError(t, os.WriteFile(archive, []byte(body), 0o600))

	code, out, _ = runConform(t, "--tests", archive, "--format", "llm")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "FAIL 1/4 vectors")
}

func TestRun_Validators(t *testing.T) {
	tests := []struct {
		validator string
		draft     string
	}{
		{"santhosh", "draft4"},
		{"santhosh", "draft2020-12"},
		{"gojsonschema", "draft7"},
		{"kaptinlin", "draft2020-12"},
	}
	for _, tt := range tests {
		t.Run(tt.validator+"/"+tt.draft, func(t *testing.T) {
			isolate(t)
			dir := writeCorpus(t, map[string]string{"type.json": integerCases, "enum.json": enumCases})

			code, out, errOut := runConform(t, "--tests", dir, "--format", "llm", "--validator", tt.validator, "--draft", tt.draft)
			assert.Equal(t, 0, code, errOut)
			assert.Contains(t, out, "PASS 5/5 vectors")
		})
	}
}

func TestRun_Parallel(t *testing.T) {
	isolate(t)
	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		files[name+".json"] = integerCases
	}
	files["f.json"] = wrongCases
	dir := writeCorpus(t, files)

	_, sequential, _ := runConform(t, "--tests", dir, "--format", "llm")
	code, parallel, _ := runConform(t, "--tests", dir, "--format", "llm", "--parallel", "4")

	assert.Equal(t, 1, code)
	assert.Equal(t, sequential, parallel, "report is independent of parallelism")
}

func TestRun_UsageAndCorpusErrors(t *testing.T) {
	isolate(t)
	dir := writeCorpus(t, map[string]string{"broken.json": `[{"description": "x", "schema": {}`})
	nullDir := writeCorpus(t, map[string]string{"n.json": "null", "o.json": "[]"})

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing path", []string{"--tests", filepath.Join(dir, "nope")}, "not a valid corpus path"},
		{"malformed json", []string{"--tests", dir}, "broken.json"},
		{"null top level", []string{"--tests", nullDir}, "n.json: top level must be an array"},
		{"unknown validator", []string{"--tests", dir, "--validator", "ajv"}, "unknown validator"},
		{"unknown format", []string{"--tests", dir, "--format", "html"}, "invalid format"},
		{"unknown flag", []string{"--nope"}, "flag provided but not defined"},
		{"stray argument", []string{"extra"}, "unexpected arguments"},
		{"missing config", []string{"--config", filepath.Join(dir, "none.yaml")}, "read config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runConform(t, tt.args...)
			assert.Equal(t, 2, code)
			assert.Contains(t, errOut, tt.wantErr)
		})
	}
}

func TestRun_ConfigFile(t *testing.T) {
	isolate(t)
	dir := writeCorpus(t, map[string]string{"type.json": integerCases, "wrong.json": wrongCases})
	cfgPath := filepath.Join(t.TempDir(), "conform.yaml")
	cfg := "tests: " + dir + "\nexclude: [wrong]\nformat: llm\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	code, out, errOut := runConform(t, "--config", cfgPath)
	assert.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "SKIP wrong.json")

	code, _, _ = runConform(t, "--config", cfgPath, "--exclude", "type")
	assert.Equal(t, 1, code, "--exclude overrides the file")
}

func TestRun_DebugLogsConfigPath(t *testing.T) {
	isolate(t)
	dir := writeCorpus(t, map[string]string{"type.json": integerCases})
	cfgPath := filepath.Join(t.TempDir(), "conform.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("tests: "+dir+"\nformat: llm\n"), 0o600))

	code, _, errOut := runConform(t, "--config", cfgPath, "--debug")
	assert.Equal(t, 0, code, errOut)
	assert.Contains(t, errOut, `msg="resolved config"`)
	assert.Contains(t, errOut, "config="+cfgPath)
	assert.Contains(t, errOut, "tests_source=file")

	code, _, errOut = runConform(t, "--config", cfgPath)
	assert.Equal(t, 0, code)
	assert.Empty(t, errOut, "debug lines stay off by default")
}

func TestRun_SARIF(t *testing.T) {
	isolate(t)
	dir := writeCorpus(t, map[string]string{"wrong.json": wrongCases})

	code, out, _ := runConform(t, "--tests", dir, "--format", "sarif")
	assert.Equal(t, 1, code)

	doc, err := sarif.Read(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", doc.Version)
	stats := sarif.ComputeStats(doc)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, map[string]int{"false-negative": 1}, stats.ByRule)
	assert.Equal(t, map[string]int{"error": 1}, stats.ByLevel)
}

func TestRun_GoTestJSON(t *testing.T) {
	isolate(t)
	dir := writeCorpus(t, map[string]string{"type.json": integerCases})

	code, out, _ := runConform(t, "--tests", dir, "--format", "gotest")
	assert.Equal(t, 0, code)

	events, err := testjson.Decode(strings.NewReader(out))
	require.NoError(t, err)
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, "pass", last.Action)
	assert.Equal(t, "conform/"+filepath.Base(dir)+"/type", last.Package)

	stats := testjson.ComputeStats(events)
	assert.Equal(t, 1, stats.Packages)
	assert.Equal(t, 4, stats.Passed, "one case plus three vectors")
	assert.Zero(t, stats.Failed)
}

func TestRun_TableAndJSONFormats(t *testing.T) {
	isolate(t)
	dir := writeCorpus(t, map[string]string{"type.json": integerCases, "wrong.json": wrongCases})

	code, out, _ := runConform(t, "--tests", dir, "--format", "table")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Outcomes by File")
	assert.Contains(t, out, "FALSE_NEGATIVE")

	code, out, _ = runConform(t, "--tests", dir, "--format", "markdown")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "### Outcomes by File")
	assert.Contains(t, out, "| wrong.json |")
	assert.NotContains(t, out, "┌")

	code, out, _ = runConform(t, "--tests", dir, "--format", "json")
	assert.Equal(t, 1, code)
	assert.True(t, json.Valid([]byte(out)))
}

func TestRun_Version(t *testing.T) {
	isolate(t)
	code, out, _ := runConform(t, "--version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "conform dev")
}
