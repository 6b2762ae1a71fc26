package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/conform/pkg/validator"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFORM_TESTS", "CONFORM_VALIDATOR", "CONFORM_DRAFT", "CONFORM_EXCLUDE",
		"CONFORM_FORMAT", "CONFORM_THEME", "NO_COLOR", "CONFORM_DEBUG",
	} {
		t.Setenv(k, "")
	}
}

func TestResolve_Defaults(t *testing.T) {
	clearEnv(t)
	r, err := Resolve(Flags{}, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultTests, r.Tests)
	assert.Equal(t, validator.Default, r.Validator)
	assert.Equal(t, validator.Draft4, r.Draft)
	assert.Equal(t, "auto", r.Format)
	assert.Equal(t, "default", r.Theme)
	assert.Empty(t, r.Exclude)
	assert.Equal(t, SourceDefault, r.Sources["tests"])
	assert.Equal(t, SourceDefault, r.Sources["debug"])
}

func TestResolve_Priority(t *testing.T) {
	file := &File{Tests: "file-dir", Validator: "gojsonschema", Draft: "draft6", Format: "llm", Exclude: []string{"a"}}

	tests := []struct {
		name       string
		flags      Flags
		env        map[string]string
		wantTests  string
		wantSource Source
	}{
		{
			name:       "file over default",
			wantTests:  "file-dir",
			wantSource: SourceFile,
		},
		{
			name:       "env over file",
			env:        map[string]string{"CONFORM_TESTS": "env-dir"},
			wantTests:  "env-dir",
			wantSource: SourceEnv,
		},
		{
			name:       "cli over env",
			flags:      Flags{Tests: "cli-dir", TestsSet: true},
			env:        map[string]string{"CONFORM_TESTS": "env-dir"},
			wantTests:  "cli-dir",
			wantSource: SourceCLI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			r, err := Resolve(tt.flags, file)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTests, r.Tests)
			assert.Equal(t, tt.wantSource, r.Sources["tests"])
			assert.Equal(t, "gojsonschema", r.Validator)
			assert.Equal(t, validator.Draft6, r.Draft)
		})
	}
}

func TestResolve_Exclude(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFORM_EXCLUDE", "refRemote, definitions")
	r, err := Resolve(Flags{}, &File{Exclude: []string{"ignored"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"refRemote", "definitions"}, r.Exclude)
	assert.Equal(t, SourceEnv, r.Sources["exclude"])

	r, err = Resolve(Flags{Exclude: []string{"a,b", "c"}, ExcludeSet: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, r.Exclude)
}

func TestResolve_NoColorSelectsMono(t *testing.T) {
	clearEnv(t)
	t.Setenv("NO_COLOR", "1")

	r, err := Resolve(Flags{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "mono", r.Theme)
	assert.Equal(t, SourceEnv, r.Sources["theme"])

	r, err = Resolve(Flags{Theme: "orca", ThemeSet: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, "orca", r.Theme, "explicit --theme wins over NO_COLOR")
}

func TestResolve_Debug(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFORM_DEBUG", "true")
	r, err := Resolve(Flags{}, nil)
	require.NoError(t, err)
	assert.True(t, r.Debug)

	r, err = Resolve(Flags{Debug: false, DebugSet: true}, nil)
	require.NoError(t, err)
	assert.False(t, r.Debug)
	assert.Equal(t, SourceCLI, r.Sources["debug"])
}

func TestResolve_Validation(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
	}{
		{"unknown validator", Flags{Validator: "ajv", ValidatorSet: true}},
		{"unknown draft", Flags{Draft: "draft3", DraftSet: true}},
		{"unknown format", Flags{Format: "html", FormatSet: true}},
		{"unknown theme", Flags{Theme: "neon", ThemeSet: true}},
		{"negative parallel", Flags{Parallel: -1, ParallelSet: true}},
		{"empty tests", Flags{Tests: "", TestsSet: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Resolve(tt.flags, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
		})
	}
}
