package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/dkoosis/conform/pkg/render"
	"github.com/dkoosis/conform/pkg/validator"
)

// Source records where a resolved value came from.
type Source string

const (
	SourceCLI     Source = "cli"
	SourceEnv     Source = "env"
	SourceFile    Source = "file"
	SourceDefault Source = "default"
)

// Defaults.
const (
	DefaultTests  = "JSON-Schema-Test-Suite/tests/draft4"
	DefaultDraft  = validator.Draft4
	DefaultFormat = "auto"
	DefaultTheme  = "default"
)

// Formats lists the accepted --format values.
var Formats = []string{"auto", "terminal", "llm", "json", "table", "markdown", "sarif", "gotest"}

// Flags holds command-line values plus whether each was set explicitly.
type Flags struct {
	Tests     string
	Validator string
	Draft     string
	Exclude   []string
	Format    string
	Theme     string
	Verbose   bool
	Parallel  int
	Debug     bool

	TestsSet     bool
	ValidatorSet bool
	DraftSet     bool
	ExcludeSet   bool
	FormatSet    bool
	ThemeSet     bool
	VerboseSet   bool
	ParallelSet  bool
	DebugSet     bool
}

// Resolved is the final configuration for one run.
type Resolved struct {
	Tests     string
	Validator string
	Draft     validator.Draft
	Exclude   []string
	Format    string
	Theme     string
	Verbose   bool
	Parallel  int
	Debug     bool

	// ConfigPath is the file that was read, empty when none.
	ConfigPath string
	// Sources maps setting name to where its value came from.
	Sources map[string]Source
}

// Resolve merges flags, environment and file (highest first) over defaults
// and validates the result.
func Resolve(flags Flags, file *File) (*Resolved, error) {
	if file == nil {
		file = &File{}
	}
	r := &Resolved{Sources: make(map[string]Source)}

	r.Tests = resolveString(r, "tests", flags.Tests, flags.TestsSet, "CONFORM_TESTS", file.Tests, DefaultTests)
	r.Validator = resolveString(r, "validator", flags.Validator, flags.ValidatorSet, "CONFORM_VALIDATOR", file.Validator, validator.Default)
	draft := resolveString(r, "draft", flags.Draft, flags.DraftSet, "CONFORM_DRAFT", file.Draft, string(DefaultDraft))
	r.Format = resolveString(r, "format", flags.Format, flags.FormatSet, "CONFORM_FORMAT", file.Format, DefaultFormat)
	r.Theme = resolveString(r, "theme", flags.Theme, flags.ThemeSet, "CONFORM_THEME", file.Theme, DefaultTheme)

	// NO_COLOR (https://no-color.org) forces mono unless --theme was given.
	if !flags.ThemeSet && (os.Getenv("NO_COLOR") != "" || file.NoColor) {
		if os.Getenv("NO_COLOR") != "" {
			r.Sources["theme"] = SourceEnv
		} else {
			r.Sources["theme"] = SourceFile
		}
		r.Theme = "mono"
	}

	switch {
	case flags.ExcludeSet:
		r.Exclude, r.Sources["exclude"] = SplitList(flags.Exclude), SourceCLI
	case os.Getenv("CONFORM_EXCLUDE") != "":
		r.Exclude, r.Sources["exclude"] = SplitList([]string{os.Getenv("CONFORM_EXCLUDE")}), SourceEnv
	case len(file.Exclude) > 0:
		r.Exclude, r.Sources["exclude"] = SplitList(file.Exclude), SourceFile
	default:
		r.Sources["exclude"] = SourceDefault
	}

	switch {
	case flags.VerboseSet:
		r.Verbose, r.Sources["verbose"] = flags.Verbose, SourceCLI
	case file.Verbose:
		r.Verbose, r.Sources["verbose"] = true, SourceFile
	default:
		r.Sources["verbose"] = SourceDefault
	}

	switch {
	case flags.ParallelSet:
		r.Parallel, r.Sources["parallel"] = flags.Parallel, SourceCLI
	case file.Parallel != 0:
		r.Parallel, r.Sources["parallel"] = file.Parallel, SourceFile
	default:
		r.Sources["parallel"] = SourceDefault
	}

	envDebug := getEnvBool("CONFORM_DEBUG")
	switch {
	case flags.DebugSet:
		r.Debug, r.Sources["debug"] = flags.Debug, SourceCLI
	case envDebug != nil:
		r.Debug, r.Sources["debug"] = *envDebug, SourceEnv
	case file.Debug:
		r.Debug, r.Sources["debug"] = true, SourceFile
	default:
		r.Sources["debug"] = SourceDefault
	}

	d, err := validator.ParseDraft(draft)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	r.Draft = d

	if err := validateResolved(r); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return r, nil
}

func resolveString(r *Resolved, name, cli string, cliSet bool, envKey, file, def string) string {
	if cliSet {
		r.Sources[name] = SourceCLI
		return cli
	}
	if v := os.Getenv(envKey); v != "" {
		r.Sources[name] = SourceEnv
		return v
	}
	if file != "" {
		r.Sources[name] = SourceFile
		return file
	}
	r.Sources[name] = SourceDefault
	return def
}

// SplitList flattens comma separated entries, trimming blanks.
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set, or a pointer to the boolean value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}

func validateResolved(r *Resolved) error {
	if r.Tests == "" {
		return fmt.Errorf("tests path cannot be empty")
	}
	if !slices.Contains(validator.Names(), r.Validator) {
		return fmt.Errorf("unknown validator %q (must be one of: %s)", r.Validator, strings.Join(validator.Names(), ", "))
	}
	if !slices.Contains(Formats, r.Format) {
		return fmt.Errorf("invalid format %q (must be one of: %s)", r.Format, strings.Join(Formats, ", "))
	}
	if !slices.Contains(render.ThemeNames, r.Theme) {
		return fmt.Errorf("unknown theme %q (must be one of: %s)", r.Theme, strings.Join(render.ThemeNames, ", "))
	}
	if r.Parallel < 0 {
		return fmt.Errorf("parallel must not be negative, got: %d", r.Parallel)
	}
	return nil
}
