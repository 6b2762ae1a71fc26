package magetasks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/magefile/mage/sh"
)

// Matrix lists, per validator, the suite drafts it is run against.
var Matrix = map[string][]string{
	"santhosh":     {"draft4", "draft6", "draft7", "draft2019-09", "draft2020-12"},
	"gojsonschema": {"draft4", "draft6", "draft7"},
	"kaptinlin":    {"draft2020-12"},
}

// Pair is one validator/draft run.
type Pair struct {
	Validator string
	Draft     string
}

// Pairs returns the Matrix flattened in a stable order.
func Pairs() []Pair {
	names := make([]string, 0, len(Matrix))
	for name := range Matrix {
		names = append(names, name)
	}
	sort.Strings(names)

	var pairs []Pair
	for _, name := range names {
		for _, d := range Matrix[name] {
			pairs = append(pairs, Pair{Validator: name, Draft: d})
		}
	}
	return pairs
}

// ConformanceArgs builds the conform command line for one pair. refRemote
// needs a local HTTP server and is skipped.
func ConformanceArgs(p Pair) []string {
	return []string{
		"--validator", p.Validator,
		"--draft", p.Draft,
		"--tests", filepath.Join(SuiteDir, "tests", p.Draft),
		"--exclude", "refRemote",
		"--format", "llm",
	}
}

// EnsureSuite clones the JSON-Schema-Test-Suite when SuiteDir is missing.
func EnsureSuite() error {
	if _, err := os.Stat(SuiteDir); err == nil {
		return nil
	}
	return Run("Clone suite", "git", "clone", "--depth", "1", SuiteURL, SuiteDir)
}

// Conformance runs the built binary for every pair. Non-conformance (exit 1)
// is reported; usage or corpus errors (exit 2) abort.
func Conformance() error {
	PrintH2Header("Conformance")
	if err := EnsureSuite(); err != nil {
		return err
	}

	var failing []string
	for _, p := range Pairs() {
		PrintInfo(p.Validator + " · " + p.Draft)
		ran, err := sh.Exec(nil, Out, os.Stderr, BinPath, ConformanceArgs(p)...)
		switch code := sh.ExitStatus(err); {
		case !ran || code >= 2:
			PrintError(fmt.Sprintf("%s %s: %v", p.Validator, p.Draft, err))
			return fmt.Errorf("conformance %s %s: %w", p.Validator, p.Draft, err)
		case code == 1:
			failing = append(failing, p.Validator+"/"+p.Draft)
		}
	}

	if len(failing) > 0 {
		PrintWarning(fmt.Sprintf("%d/%d runs have non-conforming vectors: %v", len(failing), len(Pairs()), failing))
		return nil
	}
	PrintSuccess("All runs conform")
	return nil
}
