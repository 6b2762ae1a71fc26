package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/conform/pkg/pattern"
)

func samplePatterns() []pattern.Pattern {
	return []pattern.Pattern{
		&pattern.TestTable{
			Label:   "Skipped (1)",
			Results: []pattern.TestTableItem{{Name: "refRemote.json", Status: pattern.StatusSkip}},
		},
		&pattern.Tree{
			Label: "santhosh · draft4",
			Roots: []pattern.TreeNode{
				{
					Name: "1. type.json", Status: pattern.StatusFail, Note: "1/4 failing",
					Children: []pattern.TreeNode{{
						Name: "2. number", Status: pattern.StatusFail,
						Children: []pattern.TreeNode{{
							Name: "2. bool", Status: pattern.StatusFail, Note: "FALSE_POSITIVE",
							Details: "data: true (expected valid=false)",
						}},
					}},
				},
				{
					Name: "2. ref.json", Status: pattern.StatusUndefined, Note: "1/1 failing",
					Children: []pattern.TreeNode{{
						Name: "1. remote", Status: pattern.StatusUndefined, Note: "schema did not compile",
						Details: "*validator.CompileError: cannot load",
						Children: []pattern.TreeNode{{
							Name: "1. a", Status: pattern.StatusUndefined, Note: "UNDEFINED",
							Details: "l1\nl2\nl3\nl4\nl5",
						}},
					}},
				},
				{Name: "3. enum.json", Status: pattern.StatusPass, Note: "3 tests"},
			},
		},
		&pattern.Matrix{
			Label:   "Outcomes by File",
			Columns: []string{"False Positive", "False Negative", "Undefined", "True Positive", "True Negative"},
			Failing: 3,
			Rows: []pattern.MatrixRow{
				{Name: "type.json", Status: pattern.StatusFail, Counts: []int{1, 0, 0, 2, 1}},
				{Name: "ref.json", Status: pattern.StatusUndefined, Counts: []int{0, 0, 1, 0, 0}},
			},
			Footer: &pattern.MatrixRow{Name: "Total", Counts: []int{1, 0, 1, 2, 1}},
		},
		&pattern.Summary{
			Label:  "FAIL 2/5 vectors (40.0%)",
			Kind:   pattern.SummaryKindRun,
			Failed: true,
			Metrics: []pattern.SummaryItem{
				{Label: "Total", Value: "5", Kind: "info"},
				{Label: "False Positive", Value: "1/5", Percent: "20.0%", Kind: "error"},
				{Label: "Failures", Value: "2/5", Percent: "40.0%", Kind: "error", Total: true},
			},
		},
	}
}

func TestTerminal_Render(t *testing.T) {
	t.Parallel()
	out := NewTerminal(MonoTheme(), 80).Render(samplePatterns())

	assert.Contains(t, out, "Skipped (1)")
	assert.Contains(t, out, "! refRemote.json")
	assert.Contains(t, out, "  x 1. type.json  1/4 failing")
	assert.Contains(t, out, "      x 2. bool  FALSE_POSITIVE")
	assert.Contains(t, out, "data: true (expected valid=false)")
	assert.Contains(t, out, "? 2. ref.json")
	assert.Contains(t, out, "+ 3. enum.json  3 tests")
	assert.Contains(t, out, "... (2 more lines)")
	assert.NotContains(t, out, "l4")
	assert.Contains(t, out, "FAIL 2/5 vectors (40.0%)")
	assert.Contains(t, out, "20.0%")
	assert.Contains(t, out, "Outcomes by File")
}

func TestTerminal_TruncatesToWidth(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("very long description ", 10)
	tree := &pattern.Tree{Roots: []pattern.TreeNode{{Name: long, Status: pattern.StatusPass}}}
	out := NewTerminal(MonoTheme(), 40).Render([]pattern.Pattern{tree})

	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 40, line)
	}
	assert.Contains(t, out, "...")
}

func TestLLM_Render(t *testing.T) {
	t.Parallel()
	out := NewLLM().Render(samplePatterns())

	require.True(t, strings.HasPrefix(out, "SCOPE: FAIL 2/5 vectors (40.0%)\n"), out)
	assert.Contains(t, out, "  SKIP refRemote.json")
	assert.Contains(t, out, "FAIL 1. type.json (1/4 failing)")
	assert.Contains(t, out, "    FAIL 2. bool (FALSE_POSITIVE)")
	assert.Contains(t, out, "UNDEF 2. ref.json")
	assert.Contains(t, out, "PASS 3. enum.json (3 tests)")
	assert.Contains(t, out, "  type.json: False Positive=1 True Positive=2 True Negative=1")
	assert.Contains(t, out, "  Failures: 2/5 40.0%")
	assert.NotContains(t, out, "\x1b[")
}

func TestJSON_Render(t *testing.T) {
	t.Parallel()
	out := NewJSON().Render(samplePatterns())

	var doc struct {
		Version  string `json:"version"`
		Patterns []struct {
			Type string `json:"type"`
		} `json:"patterns"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Patterns, 4)
	assert.Equal(t, "test-table", doc.Patterns[0].Type)
	assert.Equal(t, "tree", doc.Patterns[1].Type)
	assert.Equal(t, "matrix", doc.Patterns[2].Type)
	assert.Equal(t, "summary", doc.Patterns[3].Type)
}

func TestTable_Render(t *testing.T) {
	t.Parallel()
	out := NewTable(TableBox, 0).Render(samplePatterns())

	assert.Contains(t, out, "FALSE_POSITIVE")
	assert.Contains(t, out, "2. bool")
	assert.Contains(t, out, "l3")
	assert.NotContains(t, out, "l4")
	assert.NotContains(t, out, "enum.json", "passing rows are omitted from the failure table")
	assert.Contains(t, out, "TRUE POSITIVE", "go-pretty upper-cases headers")
	assert.Contains(t, out, "Failures")
}

func TestTable_FallsBackToCaseDetails(t *testing.T) {
	t.Parallel()
	tree := &pattern.Tree{Roots: []pattern.TreeNode{{
		Name: "1. ref.json", Status: pattern.StatusUndefined,
		Children: []pattern.TreeNode{{
			Name: "1. remote", Status: pattern.StatusUndefined, Details: "cannot load",
			Children: []pattern.TreeNode{{Name: "1. a", Status: pattern.StatusUndefined, Note: "UNDEFINED"}},
		}},
	}}}
	out := NewTable(TableBox, 0).Render([]pattern.Pattern{tree})
	assert.Contains(t, out, "cannot load")
}

func TestTable_Markdown(t *testing.T) {
	t.Parallel()
	out := NewTable(TableMarkdown, 0).Render(samplePatterns()[2:3])
	assert.Contains(t, out, "### Outcomes by File")
	assert.Contains(t, out, "| type.json |")
}

func TestThemeByName(t *testing.T) {
	t.Parallel()
	for _, name := range ThemeNames {
		assert.Equal(t, name, ThemeByName(name).Name)
	}
	assert.Equal(t, "default", ThemeByName("unknown").Name)
	assert.Equal(t, "?", MonoTheme().Icons.Undef)
}
