// Package mapper converts classified results into presentation patterns and
// interchange documents. Everything here is pure: no I/O, no styling.
package mapper

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/conform/pkg/aggregate"
	"github.com/dkoosis/conform/pkg/classify"
	"github.com/dkoosis/conform/pkg/pattern"
	"github.com/dkoosis/conform/pkg/validator"
)

const (
	kindSuccess = "success"
	kindError   = "error"
	kindWarning = "warning"
	kindInfo    = "info"
)

// Options controls which patterns are produced.
type Options struct {
	Label   string // tree heading, e.g. "santhosh · draft4"
	Verbose bool   // include passing cases and vectors in the tree
	Matrix  bool   // add a per-file outcome matrix
	TopN    int    // leaderboard size; 0 means 5
}

// FromAggregate builds the report patterns in display order:
// skipped files, result tree, most-failing leaderboard, optional matrix,
// run summary and rollup.
func FromAggregate(a *aggregate.Aggregator, opts Options) []pattern.Pattern {
	var patterns []pattern.Pattern

	if t := skippedTable(a.Skipped()); t != nil {
		patterns = append(patterns, t)
	}
	patterns = append(patterns, resultTree(a.Files(), opts))
	if lb := failingLeaderboard(a.Files(), opts.TopN); lb != nil {
		patterns = append(patterns, lb)
	}
	if opts.Matrix {
		patterns = append(patterns, outcomeMatrix(a))
	}

	s := a.Summary()
	patterns = append(patterns, runSummary(s), rollupSummary(s))
	return patterns
}

// OutcomeLabel renders an outcome tag for people: "FALSE_POSITIVE" → "False Positive".
func OutcomeLabel(o classify.Outcome) string {
	words := strings.ReplaceAll(strings.ToLower(string(o)), "_", " ")
	return cases.Title(language.English).String(words)
}

func skippedTable(skipped []string) *pattern.TestTable {
	if len(skipped) == 0 {
		return nil
	}
	items := make([]pattern.TestTableItem, len(skipped))
	for i, name := range skipped {
		items[i] = pattern.TestTableItem{Name: name, Status: pattern.StatusSkip}
	}
	return &pattern.TestTable{
		Label:   fmt.Sprintf("Skipped (%d)", len(skipped)),
		Results: items,
	}
}

func resultTree(files []classify.FileResult, opts Options) *pattern.Tree {
	label := opts.Label
	if label == "" {
		label = "Results"
	}
	tree := &pattern.Tree{Label: label, Roots: make([]pattern.TreeNode, 0, len(files))}
	for i := range files {
		tree.Roots = append(tree.Roots, fileNode(i+1, &files[i], opts.Verbose))
	}
	return tree
}

func fileNode(n int, f *classify.FileResult, verbose bool) pattern.TreeNode {
	node := pattern.TreeNode{
		Name:   fmt.Sprintf("%d. %s", n, f.Name),
		Status: statusName(f.Status()),
	}
	failing := 0
	for i := range f.Cases {
		c := &f.Cases[i]
		for _, v := range c.Vectors {
			if !v.Outcome.Passing() {
				failing++
			}
		}
		if !verbose && c.Status() == classify.StatusPass {
			continue
		}
		node.Children = append(node.Children, caseNode(i+1, c, verbose))
	}
	node.Note = countNote(f.Vectors(), failing)
	return node
}

func caseNode(n int, c *classify.CaseResult, verbose bool) pattern.TreeNode {
	node := pattern.TreeNode{
		Name:   fmt.Sprintf("%d. %s", n, c.Description),
		Status: statusName(c.Status()),
	}
	if c.SchemaErr != nil {
		node.Note = "schema did not compile"
		node.Details = c.SchemaErr.String()
	}
	for i, v := range c.Vectors {
		if !verbose && v.Outcome.Passing() {
			continue
		}
		node.Children = append(node.Children, vectorNode(i+1, v, c.SchemaErr != nil))
	}
	return node
}

func vectorNode(n int, v classify.VectorResult, schemaFailed bool) pattern.TreeNode {
	node := pattern.TreeNode{
		Name:   fmt.Sprintf("%d. %s", n, v.Description),
		Status: statusName(v.Outcome.Status()),
		Note:   string(v.Outcome),
	}
	if v.Outcome.Passing() {
		return node
	}
	var details []string
	// The compile error is already shown on the case line.
	if v.Err != nil && !schemaFailed {
		details = append(details, v.Err.String())
	}
	details = append(details, fmt.Sprintf("data: %s (expected valid=%t)", validator.Canonical(v.Data), v.Valid))
	node.Details = strings.Join(details, "\n")
	return node
}

func countNote(total, failing int) string {
	if failing == 0 {
		return fmt.Sprintf("%d tests", total)
	}
	return fmt.Sprintf("%d/%d failing", failing, total)
}

func statusName(s classify.Status) string {
	switch s {
	case classify.StatusFail:
		return pattern.StatusFail
	case classify.StatusUndefined:
		return pattern.StatusUndefined
	default:
		return pattern.StatusPass
	}
}

func failingLeaderboard(files []classify.FileResult, topN int) *pattern.Leaderboard {
	if topN <= 0 {
		topN = 5
	}
	type entry struct {
		name           string
		failing, total int
	}
	var entries []entry
	for i := range files {
		f := &files[i]
		e := entry{name: f.Name, total: f.Vectors()}
		for _, c := range f.Cases {
			for _, v := range c.Vectors {
				if !v.Outcome.Passing() {
					e.failing++
				}
			}
		}
		if e.failing > 0 {
			entries = append(entries, e)
		}
	}
	if len(entries) < 2 {
		return nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].failing != entries[j].failing {
			return entries[i].failing > entries[j].failing
		}
		return entries[i].name < entries[j].name
	})
	total := len(entries)
	if len(entries) > topN {
		entries = entries[:topN]
	}

	items := make([]pattern.LeaderboardItem, len(entries))
	for i, e := range entries {
		items[i] = pattern.LeaderboardItem{
			Name:   e.name,
			Metric: fmt.Sprintf("%d/%d failing (%s)", e.failing, e.total, aggregate.FormatPercent(e.failing, e.total)),
			Value:  float64(e.failing),
			Rank:   i + 1,
		}
	}
	return &pattern.Leaderboard{
		Label:      "Most Failing Files",
		MetricName: "failures",
		Items:      items,
		TotalCount: total,
		ShowRank:   true,
	}
}

func outcomeMatrix(a *aggregate.Aggregator) *pattern.Matrix {
	m := &pattern.Matrix{Label: "Outcomes by File", Failing: len(classify.Failing)}
	for _, o := range classify.Outcomes {
		m.Columns = append(m.Columns, OutcomeLabel(o))
	}
	for _, f := range a.Files() {
		counts := make(map[classify.Outcome]int)
		for _, c := range f.Cases {
			for _, v := range c.Vectors {
				counts[v.Outcome]++
			}
		}
		row := pattern.MatrixRow{Name: f.Name, Status: statusName(f.Status())}
		for _, o := range classify.Outcomes {
			row.Counts = append(row.Counts, counts[o])
		}
		m.Rows = append(m.Rows, row)
	}

	totals := a.Counts()
	footer := pattern.MatrixRow{Name: "Total"}
	for _, o := range classify.Outcomes {
		footer.Counts = append(footer.Counts, totals[o])
	}
	m.Footer = &footer
	return m
}

func runSummary(s aggregate.Summary) *pattern.Summary {
	metrics := []pattern.SummaryItem{{
		Label: "Total", Value: fmt.Sprintf("%d", s.Total), Kind: kindInfo,
	}}
	for _, l := range s.Failing {
		kind := kindInfo
		if l.Count > 0 {
			kind = kindError
			if l.Outcome == classify.Undefined {
				kind = kindWarning
			}
		}
		metrics = append(metrics, lineItem(OutcomeLabel(l.Outcome), l, kind, false))
	}
	failKind := kindSuccess
	if s.Failed() {
		failKind = kindError
	}
	metrics = append(metrics, lineItem("Failures", s.Failures, failKind, true))
	for _, l := range s.Passing {
		metrics = append(metrics, lineItem(OutcomeLabel(l.Outcome), l, kindSuccess, false))
	}
	metrics = append(metrics, lineItem("Passes", s.Passes, kindSuccess, true))

	label := fmt.Sprintf("PASS %d/%d vectors", s.Passes.Count, s.Total)
	if s.Failed() {
		label = fmt.Sprintf("FAIL %d/%d vectors (%s)", s.Failures.Count, s.Total,
			aggregate.FormatPercent(s.Failures.Count, s.Total))
	}
	return &pattern.Summary{
		Label:   label,
		Kind:    pattern.SummaryKindRun,
		Failed:  s.Failed(),
		Metrics: metrics,
	}
}

func rollupSummary(s aggregate.Summary) *pattern.Summary {
	kindFor := func(l aggregate.Line) string {
		if l.Count > 0 {
			return kindError
		}
		return kindSuccess
	}
	metrics := []pattern.SummaryItem{
		lineItem("Files affected", s.Files, kindFor(s.Files), false),
		lineItem("Cases affected", s.Cases, kindFor(s.Cases), false),
	}
	if s.Skipped > 0 {
		metrics = append(metrics, pattern.SummaryItem{
			Label: "Files skipped", Value: fmt.Sprintf("%d", s.Skipped), Kind: kindWarning,
		})
	}
	return &pattern.Summary{
		Label:   "Coverage",
		Kind:    pattern.SummaryKindRollup,
		Failed:  s.Failed(),
		Metrics: metrics,
	}
}

func lineItem(label string, l aggregate.Line, kind string, total bool) pattern.SummaryItem {
	return pattern.SummaryItem{
		Label:   label,
		Value:   fmt.Sprintf("%d/%d", l.Count, l.Total),
		Percent: aggregate.FormatPercent(l.Count, l.Total),
		Kind:    kind,
		Total:   total,
	}
}
