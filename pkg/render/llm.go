package render

import (
	"fmt"
	"strings"

	"github.com/dkoosis/conform/pkg/pattern"
)

// LLM renders patterns as terse plain text for agents and logs.
// No ANSI codes; a SCOPE line comes first, then the sections in order.
type LLM struct{}

// NewLLM creates an LLM renderer.
func NewLLM() *LLM {
	return &LLM{}
}

// Render formats all patterns as plain text.
func (l *LLM) Render(patterns []pattern.Pattern) string {
	var sb strings.Builder

	for _, p := range patterns {
		if s, ok := p.(*pattern.Summary); ok && s.Kind == pattern.SummaryKindRun {
			sb.WriteString("SCOPE: " + s.Label + "\n")
			break
		}
	}

	for _, p := range patterns {
		var section string
		switch v := p.(type) {
		case *pattern.Tree:
			section = l.renderTree(v)
		case *pattern.TestTable:
			section = l.renderTestTable(v)
		case *pattern.Leaderboard:
			section = l.renderLeaderboard(v)
		case *pattern.Matrix:
			section = l.renderMatrix(v)
		case *pattern.Summary:
			section = l.renderSummary(v)
		}
		if section != "" {
			sb.WriteString("\n" + section)
		}
	}
	return sb.String()
}

func (l *LLM) renderTree(t *pattern.Tree) string {
	var sb strings.Builder
	sb.WriteString(t.Label + "\n")
	t.Walk(func(n *pattern.TreeNode, depth int) {
		indent := strings.Repeat("  ", depth)
		sb.WriteString(indent + llmStatus(n.Status) + " " + n.Name)
		if n.Note != "" {
			sb.WriteString(" (" + n.Note + ")")
		}
		sb.WriteString("\n")
		writeLLMDetails(&sb, n.Details, indent+"    ")
	})
	return sb.String()
}

func (l *LLM) renderTestTable(t *pattern.TestTable) string {
	if len(t.Results) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(t.Label + "\n")
	for _, item := range t.Results {
		sb.WriteString("  " + llmStatus(item.Status) + " " + item.Name + "\n")
		writeLLMDetails(&sb, item.Details, "    ")
	}
	return sb.String()
}

func (l *LLM) renderLeaderboard(lb *pattern.Leaderboard) string {
	var sb strings.Builder
	sb.WriteString(lb.Label + "\n")
	for _, item := range lb.Items {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", item.Rank, item.Name, item.Metric))
	}
	return sb.String()
}

func (l *LLM) renderMatrix(m *pattern.Matrix) string {
	var sb strings.Builder
	sb.WriteString(m.Label + "\n")
	rows := m.Rows
	if m.Footer != nil {
		rows = append(rows[:len(rows):len(rows)], *m.Footer)
	}
	for _, r := range rows {
		cells := make([]string, 0, len(r.Counts))
		for i, n := range r.Counts {
			if n == 0 || i >= len(m.Columns) {
				continue
			}
			cells = append(cells, fmt.Sprintf("%s=%d", m.Columns[i], n))
		}
		sb.WriteString("  " + r.Name + ": " + strings.Join(cells, " ") + "\n")
	}
	return sb.String()
}

func (l *LLM) renderSummary(s *pattern.Summary) string {
	var sb strings.Builder
	if s.Kind != pattern.SummaryKindRun {
		sb.WriteString(s.Label + "\n")
	}
	for _, m := range s.Metrics {
		line := "  " + m.Label + ": " + m.Value
		if m.Percent != "" {
			line += " " + m.Percent
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

func writeLLMDetails(sb *strings.Builder, details, indent string) {
	if details == "" {
		return
	}
	lines := strings.Split(details, "\n")
	for i, line := range lines {
		if i == detailLines {
			fmt.Fprintf(sb, "%s... (%d more lines)\n", indent, len(lines)-detailLines)
			return
		}
		sb.WriteString(indent + line + "\n")
	}
}

func llmStatus(status string) string {
	switch status {
	case pattern.StatusPass:
		return "PASS"
	case pattern.StatusFail:
		return "FAIL"
	case pattern.StatusUndefined:
		return "UNDEF"
	case pattern.StatusSkip:
		return "SKIP"
	default:
		return "INFO"
	}
}
