package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/conform/pkg/pattern"
)

// Terminal renders patterns as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats all patterns for terminal display.
func (t *Terminal) Render(patterns []pattern.Pattern) string {
	var sections []string
	for _, p := range patterns {
		s := t.renderOne(p)
		if s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n")
}

func (t *Terminal) renderOne(p pattern.Pattern) string {
	switch v := p.(type) {
	case *pattern.Summary:
		return t.renderSummary(v)
	case *pattern.Leaderboard:
		return t.renderLeaderboard(v)
	case *pattern.TestTable:
		return t.renderTestTable(v)
	case *pattern.Tree:
		return t.renderTree(v)
	case *pattern.Matrix:
		return t.renderMatrix(v)
	default:
		return ""
	}
}

func (t *Terminal) renderSummary(s *pattern.Summary) string {
	var sb strings.Builder
	if s.Label != "" {
		style := t.theme.Bold
		if s.Kind == pattern.SummaryKindRun {
			if s.Failed {
				style = style.Inherit(t.theme.Error)
			} else {
				style = style.Inherit(t.theme.Success)
			}
		}
		sb.WriteString(style.Render(s.Label))
		sb.WriteString("\n")
	}

	maxLabel, maxValue := 0, 0
	for _, m := range s.Metrics {
		maxLabel = max(maxLabel, runewidth.StringWidth(m.Label))
		maxValue = max(maxValue, runewidth.StringWidth(m.Value))
	}
	for _, m := range s.Metrics {
		icon, style := t.iconStyle(m.Kind)
		line := icon + " " + runewidth.FillRight(m.Label+":", maxLabel+1) + " " + padLeft(m.Value, maxValue)
		if m.Percent != "" {
			line += "  " + padLeft(m.Percent, 6)
		}
		if m.Total {
			style = style.Inherit(t.theme.Bold)
		}
		sb.WriteString("  ")
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderLeaderboard(l *pattern.Leaderboard) string {
	if len(l.Items) == 0 {
		return ""
	}
	var sb strings.Builder
	if l.Label != "" {
		header := l.Label
		if l.TotalCount > len(l.Items) {
			header += fmt.Sprintf(" (top %d of %d)", len(l.Items), l.TotalCount)
		}
		sb.WriteString(t.theme.Bold.Render(header))
		sb.WriteString("\n")
	}

	maxName, maxMetric := 0, 0
	for _, item := range l.Items {
		maxName = max(maxName, runewidth.StringWidth(item.Name))
		maxMetric = max(maxMetric, runewidth.StringWidth(item.Metric))
	}
	maxName = min(maxName, 50)

	for _, item := range l.Items {
		sb.WriteString("  ")
		if l.ShowRank {
			sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("%2d. ", item.Rank)))
		}
		name := runewidth.Truncate(item.Name, maxName, "...")
		sb.WriteString(t.theme.Primary.Render(runewidth.FillRight(name, maxName)))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Warning.Render(padLeft(item.Metric, maxMetric)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderTestTable(tt *pattern.TestTable) string {
	if len(tt.Results) == 0 {
		return ""
	}
	var sb strings.Builder
	if tt.Label != "" {
		sb.WriteString(t.theme.Bold.Render(tt.Label))
		sb.WriteString("\n")
	}

	for _, r := range tt.Results {
		sb.WriteString("  ")
		icon, style := t.statusIconStyle(r.Status)
		sb.WriteString(style.Render(icon + " "))
		sb.WriteString(runewidth.Truncate(r.Name, t.width-4, "..."))
		t.writeDetails(&sb, r.Details, 4)
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderTree draws file → case → vector lines, two spaces per level.
func (t *Terminal) renderTree(tr *pattern.Tree) string {
	if len(tr.Roots) == 0 {
		return ""
	}
	var sb strings.Builder
	if tr.Label != "" {
		sb.WriteString(t.theme.Bold.Render(tr.Label))
		sb.WriteString("\n")
	}
	tr.Walk(func(n *pattern.TreeNode, depth int) {
		indent := strings.Repeat("  ", depth+1)
		icon, style := t.statusIconStyle(n.Status)

		avail := t.width - len(indent) - 2
		if n.Note != "" {
			avail -= runewidth.StringWidth(n.Note) + 2
		}
		name := runewidth.Truncate(n.Name, max(avail, 10), "...")

		sb.WriteString(indent)
		sb.WriteString(style.Render(icon))
		sb.WriteString(" ")
		if depth == 0 {
			sb.WriteString(t.theme.Bold.Render(name))
		} else {
			sb.WriteString(name)
		}
		if n.Note != "" {
			sb.WriteString("  ")
			if n.Status == pattern.StatusPass {
				sb.WriteString(t.theme.Muted.Render(n.Note))
			} else {
				sb.WriteString(style.Render(n.Note))
			}
		}
		t.writeDetails(&sb, n.Details, len(indent)+2)
		sb.WriteString("\n")
	})
	return sb.String()
}

func (t *Terminal) renderMatrix(m *pattern.Matrix) string {
	if len(m.Rows) == 0 {
		return ""
	}
	var sb strings.Builder
	if m.Label != "" {
		sb.WriteString(t.theme.Bold.Render(m.Label))
		sb.WriteString("\n")
	}

	nameW := 0
	for _, r := range m.Rows {
		nameW = max(nameW, runewidth.StringWidth(r.Name))
	}
	nameW = min(nameW, 40)
	colW := make([]int, len(m.Columns))
	for i, c := range m.Columns {
		colW[i] = max(runewidth.StringWidth(c), 5)
	}

	sb.WriteString("  " + strings.Repeat(" ", nameW+2))
	for i, c := range m.Columns {
		sb.WriteString(t.theme.Muted.Render(padLeft(c, colW[i])) + " ")
	}
	sb.WriteString("\n")

	rows := m.Rows
	if m.Footer != nil {
		rows = append(rows[:len(rows):len(rows)], *m.Footer)
	}
	for _, r := range rows {
		icon, style := t.statusIconStyle(r.Status)
		if r.Status == "" {
			icon, style = " ", t.theme.Bold
		}
		sb.WriteString("  ")
		sb.WriteString(style.Render(icon))
		sb.WriteString(" ")
		sb.WriteString(runewidth.FillRight(runewidth.Truncate(r.Name, nameW, "..."), nameW))
		for i, n := range r.Counts {
			cell := padLeft(fmt.Sprintf("%d", n), colW[i])
			if n > 0 && i < m.Failing {
				cell = t.theme.Error.Render(cell)
			}
			sb.WriteString(" " + cell)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) writeDetails(sb *strings.Builder, details string, indent int) {
	if details == "" {
		return
	}
	pad := strings.Repeat(" ", indent)
	lines := strings.Split(details, "\n")
	for i, line := range lines {
		if i == detailLines {
			sb.WriteString("\n" + pad)
			sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("... (%d more lines)", len(lines)-detailLines)))
			break
		}
		sb.WriteString("\n" + pad)
		sb.WriteString(t.theme.Muted.Render(runewidth.Truncate(line, max(t.width-indent, 20), "...")))
	}
}

func (t *Terminal) iconStyle(kind string) (string, lipgloss.Style) {
	switch kind {
	case "success":
		return t.theme.Icons.Pass, t.theme.Success
	case "error":
		return t.theme.Icons.Fail, t.theme.Error
	case "warning":
		return t.theme.Icons.Undef, t.theme.Undef
	default:
		return t.theme.Icons.Info, t.theme.Primary
	}
}

func (t *Terminal) statusIconStyle(status string) (string, lipgloss.Style) {
	switch status {
	case pattern.StatusPass:
		return t.theme.Icons.Pass, t.theme.Success
	case pattern.StatusFail:
		return t.theme.Icons.Fail, t.theme.Error
	case pattern.StatusUndefined:
		return t.theme.Icons.Undef, t.theme.Undef
	case pattern.StatusSkip:
		return t.theme.Icons.Warn, t.theme.Warning
	default:
		return t.theme.Icons.Info, t.theme.Muted
	}
}

func padLeft(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}
