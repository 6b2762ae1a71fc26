package render

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dkoosis/conform/pkg/pattern"
)

// TableStyle selects box drawing or Markdown output.
type TableStyle int

const (
	TableBox TableStyle = iota
	TableMarkdown
)

// Table renders patterns as go-pretty tables. The tree becomes a flat list
// of non-passing vectors; summaries and matrices map to columns directly.
type Table struct {
	style TableStyle
	width int
}

// NewTable creates a table renderer. width caps the widest column; 0 means 100.
func NewTable(style TableStyle, width int) *Table {
	if width <= 0 {
		width = 100
	}
	return &Table{style: style, width: width}
}

// Render formats all patterns as tables.
func (t *Table) Render(patterns []pattern.Pattern) string {
	var sections []string
	for _, p := range patterns {
		var s string
		switch v := p.(type) {
		case *pattern.Tree:
			s = t.renderTree(v)
		case *pattern.Matrix:
			s = t.renderMatrix(v)
		case *pattern.Summary:
			s = t.renderSummary(v)
		case *pattern.Leaderboard:
			s = t.renderLeaderboard(v)
		case *pattern.TestTable:
			s = t.renderTestTable(v)
		}
		if s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func (t *Table) newWriter(title string) table.Writer {
	w := table.NewWriter()
	if t.style == TableBox {
		w.SetStyle(table.StyleLight)
		w.SetTitle(title)
	}
	return w
}

func (t *Table) render(w table.Writer, title string) string {
	if t.style == TableMarkdown {
		out := w.RenderMarkdown()
		if title != "" {
			out = "### " + title + "\n\n" + out
		}
		return out
	}
	return w.Render()
}

func (t *Table) renderTree(tr *pattern.Tree) string {
	w := t.newWriter(tr.Label)
	w.AppendHeader(table.Row{"File", "Case", "Vector", "Outcome", "Details"})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: t.width / 3},
		{Number: 3, WidthMax: t.width / 3},
		{Number: 5, WidthMax: t.width / 2},
	})

	rows := 0
	for _, file := range tr.Roots {
		for _, c := range file.Children {
			for _, v := range c.Children {
				if v.Status == pattern.StatusPass {
					continue
				}
				details := v.Details
				if details == "" {
					details = c.Details
				}
				w.AppendRow(table.Row{file.Name, c.Name, v.Name, v.Note, firstLines(details)})
				rows++
			}
		}
	}
	if rows == 0 {
		return ""
	}
	return t.render(w, tr.Label)
}

func (t *Table) renderMatrix(m *pattern.Matrix) string {
	if len(m.Rows) == 0 {
		return ""
	}
	w := t.newWriter(m.Label)

	header := table.Row{"File"}
	configs := make([]table.ColumnConfig, 0, len(m.Columns))
	for i, c := range m.Columns {
		header = append(header, c)
		configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	w.AppendHeader(header)
	w.SetColumnConfigs(configs)

	for _, r := range m.Rows {
		w.AppendRow(countsRow(r))
	}
	if m.Footer != nil {
		w.AppendFooter(countsRow(*m.Footer))
	}
	return t.render(w, m.Label)
}

func countsRow(r pattern.MatrixRow) table.Row {
	row := table.Row{r.Name}
	for _, n := range r.Counts {
		row = append(row, n)
	}
	return row
}

func (t *Table) renderSummary(s *pattern.Summary) string {
	if len(s.Metrics) == 0 {
		return ""
	}
	w := t.newWriter(s.Label)
	w.AppendHeader(table.Row{"Metric", "Count", "Percent"})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	for _, m := range s.Metrics {
		if m.Total {
			w.AppendSeparator()
		}
		w.AppendRow(table.Row{m.Label, m.Value, m.Percent})
	}
	return t.render(w, s.Label)
}

func (t *Table) renderLeaderboard(l *pattern.Leaderboard) string {
	if len(l.Items) == 0 {
		return ""
	}
	title := l.Label
	if l.TotalCount > len(l.Items) {
		title += fmt.Sprintf(" (top %d of %d)", len(l.Items), l.TotalCount)
	}
	w := t.newWriter(title)
	w.AppendHeader(table.Row{"#", "File", "Failures"})
	for _, item := range l.Items {
		w.AppendRow(table.Row{item.Rank, item.Name, item.Metric})
	}
	return t.render(w, title)
}

func (t *Table) renderTestTable(tt *pattern.TestTable) string {
	if len(tt.Results) == 0 {
		return ""
	}
	w := t.newWriter(tt.Label)
	w.AppendHeader(table.Row{"Name", "Status"})
	for _, r := range tt.Results {
		w.AppendRow(table.Row{r.Name, r.Status})
	}
	return t.render(w, tt.Label)
}

func firstLines(s string) string {
	lines := strings.Split(s, "\n")
	if len(lines) > detailLines {
		lines = append(lines[:detailLines], fmt.Sprintf("... (%d more lines)", len(lines)-detailLines))
	}
	return strings.Join(lines, "\n")
}
