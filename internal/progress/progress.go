// Package progress shows a live one-line progress bar while corpus files are
// classified. It is only used when stderr is a terminal.
package progress

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/conform/pkg/classify"
)

// FileDoneMsg reports one classified file.
type FileDoneMsg struct {
	Name    string
	Failing int
}

type finishedMsg struct{}

// Model is the bubbletea model behind the progress line.
type Model struct {
	total   int
	done    int
	failing int
	current string
	width   int

	bar     progress.Model
	spinner spinner.Model
	finish  bool
}

// NewModel returns a model expecting total files.
func NewModel(total, width int) Model {
	if width <= 0 {
		width = 80
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Model{
		total:   total,
		width:   width,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
		spinner: s,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FileDoneMsg:
		m.done++
		m.failing += msg.Failing
		m.current = msg.Name
		return m, nil
	case finishedMsg:
		m.finish = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the progress line; it is empty once finished so the report
// starts on a clean line.
func (m Model) View() string {
	if m.finish {
		return ""
	}
	var pct float64
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
	}

	var sb strings.Builder
	sb.WriteString(m.spinner.View())
	sb.WriteString(" ")
	sb.WriteString(m.bar.ViewAs(pct))
	fmt.Fprintf(&sb, " %d/%d files", m.done, m.total)
	if m.failing > 0 {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf(" · %d failing", m.failing)))
	}
	line := sb.String()
	if m.current != "" {
		room := m.width - lipgloss.Width(line) - 3
		if room > 8 {
			line += " · " + runewidth.Truncate(m.current, room, "...")
		}
	}
	return line
}

// Run drives work under a progress line written to w. work receives a
// callback to report each finished file; it is safe for concurrent use.
func Run(ctx context.Context, w io.Writer, total, width int, work func(onFile func(classify.FileResult)) error) error {
	p := tea.NewProgram(NewModel(total, width),
		tea.WithContext(ctx),
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	errc := make(chan error, 1)
	go func() {
		err := work(func(f classify.FileResult) {
			p.Send(FileDoneMsg{Name: f.Name, Failing: failing(f)})
		})
		errc <- err
		p.Send(finishedMsg{})
	}()

	if _, err := p.Run(); err != nil {
		// On cancellation prefer the work error.
		if werr := <-errc; werr != nil {
			return werr
		}
		return err
	}
	return <-errc
}

func failing(f classify.FileResult) int {
	n := 0
	for _, c := range f.Cases {
		for _, v := range c.Vectors {
			if !v.Outcome.Passing() {
				n++
			}
		}
	}
	return n
}
