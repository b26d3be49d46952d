// Package ui renders task tables and hosts the interactive viewer.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tracker-go/internal/todo"
)

// ErrNotTTY is returned by RunTUI when output is not a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

// Tracker is the part of the repository the viewer needs.
type Tracker interface {
	List(filter todo.Filter) ([]todo.Task, error)
	MarkStatus(id int, status todo.Status) (todo.Task, error)
}

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	input   io.Reader
	output  io.Writer
	refresh time.Duration
	filter  todo.Filter
}

// WithIO sets the terminal streams. Defaults to stdin and stdout.
func WithIO(in io.Reader, out io.Writer) TUIOption {
	return func(c *tuiConfig) {
		c.input = in
		c.output = out
	}
}

// WithRefresh sets how often the task file is reloaded.
func WithRefresh(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.refresh = d
		}
	}
}

// WithFilter sets the initial status filter.
func WithFilter(f todo.Filter) TUIOption {
	return func(c *tuiConfig) {
		c.filter = f
	}
}

// RunTUI starts the interactive viewer over tracker until the user quits
// or ctx is cancelled.
func RunTUI(ctx context.Context, tracker Tracker, path string, opts ...TUIOption) error {
	c := &tuiConfig{
		input:   os.Stdin,
		output:  os.Stdout,
		refresh: 2 * time.Second,
		filter:  todo.FilterAll,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(c.output) {
		return ErrNotTTY
	}

	model := newTUIModel(tracker, path, NewRenderer(c.output), c.refresh, c.filter)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(c.input),
		tea.WithOutput(c.output),
	)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

type tuiModel struct {
	tracker      Tracker
	path         string
	render       *Renderer
	filter       todo.Filter
	tasks        []todo.Task
	cursor       int
	loadErr      error
	notice       string
	showHelp     bool
	tickInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(tracker Tracker, path string, render *Renderer, refresh time.Duration, filter todo.Filter) *tuiModel {
	if filter == "" {
		filter = todo.FilterAll
	}
	return &tuiModel{
		tracker:      tracker,
		path:         path,
		render:       render,
		filter:       filter,
		tickInterval: refresh,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "r", "f5":
			m.notice = ""
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case "0":
			m.setFilter(todo.FilterAll)
		case "1":
			m.setFilter(todo.FilterFor(todo.StatusTodo))
		case "2":
			m.setFilter(todo.FilterFor(todo.StatusInProgress))
		case "3":
			m.setFilter(todo.FilterFor(todo.StatusDone))
		case "t":
			m.markSelected(todo.StatusTodo)
		case "p":
			m.markSelected(todo.StatusInProgress)
		case "d":
			m.markSelected(todo.StatusDone)
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if !m.filter.All() {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", todo.Status(m.filter).Label()))
	}

	if m.loadErr != nil {
		b.WriteString("Error loading task file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if len(m.tasks) == 0 {
		b.WriteString(EmptyMessage(m.filter) + "\n\n")
	} else {
		b.WriteString(m.render.TaskTable(m.tasks, m.cursor))
		b.WriteString("\n\n")
	}

	if m.notice != "" {
		b.WriteString(m.notice + "\n\n")
	}
	b.WriteString(fmt.Sprintf("Task file: %s\n", m.path))
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) setFilter(f todo.Filter) {
	m.filter = f
	m.cursor = 0
	m.notice = ""
	m.refresh()
}

func (m *tuiModel) refresh() {
	tasks, err := m.tracker.List(m.filter)
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		return
	}
	m.loadErr = nil
	m.tasks = tasks
	if m.cursor >= len(m.tasks) {
		m.cursor = max(len(m.tasks)-1, 0)
	}
}

func (m *tuiModel) markSelected(status todo.Status) {
	if m.loadErr != nil || len(m.tasks) == 0 {
		return
	}
	task, err := m.tracker.MarkStatus(m.tasks[m.cursor].ID, status)
	if err != nil {
		m.notice = "Error: " + err.Error()
	} else {
		m.notice = fmt.Sprintf("Task %d marked as %s", task.ID, task.Status.Label())
	}
	m.refresh()
}

func writeTitle(b *strings.Builder) {
	title := "Task Tracker"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, esc       Quit\n")
	b.WriteString("  r, F5        Reload the task file\n")
	b.WriteString("  up/k down/j  Move selection\n")
	b.WriteString("  t            Mark selected task todo\n")
	b.WriteString("  p            Mark selected task in progress\n")
	b.WriteString("  d            Mark selected task done\n")
	b.WriteString("  1            Filter by todo\n")
	b.WriteString("  2            Filter by in progress\n")
	b.WriteString("  3            Filter by done\n")
	b.WriteString("  0            Clear filter\n")
	b.WriteString("  h, ?         Toggle this help screen\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s\n", interval))
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
