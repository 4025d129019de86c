// Package tui renders the board in the terminal with keyboard drag and drop.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"kanban-board/internal/board"
	"kanban-board/internal/domain"
)

// noticeTTL is how long a notice stays on the status line
const noticeTTL = 4 * time.Second

type (
	refreshedMsg   struct{ err error }
	doneMsg        struct{ err error }
	noticeMsg      board.Notice
	clearStatusMsg struct{ seq int }
)

type field int

const (
	fieldTitle field = iota
	fieldDescription
)

// grab tracks a task picked up with the keyboard
type grab struct {
	taskID string
	source int
	target int
}

// Model is the bubbletea model for the board screen
type Model struct {
	ctx     context.Context
	board   *board.Board
	notices <-chan board.Notice
	keys    keyMap
	help    help.Model
	columns []domain.Column

	focus   int
	cursor  []int
	grab    *grab
	loading bool

	searching bool
	search    textinput.Model

	title   textinput.Model
	desc    textinput.Model
	editing field

	status    *board.Notice
	statusSeq int

	width  int
	height int
}

// NoticeChannel returns a notifier for board.WithNotifier and the channel
// the model reads notices from. Notices are dropped when the buffer is full.
func NoticeChannel(size int) (board.Notifier, <-chan board.Notice) {
	ch := make(chan board.Notice, size)
	notify := board.NotifierFunc(func(n board.Notice) {
		select {
		case ch <- n:
		default:
		}
	})
	return notify, ch
}

// New builds the model. notices may be nil.
func New(ctx context.Context, b *board.Board, notices <-chan board.Notice) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search tasks"
	search.CharLimit = 100

	title := textinput.New()
	title.Prompt = "Title: "
	title.CharLimit = 200

	desc := textinput.New()
	desc.Prompt = "Description: "
	desc.CharLimit = 2000

	columns := domain.Columns()
	return Model{
		ctx:     ctx,
		board:   b,
		notices: notices,
		keys:    defaultKeys(),
		help:    help.New(),
		columns: columns,
		cursor:  make([]int, len(columns)),
		loading: true,
		search:  search,
		title:   title,
		desc:    desc,
	}
}

// Run starts the program and blocks until the user quits or ctx ends
func Run(ctx context.Context, b *board.Board, notices <-chan board.Notice) error {
	p := tea.NewProgram(New(ctx, b, notices), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.waitForNotice())
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: m.board.Refresh(m.ctx)}
	}
}

func (m Model) waitForNotice() tea.Cmd {
	if m.notices == nil {
		return nil
	}
	ch := m.notices
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return noticeMsg(n)
	}
}

func (m Model) drop(result domain.DropResult) tea.Cmd {
	return func() tea.Msg {
		_, err := m.board.Drop(m.ctx, result)
		return doneMsg{err: err}
	}
}

func (m Model) remove(id string) tea.Cmd {
	return func() tea.Msg {
		return doneMsg{err: m.board.Remove(m.ctx, id)}
	}
}

func (m Model) submit(title, description string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.board.SubmitModal(m.ctx, title, description)
		return doneMsg{err: err}
	}
}

// visible returns the tasks shown in column i after search filtering
func (m Model) visible(i int) []domain.Task {
	var tasks []domain.Task
	for task := range m.board.FilterByColumn(m.columns[i]) {
		tasks = append(tasks, task)
	}
	return tasks
}

func (m Model) selected() (domain.Task, bool) {
	tasks := m.visible(m.focus)
	i := m.cursor[m.focus]
	if i < 0 || i >= len(tasks) {
		return domain.Task{}, false
	}
	return tasks[i], true
}

func (m *Model) clampCursors() {
	for i := range m.columns {
		n := len(m.visible(i))
		switch {
		case n == 0:
			m.cursor[i] = 0
		case m.cursor[i] >= n:
			m.cursor[i] = n - 1
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case refreshedMsg:
		m.loading = false
		m.clampCursors()
		return m, nil

	case doneMsg:
		m.clampCursors()
		if msg.err == nil && !m.board.Modal().IsOpen() {
			m.title.Blur()
			m.desc.Blur()
		}
		return m, nil

	case noticeMsg:
		n := board.Notice(msg)
		m.status = &n
		m.statusSeq++
		seq := m.statusSeq
		expire := tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
		return m, tea.Batch(m.waitForNotice(), expire)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = nil
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.board.Modal().IsOpen():
			return m.updateForm(msg)
		case m.searching:
			return m.updateSearch(msg)
		case m.grab != nil:
			return m.updateGrab(msg)
		default:
			return m.updateBoard(msg)
		}
	}
	return m, nil
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.focus = max(m.focus-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.focus = min(m.focus+1, len(m.columns)-1)
	case key.Matches(msg, m.keys.Up):
		m.cursor[m.focus] = max(m.cursor[m.focus]-1, 0)
	case key.Matches(msg, m.keys.Down):
		if n := len(m.visible(m.focus)); m.cursor[m.focus] < n-1 {
			m.cursor[m.focus]++
		}
	case key.Matches(msg, m.keys.Grab):
		if task, ok := m.selected(); ok {
			m.grab = &grab{taskID: task.ID, source: m.focus, target: m.focus}
		}
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Add):
		if err := m.board.OpenCreate(m.columns[m.focus]); err != nil {
			return m, nil
		}
		cmd := m.openForm("", "")
		return m, cmd
	case key.Matches(msg, m.keys.Edit):
		task, ok := m.selected()
		if !ok || m.board.OpenEdit(task.ID) != nil {
			return m, nil
		}
		cmd := m.openForm(task.Title, task.Description)
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.selected(); ok {
			return m, m.remove(task.ID)
		}
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.refresh()
	}
	return m, nil
}

// updateGrab moves the drop target; enter drops and esc cancels, both as
// a DropResult so a cancelled gesture takes the same path as a real one.
func (m Model) updateGrab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := *m.grab
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		g.target = max(g.target-1, 0)
	case key.Matches(msg, m.keys.Right):
		g.target = min(g.target+1, len(m.columns)-1)
	case key.Matches(msg, m.keys.Drop):
		m.grab = nil
		m.focus = g.target
		return m, m.drop(domain.DropResult{
			DraggableID: g.taskID,
			Source:      &domain.DropLocation{ColumnID: string(m.columns[g.source])},
			Destination: &domain.DropLocation{ColumnID: string(m.columns[g.target])},
		})
	case key.Matches(msg, m.keys.Cancel):
		m.grab = nil
		return m, m.drop(domain.DropResult{
			DraggableID: g.taskID,
			Source:      &domain.DropLocation{ColumnID: string(m.columns[g.source])},
		})
	}
	m.grab = &g
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.board.SetSearchQuery("")
		m.clampCursors()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.board.SetSearchQuery(strings.TrimSpace(m.search.Value()))
	m.clampCursors()
	return m, cmd
}

func (m *Model) openForm(title, description string) tea.Cmd {
	m.title.SetValue(title)
	m.title.CursorEnd()
	m.desc.SetValue(description)
	m.desc.Blur()
	m.editing = fieldTitle
	return m.title.Focus()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.board.CloseModal()
		m.title.Blur()
		m.desc.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Next):
		if m.editing == fieldTitle {
			m.editing = fieldDescription
			m.title.Blur()
			cmd := m.desc.Focus()
			return m, cmd
		}
		m.editing = fieldTitle
		m.desc.Blur()
		cmd := m.title.Focus()
		return m, cmd
	case msg.Type == tea.KeyEnter:
		return m, m.submit(m.title.Value(), m.desc.Value())
	}

	var cmd tea.Cmd
	if m.editing == fieldTitle {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.desc, cmd = m.desc.Update(msg)
	}
	return m, cmd
}
