// Package ui is the terminal list view for tasklist.
//
// The view never changes the task list itself. It calls the store and
// redraws whenever the store publishes a new snapshot. Failed operations are
// not shown unless ShowErrors is set; the list simply does not change.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jacksmith/tasklist/internal/model"
	"github.com/jacksmith/tasklist/internal/store"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
)

// Options configures the view.
type Options struct {
	// ShowErrors displays the last failed operation in the status line.
	ShowErrors bool
}

// Model is the bubbletea model for the task list.
type Model struct {
	ctx    context.Context
	store  *store.Store
	keys   KeyMap
	styles *Styles
	opts   Options

	updates     <-chan model.Collection
	unsubscribe func()

	tasks  model.Collection
	cursor int
	mode   mode
	input  textinput.Model

	editID       string
	deleteTarget model.Task
	status       string

	width  int
	height int
}

// snapshotMsg carries a collection published by the store.
type snapshotMsg struct {
	tasks model.Collection
}

// subscriptionClosedMsg means the store was closed.
type subscriptionClosedMsg struct{}

// resultMsg carries the outcome of a store operation.
type resultMsg struct {
	result store.Result
}

// New builds the view for s. It subscribes immediately so no snapshot
// published after construction is missed.
func New(ctx context.Context, s *store.Store, opts Options) *Model {
	input := textinput.New()
	input.Placeholder = "Task name"
	input.CharLimit = 200
	input.Prompt = "› "

	updates, unsubscribe := s.Subscribe()

	return &Model{
		ctx:         ctx,
		store:       s,
		keys:        DefaultKeyMap(),
		styles:      NewStyles(),
		opts:        opts,
		updates:     updates,
		unsubscribe: unsubscribe,
		tasks:       s.Tasks(),
		input:       input,
	}
}

// Init starts the initial load and begins listening for snapshots.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.activate(), m.listen())
}

// Tasks returns the collection currently rendered.
func (m *Model) Tasks() model.Collection {
	return m.tasks.Clone()
}

func (m *Model) listen() tea.Cmd {
	updates := m.updates
	return func() tea.Msg {
		tasks, ok := <-updates
		if !ok {
			return subscriptionClosedMsg{}
		}
		return snapshotMsg{tasks: tasks}
	}
}

func (m *Model) activate() tea.Cmd {
	return func() tea.Msg { return resultMsg{m.store.Activate(m.ctx)} }
}

func (m *Model) reload() tea.Cmd {
	return func() tea.Msg { return resultMsg{m.store.Load(m.ctx)} }
}

func (m *Model) add(name string) tea.Cmd {
	return func() tea.Msg { return resultMsg{m.store.Add(m.ctx, name)} }
}

func (m *Model) rename(id, name string) tea.Cmd {
	return func() tea.Msg { return resultMsg{m.store.Update(m.ctx, id, name)} }
}

func (m *Model) remove(id string) tea.Cmd {
	return func() tea.Msg { return resultMsg{m.store.Delete(m.ctx, id)} }
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 10)
		return m, nil

	case snapshotMsg:
		m.setTasks(msg.tasks)
		return m, m.listen()

	case subscriptionClosedMsg:
		return m, nil

	case resultMsg:
		m.handleResult(msg.result)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateInput(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m *Model) setTasks(tasks model.Collection) {
	m.tasks = tasks
	if m.cursor >= len(m.tasks) {
		m.cursor = max(0, len(m.tasks)-1)
	}
}

func (m *Model) handleResult(res store.Result) {
	if res.OK() {
		m.status = ""
		return
	}
	if m.opts.ShowErrors {
		m.status = res.Err.Error()
	}
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.unsubscribe()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.SetValue("")
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Edit):
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeEdit
		m.editID = task.ID
		m.input.SetValue(task.Name)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Delete):
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.deleteTarget = task

	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	}

	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeInput()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		name := m.input.Value()
		var cmd tea.Cmd
		if m.mode == modeAdd {
			cmd = m.add(name)
		} else {
			// Editing ends here, before the server has answered. A failed
			// rename leaves the old name in the list.
			cmd = m.rename(m.editID, name)
		}
		m.closeInput()
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		id := m.deleteTarget.ID
		m.mode = modeList
		m.deleteTarget = model.Task{}
		return m, m.remove(id)
	case key.Matches(msg, m.keys.Deny):
		m.mode = modeList
		m.deleteTarget = model.Task{}
	}
	return m, nil
}

func (m *Model) closeInput() {
	m.mode = modeList
	m.editID = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) selected() (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return model.Task{}, false
	}
	return m.tasks[m.cursor], true
}

// View renders the list.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Tasks (%d)", len(m.tasks))))
	b.WriteString("\n")

	if len(m.tasks) == 0 && m.mode != modeAdd {
		b.WriteString(m.styles.Empty.Render("No tasks yet. Press a to add one."))
		b.WriteString("\n")
	}

	for i, task := range m.tasks {
		switch {
		case m.mode == modeEdit && task.ID == m.editID:
			b.WriteString(m.styles.Prompt.Render("✎ ") + m.input.View())
		case i == m.cursor && m.mode == modeList:
			b.WriteString(m.styles.Selected.Render("> " + displayName(task.Name)))
		default:
			b.WriteString(m.styles.Item.Render(displayName(task.Name)))
		}
		b.WriteString("\n")
	}

	switch m.mode {
	case modeAdd:
		b.WriteString(m.styles.Prompt.Render("+ ") + m.input.View())
		b.WriteString("\n")
	case modeConfirmDelete:
		prompt := fmt.Sprintf("Delete %q? (y/n)", m.deleteTarget.Name)
		b.WriteString(m.styles.Modal.Render(prompt))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(m.styles.Error.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render(m.helpLine()))
	return b.String()
}

func (m *Model) helpLine() string {
	bindings := m.keys.listHelp()
	if m.mode == modeAdd || m.mode == modeEdit {
		bindings = m.keys.inputHelp()
	}
	if m.mode == modeConfirmDelete {
		bindings = []key.Binding{m.keys.Confirm, m.keys.Deny}
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// displayName keeps blank names visible as a row.
func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "(untitled)"
	}
	return name
}
