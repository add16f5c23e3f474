package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/listr/internal/db"
	"github.com/balkashynov/listr/internal/history"
	"github.com/balkashynov/listr/internal/models"
	"github.com/balkashynov/listr/internal/parser"
)

// Focus represents what UI element has focus
type Focus int

const (
	FocusTable Focus = iota
	FocusSearch
	FocusAdd
)

// ListModel is the interactive task browser. Every change it makes goes
// through the history controller, so it can be undone from the CLI later.
type ListModel struct {
	width  int
	height int

	controller *history.Controller

	// Task data
	all          []models.Task // newest first
	tasks        []models.Task // after search filter
	selectedTask int           // index in tasks slice

	// UI state
	focus       Focus
	input       textinput.Model
	searchQuery string
	message     string
	failed      bool
}

// NewListModel creates a browser over controller
func NewListModel(controller *history.Controller) ListModel {
	input := textinput.New()
	input.CharLimit = 256

	m := ListModel{
		controller: controller,
		focus:      FocusTable,
		input:      input,
	}
	return m.reload()
}

// Init initializes the model
func (m ListModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.focus != FocusTable {
			return m.handleInputKeys(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			// esc clears an applied search before quitting
			if msg.String() == "esc" && m.searchQuery != "" {
				m.searchQuery = ""
				return m.applyFilter(), nil
			}
			return m, tea.Quit

		case "up", "k":
			if m.selectedTask > 0 {
				m.selectedTask--
			}
			return m, nil

		case "down", "j":
			if m.selectedTask < len(m.tasks)-1 {
				m.selectedTask++
			}
			return m, nil

		case "d":
			return m.toggleStatus(models.StatusDone), nil

		case "a":
			return m.toggleStatus(models.StatusArchived), nil

		case "x":
			return m.deleteSelected(), nil

		case "u":
			return m.undo(), nil

		case "r":
			return m.redo(), nil

		case "/":
			m.focus = FocusSearch
			m.input.Placeholder = "search"
			m.input.SetValue(m.searchQuery)
			cmd := m.input.Focus()
			return m, cmd

		case "n":
			m.focus = FocusAdd
			m.input.Placeholder = "new task (#tag due:tomorrow)"
			m.input.SetValue("")
			cmd := m.input.Focus()
			return m, cmd
		}
	}

	return m, nil
}

// handleInputKeys handles key input while the search or add field is focused
func (m ListModel) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.focus = FocusTable
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		value := m.input.Value()
		focus := m.focus
		m.focus = FocusTable
		m.input.Blur()

		if focus == FocusSearch {
			m.searchQuery = strings.TrimSpace(value)
			return m.applyFilter(), nil
		}
		return m.create(value), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// selected returns the highlighted task, if any
func (m ListModel) selected() (models.Task, bool) {
	if m.selectedTask < 0 || m.selectedTask >= len(m.tasks) {
		return models.Task{}, false
	}
	return m.tasks[m.selectedTask], true
}

// toggleStatus flips the selected task between target and Undone
func (m ListModel) toggleStatus(target models.Status) ListModel {
	task, ok := m.selected()
	if !ok {
		return m
	}

	next := target
	if task.Status == target {
		next = models.StatusUndone
	}

	_, err := m.controller.Modify(task.ID, func(f *models.TaskFields) {
		f.Status = next
	})
	return m.report(err, fmt.Sprintf("Task %d set to %s", task.ID, next))
}

func (m ListModel) deleteSelected() ListModel {
	task, ok := m.selected()
	if !ok {
		return m
	}
	_, err := m.controller.Delete(task.ID)
	return m.report(err, fmt.Sprintf("Task %d removed", task.ID))
}

func (m ListModel) create(text string) ListModel {
	parsed := parser.ParseText(text)
	if len(parsed.Errors) > 0 {
		return m.report(errors.New(strings.Join(parsed.Errors, ", ")), "")
	}
	if parsed.Text == "" {
		return m
	}

	task, err := m.controller.Create(db.CreateTaskRequest{
		Text:    parsed.Text,
		Tag:     parsed.Tag,
		DueDate: parsed.DueDate,
	})
	if err != nil {
		return m.report(err, "")
	}
	return m.report(nil, fmt.Sprintf("Task %d added", task.ID))
}

func (m ListModel) undo() ListModel {
	step, ok, err := m.controller.Undo()
	if err == nil && !ok {
		return m.report(nil, "Nothing to undo")
	}
	return m.report(err, DescribeStep("Undid", step))
}

func (m ListModel) redo() ListModel {
	step, ok, err := m.controller.Redo()
	if err == nil && !ok {
		return m.report(nil, "Nothing to redo")
	}
	return m.report(err, DescribeStep("Redid", step))
}

// report records the outcome of an action and refreshes the task list
func (m ListModel) report(err error, success string) ListModel {
	if err != nil {
		m.message = "Error: " + err.Error()
		m.failed = true
	} else {
		m.message = success
		m.failed = false
	}
	return m.reload()
}

// reload re-reads tasks from the store
func (m ListModel) reload() ListModel {
	tasks, err := m.controller.ReadAll()
	if err != nil {
		m.message = "Error: " + err.Error()
		m.failed = true
		return m
	}
	m.all = SortNewestFirst(tasks)
	return m.applyFilter()
}

// applyFilter narrows the list to the current search query
func (m ListModel) applyFilter() ListModel {
	if m.searchQuery == "" {
		m.tasks = m.all
	} else {
		needle := strings.ToLower(m.searchQuery)
		m.tasks = nil
		for _, task := range m.all {
			if strings.Contains(strings.ToLower(task.Text), needle) {
				m.tasks = append(m.tasks, task)
			}
		}
	}

	if m.selectedTask >= len(m.tasks) {
		m.selectedTask = len(m.tasks) - 1
	}
	if m.selectedTask < 0 {
		m.selectedTask = 0
	}
	return m
}

// View renders the TUI
func (m ListModel) View() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))

	header := "📋 Tasks"
	if m.searchQuery != "" {
		header += fmt.Sprintf(" matching %q", m.searchQuery)
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		b.WriteString(emptyStyle.Render("No tasks found"))
		b.WriteString("\n")
	}

	// Keep the selection on screen when the window is short
	start, end := m.visibleRange()
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	for i := start; i < end; i++ {
		cursor := "  "
		if i == m.selectedTask {
			cursor = selectedStyle.Render("> ")
		}
		b.WriteString(cursor)
		b.WriteString(RenderTask(m.tasks[i]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.focus {
	case FocusSearch, FocusAdd:
		b.WriteString(m.input.View())
	default:
		if m.message != "" {
			color := ColorSuccess
			if m.failed {
				color = ColorError
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(m.message))
			b.WriteString("\n")
		}
		helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
		b.WriteString(helpStyle.Render("↑/↓ move • d done • a archive • x delete • n new • u undo • r redo • / search • q quit"))
	}

	return b.String()
}

// visibleRange returns the slice of tasks that fits the window
func (m ListModel) visibleRange() (int, int) {
	// header(2) + blank(1) + message(1) + help(1) + margin(1)
	rows := m.height - 6
	if m.height == 0 || rows >= len(m.tasks) {
		return 0, len(m.tasks)
	}
	if rows < 3 {
		rows = 3
	}

	start := m.selectedTask - rows/2
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > len(m.tasks) {
		end = len(m.tasks)
		start = max(0, end-rows)
	}
	return start, end
}

// DescribeStep summarizes a replayed history step for the user
func DescribeStep(verb string, step history.Step) string {
	if step.Applied == nil {
		return verb
	}
	id := step.Applied.TaskID()
	switch step.Applied.Kind() {
	case history.KindRemove:
		return fmt.Sprintf("%s: task %d removed", verb, id)
	case history.KindRecreate:
		return fmt.Sprintf("%s: task %d restored", verb, id)
	default:
		return fmt.Sprintf("%s: task %d reverted", verb, id)
	}
}
