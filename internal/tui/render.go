package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/listr/internal/models"
	"github.com/balkashynov/listr/internal/parser"
)

// Filter selects which tasks are printed
type Filter func(models.Task) bool

// NotArchived hides archived tasks
func NotArchived(t models.Task) bool { return t.Status != models.StatusArchived }

// OnlyArchived shows archived tasks only
func OnlyArchived(t models.Task) bool { return t.Status == models.StatusArchived }

// AllTasks shows everything
func AllTasks(models.Task) bool { return true }

var (
	idStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentMain))
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color(ColorSuccess))
	archiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	hintStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
)

// SortNewestFirst returns a copy of tasks ordered by created_at, newest first
func SortNewestFirst(tasks []models.Task) []models.Task {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b models.Task) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return sorted
}

// RenderTasks renders the task list the way every listing command prints it.
// tasks is the whole store; filter picks the rows to show.
func RenderTasks(tasks []models.Task, filter Filter, showArchived bool) string {
	var b strings.Builder
	b.WriteString("\n")

	pending := 0
	for _, task := range tasks {
		if task.Status == models.StatusUndone {
			pending++
		}
	}

	switch {
	case len(tasks) == 0:
		fmt.Fprintf(&b, "Welcome to listr, a command-line todo list!\nTask list is empty.\nRun %s to add a new task.\nRun %s to get all commands\n",
			hintStyle.Render("listr add"),
			hintStyle.Render("listr --help"))
	case pending == 0 && !showArchived:
		b.WriteString("Great, no pending tasks 🎉\n")
	default:
		for _, task := range SortNewestFirst(tasks) {
			if filter(task) {
				b.WriteString(RenderTask(task))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	return b.String()
}

// RenderTask renders one task line: bold id, text (struck through when done)
// and any tag or due date.
func RenderTask(task models.Task) string {
	text := task.Text
	switch task.Status {
	case models.StatusDone:
		text = doneStyle.Render(text)
	case models.StatusArchived:
		text = archiveStyle.Render(text)
	}

	line := idStyle.Render(fmt.Sprintf("%d", task.ID)) + " " + text

	var meta []string
	if task.Tag != nil && *task.Tag != "" {
		meta = append(meta, "#"+*task.Tag)
	}
	if due := parser.FormatDueDate(task.DueDate); due != "" {
		meta = append(meta, due)
	}
	if len(meta) > 0 {
		line += "  " + metaStyle.Render(strings.Join(meta, "  "))
	}
	return line
}
