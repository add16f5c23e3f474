package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/listr/internal/history"
)

// RunBrowser starts the interactive task browser
func RunBrowser(controller *history.Controller) error {
	model := NewListModel(controller)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
