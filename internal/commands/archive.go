package commands

import (
	"github.com/spf13/cobra"

	"github.com/balkashynov/listr/internal/models"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <task-id>",
	Short: "Archive a task",
	Long: `Archive a task. Archived tasks are hidden from 'listr ls' and shown by
'listr archived' and 'listr all'. Use 'listr undone' to bring one back.`,
	Args: cobra.ExactArgs(1),
	RunE: setStatus(models.StatusArchived),
}
