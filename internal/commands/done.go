package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/listr/internal/history"
	"github.com/balkashynov/listr/internal/models"
)

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE:  setStatus(models.StatusDone),
}

var undoneCmd = &cobra.Command{
	Use:   "undone <task-id>",
	Short: "Mark a task as not done",
	Args:  cobra.ExactArgs(1),
	RunE:  setStatus(models.StatusUndone),
}

// setStatus returns a command function that moves the task named by the
// first argument to status
func setStatus(status models.Status) func(*cobra.Command, []string) error {
	return withController(func(c *history.Controller, cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		_, err = c.Modify(id, func(f *models.TaskFields) {
			f.Status = status
		})
		if err != nil {
			return err
		}

		fmt.Printf("Task %d set to %s\n", id, status)
		return nil
	})
}
