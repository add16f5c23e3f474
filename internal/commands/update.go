package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/listr/internal/history"
	"github.com/balkashynov/listr/internal/models"
)

var updateCmd = &cobra.Command{
	Use:   "update <task-id> <text>",
	Short: "Replace the text of a task",
	Long: `Replace the text of a task. Status, tag, due date and creation time are
kept as they are.

Usage:
  listr update 42 "Buy oat milk"`,
	Args: cobra.MinimumNArgs(2),
	RunE: withController(func(c *history.Controller, cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		text := strings.TrimSpace(strings.Join(args[1:], " "))
		if text == "" {
			return errors.New("task text must not be empty")
		}

		_, err = c.Modify(id, func(f *models.TaskFields) {
			f.Text = text
		})
		if err != nil {
			return err
		}

		fmt.Printf("Task %d updated\n", id)
		return nil
	}),
}

var removeCmd = &cobra.Command{
	Use:     "rm <task-id>",
	Aliases: []string{"remove"},
	Short:   "Remove a task",
	Args:    cobra.ExactArgs(1),
	RunE: withController(func(c *history.Controller, cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if _, err := c.Delete(id); err != nil {
			return err
		}

		fmt.Printf("Task %d removed\n", id)
		return nil
	}),
}
