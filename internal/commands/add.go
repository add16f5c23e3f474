package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/listr/internal/db"
	"github.com/balkashynov/listr/internal/history"
	"github.com/balkashynov/listr/internal/parser"
)

var addCmd = &cobra.Command{
	Use:   "add <task description>",
	Short: "Add a new task",
	Long: `Add a new task with an optional tag and due date.

Quick syntax:
  #tag        - Tag (one per task)
  due:3days   - Due date (yyyy-mm-dd, dd/mm/yyyy, today, tomorrow, X days, X weeks, +Nd, +Nw)

Example:
  listr add "Buy milk #errands due:tomorrow"

The --tag and --due flags take precedence over the quick syntax.`,
	Args: cobra.MinimumNArgs(1),
	RunE: withController(func(c *history.Controller, cmd *cobra.Command, args []string) error {
		parsed := parser.ParseText(strings.Join(args, " "))
		if len(parsed.Errors) > 0 {
			return errors.New(strings.Join(parsed.Errors, ", "))
		}

		req := db.CreateTaskRequest{
			Text:    parsed.Text,
			Tag:     parsed.Tag,
			DueDate: parsed.DueDate,
		}

		// Flags take precedence over the quick syntax
		if cmd.Flags().Changed("tag") {
			flagTag, _ := cmd.Flags().GetString("tag")
			req.Tag = parser.NormalizeTag(flagTag)
		}
		if flagDue, _ := cmd.Flags().GetString("due"); flagDue != "" {
			dueDate, err := parser.ParseDueDate(flagDue)
			if err != nil {
				return fmt.Errorf("parsing due date: %w", err)
			}
			req.DueDate = dueDate
		}

		if req.Text == "" {
			return errors.New("task text must not be empty")
		}

		task, err := c.Create(req)
		if err != nil {
			return fmt.Errorf("creating task: %w", err)
		}

		fmt.Printf("Task %d added: %s\n", task.ID, task.Text)
		if task.Tag != nil {
			fmt.Printf("  Tag: #%s\n", *task.Tag)
		}
		if task.DueDate != nil {
			fmt.Printf("  Due: %s\n", parser.FormatDueDate(task.DueDate))
		}
		return nil
	}),
}

func init() {
	addCmd.Flags().StringP("tag", "t", "", "Tag for the task")
	addCmd.Flags().StringP("due", "d", "", "Due date: yyyy-mm-dd, dd/mm/yyyy, today, tomorrow, X days, X weeks")
}
