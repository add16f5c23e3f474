package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/listr/internal/history"
	"github.com/balkashynov/listr/internal/models"
)

var searchCmd = &cobra.Command{
	Use:   "search <content>",
	Short: "Search tasks by text",
	Long: `Search tasks whose text contains the given content.

Search is case insensitive and includes archived tasks.`,
	Args: cobra.MinimumNArgs(1),
	RunE: withController(func(c *history.Controller, cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		matches, err := c.Search(query)
		if err != nil {
			return fmt.Errorf("searching tasks: %w", err)
		}

		ids := make(map[uint]struct{}, len(matches))
		for _, task := range matches {
			ids[task.ID] = struct{}{}
		}

		return printTasks(cmd, c, func(task models.Task) bool {
			_, ok := ids[task.ID]
			return ok
		}, true)
	}),
}

func init() {
	addOutputFlags(searchCmd)
}
