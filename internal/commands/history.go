package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/listr/internal/db"
	"github.com/balkashynov/listr/internal/history"
	"github.com/balkashynov/listr/internal/models"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the undo and redo logs",
	Long: `Show the pending undo and redo steps, newest first.

--clear empties both logs without touching any task. Use it when a log no
longer matches the tasks, for example after the database was edited by hand.`,
	Args: cobra.NoArgs,
	RunE: withController(func(c *history.Controller, cmd *cobra.Command, args []string) error {
		clearLogs, _ := cmd.Flags().GetBool("clear")
		if clearLogs {
			if err := c.ClearHistory(); err != nil {
				return err
			}
			fmt.Println("History cleared")
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		for _, log := range []db.Log{db.UndoLog, db.RedoLog} {
			entries, err := c.Entries(log, limit)
			if err != nil {
				return err
			}
			printEntries(log, entries)
		}
		return nil
	}),
}

// printEntries prints one history log
func printEntries(log db.Log, entries []models.HistoryEntry) {
	fmt.Printf("%s (%d):\n", log, len(entries))
	if len(entries) == 0 {
		fmt.Println("  empty")
		return
	}
	for _, entry := range entries {
		fmt.Printf("  %-4d %s\n", entry.ID, describeEntry(entry))
	}
}

// describeEntry renders an entry as the action replaying it would take
func describeEntry(entry models.HistoryEntry) string {
	inv, err := history.Decode(entry)
	if err != nil {
		return fmt.Sprintf("corrupt: %v", err)
	}

	switch v := inv.(type) {
	case history.Recreate:
		return fmt.Sprintf("restore task %d %q", v.Task.ID, v.Task.Text)
	case history.Remove:
		return fmt.Sprintf("remove task %d", v.ID)
	case history.Reinstate:
		return fmt.Sprintf("revert task %d to %q (%s)", v.Task.ID, v.Task.Text, v.Task.Status)
	default:
		return string(inv.Kind())
	}
}

func init() {
	historyCmd.Flags().Bool("clear", false, "Empty both logs")
	historyCmd.Flags().IntP("limit", "n", 0, "Show at most this many entries per log")
}
