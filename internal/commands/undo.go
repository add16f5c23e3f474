package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/listr/internal/history"
	"github.com/balkashynov/listr/internal/tui"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last change",
	Long: `Undo the most recent add, update, remove or status change.
Undone changes can be reapplied with 'listr redo' until a new change is made.`,
	Args: cobra.NoArgs,
	RunE: withController(func(c *history.Controller, cmd *cobra.Command, args []string) error {
		step, ok, err := c.Undo()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Nothing to undo")
			return nil
		}
		fmt.Println(tui.DescribeStep("Undid", step))
		return nil
	}),
}

var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Redo the last undone change",
	Args:  cobra.NoArgs,
	RunE: withController(func(c *history.Controller, cmd *cobra.Command, args []string) error {
		step, ok, err := c.Redo()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Nothing to redo")
			return nil
		}
		fmt.Println(tui.DescribeStep("Redid", step))
		return nil
	}),
}
