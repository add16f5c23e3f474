package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/balkashynov/listr/internal/history"
	"github.com/balkashynov/listr/internal/models"
	"github.com/balkashynov/listr/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "ls [task-id]",
	Aliases: []string{"list"},
	Short:   "List pending and done tasks, or a single task",
	Long: `List every task that is not archived, newest first.

With a task id, print only that task.
With -i, open an interactive browser where tasks can be marked done,
archived, removed, searched and undone without leaving the list.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withController(func(c *history.Controller, cmd *cobra.Command, args []string) error {
		interactive, _ := cmd.Flags().GetBool("interactive")
		if interactive {
			return tui.RunBrowser(c)
		}

		if len(args) == 0 {
			return printTasks(cmd, c, tui.NotArchived, false)
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		task, err := c.Read(id)
		if err != nil {
			return err
		}
		return printSelection(cmd, []models.Task{*task}, func() {
			fmt.Println(tui.RenderTask(*task))
		})
	}),
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "List all tasks, archived included",
	Args:  cobra.NoArgs,
	RunE: withController(func(c *history.Controller, cmd *cobra.Command, args []string) error {
		return printTasks(cmd, c, tui.AllTasks, true)
	}),
}

var archivedCmd = &cobra.Command{
	Use:   "archived",
	Short: "List archived tasks",
	Args:  cobra.NoArgs,
	RunE: withController(func(c *history.Controller, cmd *cobra.Command, args []string) error {
		return printTasks(cmd, c, tui.OnlyArchived, true)
	}),
}

// printTasks prints the tasks that pass filter, in the format requested on cmd
func printTasks(cmd *cobra.Command, c *history.Controller, filter tui.Filter, showArchived bool) error {
	tasks, err := c.ReadAll()
	if err != nil {
		return fmt.Errorf("fetching tasks: %w", err)
	}

	selected := []models.Task{}
	for _, task := range tui.SortNewestFirst(tasks) {
		if filter(task) {
			selected = append(selected, task)
		}
	}

	return printSelection(cmd, selected, func() {
		fmt.Print(tui.RenderTasks(tasks, filter, showArchived))
	})
}

// printSelection writes tasks as JSON or YAML when asked to, and calls
// render otherwise.
func printSelection(cmd *cobra.Command, tasks []models.Task, render func()) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	yamlOutput, _ := cmd.Flags().GetBool("yaml")

	switch {
	case jsonOutput && yamlOutput:
		return errors.New("--json and --yaml cannot be used together")

	case jsonOutput:
		jsonBytes, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Println(string(jsonBytes))

	case yamlOutput:
		yamlBytes, err := yaml.Marshal(tasks)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		fmt.Print(string(yamlBytes))

	default:
		render()
	}
	return nil
}

// addOutputFlags registers the machine-readable output flags
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output as JSON")
	cmd.Flags().Bool("yaml", false, "Output as YAML")
}

func init() {
	listCmd.Flags().BoolP("interactive", "i", false, "Browse tasks interactively")
	addOutputFlags(listCmd)
	addOutputFlags(allCmd)
	addOutputFlags(archivedCmd)
}
