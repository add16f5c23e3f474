package commands

import (
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/listr/internal/config"
	"github.com/balkashynov/listr/internal/db"
	"github.com/balkashynov/listr/internal/history"
	"github.com/balkashynov/listr/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "listr",
	Short: "A command-line todo list with undo and redo",
	Long: `listr is a command-line todo list.
Add, update, complete and archive tasks from the terminal. Every change is
recorded, so 'listr undo' and 'listr redo' can step back and forth through it,
even across runs.

Running listr with no command lists pending and done tasks.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: withController(func(c *history.Controller, cmd *cobra.Command, args []string) error {
		return printTasks(cmd, c, tui.NotArchived, false)
	}),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("listr %s (commit %s, built %s)\n", version, commit, date)
	},
}

// openController loads the configuration and opens the task store it names.
// The returned function closes the store.
func openController(cmd *cobra.Command) (*history.Controller, func(), error) {
	dir, err := config.DefaultDir()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to locate home directory: %w", err)
	}

	cfg, err := config.Load(dir, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	opts := []db.Option{}
	if cfg.Verbose {
		opts = append(opts, db.WithLogLevel(logger.Info))
	}

	store, err := db.Open(cfg.DBPath, opts...)
	if err != nil {
		return nil, nil, err
	}

	controller := history.NewController(store, history.WithClearRedoOnWrite(cfg.ClearRedoOnWrite))
	closeStore := func() {
		if err := store.Close(); err != nil {
			log.Printf("warning: closing database: %v", err)
		}
	}
	return controller, closeStore, nil
}

// withController wraps a command function so it runs against an open store
func withController(fn func(*history.Controller, *cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		controller, closeStore, err := openController(cmd)
		if err != nil {
			return err
		}
		defer closeStore()
		return fn(controller, cmd, args)
	}
}

// parseID parses a task id argument
func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid task ID '%s'", arg)
	}
	return uint(id), nil
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to the task database (default ~/.listr/listr.db)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log SQL statements to stderr")
	addOutputFlags(rootCmd)

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(archivedCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoneCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(redoCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
