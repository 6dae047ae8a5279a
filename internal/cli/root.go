// Package cli wires configuration, storage and the tracker behind a cobra
// command tree. Running taskpad with no subcommand opens the TUI.
package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string

	now    func() time.Time
	newID  func() string
	runTUI func(ctx context.Context, m tea.Model) error
}

// Execute runs the root command against os.Args.
func Execute(version string) error {
	cmd := NewRootCmd(version)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(&rootOptions{runTUI: runProgram}, version)
}

func newRootCmd(opts *rootOptions, version string) *cobra.Command {
	tui := newTUICmd(opts)
	root := &cobra.Command{
		Use:   "taskpad",
		Short: "Personal task tracker with overdue notifications",
		Long: `taskpad keeps a local list of tasks with optional due dates and statuses.

Run without a subcommand to open the terminal UI, or use the subcommands
below for scripting.`,
		RunE:          tui.RunE,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log.SetOutput(cmd.ErrOrStderr())
			log.SetFlags(0)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default $TASKPAD_CONFIG or ~/.config/taskpad/config.yaml)")

	root.AddCommand(tui)
	root.AddCommand(newAddCmd(opts))
	root.AddCommand(newListCmd(opts))
	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newEditCmd(opts))
	root.AddCommand(newRemoveCmd(opts))
	root.AddCommand(newClearDoneCmd(opts))
	root.AddCommand(newCountsCmd(opts))
	root.AddCommand(newImportCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newNotifyCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}
