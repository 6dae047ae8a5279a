package cli

import (
	"context"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/notify"
	"github.com/sandeepkv93/taskpad/internal/scheduler"
	"github.com/sandeepkv93/taskpad/internal/update"
	"github.com/spf13/cobra"
)

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal UI (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			recorder := notify.NewRecorder(5)
			s, err := opts.open(ctx, recorder)
			if err != nil {
				return err
			}
			defer s.Close()

			// Anything written to the terminal would corrupt the alternate screen.
			if s.cfg.LogFile != "" {
				f, err := tea.LogToFile(s.cfg.LogFile, "taskpad")
				if err != nil {
					return err
				}
				defer f.Close()
			} else {
				log.SetOutput(io.Discard)
			}

			engine := scheduler.NewEngine(s.cfg.SchedulerBuffer)
			engine.Start()
			defer engine.Stop()

			m := update.NewModel(s.tracker, update.Options{
				Context:   ctx,
				Scheduler: engine,
				Recheck:   s.cfg.RecheckInterval(),
				Badge:     s.badge,
				Recorder:  recorder,
				Now:       opts.now,
				Location:  s.loc,
			})
			return opts.runTUI(ctx, m)
		},
	}
}

func runProgram(ctx context.Context, m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
