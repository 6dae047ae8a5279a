package cli

import (
	"fmt"
	"log"

	"github.com/sandeepkv93/taskpad/internal/notify"
	"github.com/spf13/cobra"
)

func newNotifyCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send notifications for overdue tasks",
		Long: `Notify sends one notification per overdue task that has not been notified before.
With --force every overdue task is notified again, as when notifications are
first turned on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			host := notify.Log{Logger: log.New(cmd.OutOrStdout(), "", 0)}
			s, err := opts.open(cmd.Context(), host)
			if err != nil {
				return err
			}
			defer s.Close()

			sent, err := s.tracker.NotifyOverdue(cmd.Context(), force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %d notification(s), %d overdue\n", sent, s.badge.Count())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "notify every overdue task, ignoring the ledger")
	return cmd
}
