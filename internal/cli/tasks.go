package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/query"
	"github.com/sandeepkv93/taskpad/internal/tracker"
	"github.com/spf13/cobra"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var details, due string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			task, err := s.tracker.Create(cmd.Context(), tracker.Draft{
				Title:   strings.Join(args, " "),
				Details: details,
				Due:     due,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %q\n", task.ID, task.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&details, "details", "d", "", "task details")
	cmd.Flags().StringVar(&due, "due", "", "due date as YYYY-MM-DD")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var filter, search string
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := query.ParseFilter(filter)
			if err != nil {
				return err
			}
			s, err := opts.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			tasks := s.tracker.View(f, search)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(tasks)
			}
			writeTaskTable(cmd.OutOrStdout(), tasks, s.tracker.Today())
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "all, today, upcoming, done, overdue, pending or status:<Status>")
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive text in title or details")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func writeTaskTable(out io.Writer, tasks []model.Task, today model.Date) {
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks.")
		return
	}
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tDUE\tTITLE")
	for _, t := range tasks {
		due := "-"
		if t.HasDue() {
			due = t.Due.String()
			if t.IsOverdue(today) {
				due += " !"
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Status, due, t.Title)
	}
	_ = w.Flush()
}

// parseStatus accepts a status name in any letter case.
func parseStatus(raw string) (model.Status, error) {
	for _, s := range model.Statuses() {
		if strings.EqualFold(string(s), strings.TrimSpace(raw)) {
			return s, nil
		}
	}
	return model.ParseStatus(raw)
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Set a task's status",
		Long:  "Set a task's status to one of NotStarted, InProgress, Pending, Blocked, Completed.\nThe id may be any unique prefix.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := parseStatus(args[1])
			if err != nil {
				return err
			}
			s, err := opts.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := s.tracker.Resolve(args[0])
			if err != nil {
				return err
			}
			task, err := s.tracker.UpdateStatus(cmd.Context(), id, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q is now %s\n", task.ID, task.Title, task.Status)
			return nil
		},
	}
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	var title, details, due string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task's title, details or due date",
		Long:  "Only the flags given are changed. Pass an empty --details or --due to clear that field.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("title") && !flags.Changed("details") && !flags.Changed("due") {
				return fmt.Errorf("nothing to edit: pass --title, --details or --due")
			}
			s, err := opts.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := s.tracker.Resolve(args[0])
			if err != nil {
				return err
			}
			current, err := s.tracker.Get(id)
			if err != nil {
				return err
			}
			draft := tracker.Draft{Title: current.Title, Details: current.Details, Due: current.Due.String()}
			if flags.Changed("title") {
				draft.Title = title
			}
			if flags.Changed("details") {
				draft.Details = details
			}
			if flags.Changed("due") {
				draft.Due = due
			}
			task, err := s.tracker.Edit(cmd.Context(), id, draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s %q\n", task.ID, task.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&details, "details", "d", "", "new details")
	cmd.Flags().StringVar(&due, "due", "", "new due date as YYYY-MM-DD")
	return cmd
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete tasks",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			for _, target := range args {
				id, err := s.tracker.Resolve(target)
				if err != nil {
					return err
				}
				if err := s.tracker.Delete(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			}
			return nil
		},
	}
}

func newClearDoneCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-done",
		Short: "Delete every completed task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.tracker.ClearCompleted(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %d completed task(s)\n", n)
			return nil
		},
	}
}

func newCountsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Show dashboard counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			c := s.tracker.Counts()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintf(w, "overdue\t%d\n", c.Overdue)
			fmt.Fprintf(w, "due today\t%d\n", c.DueToday)
			fmt.Fprintf(w, "pending\t%d\n", c.Pending)
			fmt.Fprintf(w, "completed\t%d\n", c.Completed)
			for _, status := range model.Statuses() {
				fmt.Fprintf(w, "%s\t%d\n", status, c.ByStatus[status])
			}
			return w.Flush()
		},
	}
}
