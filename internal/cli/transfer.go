package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace all tasks with the contents of a JSON or CSV file",
		Long: `Import reads a JSON array or a CSV file with an id,title,details,due,status,createdAt
header and replaces the whole collection. Use - to read standard input.
Unreadable input leaves the existing tasks untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			if args[0] == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}

			s, err := opts.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			n, format, err := s.tracker.Import(cmd.Context(), string(raw))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d task(s) as %s\n", n, format)
			return nil
		},
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tasks as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "csv" && format != "json" {
				return fmt.Errorf("export format must be csv or json, got %q", format)
			}
			s, err := opts.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			var payload []byte
			if format == "json" {
				if payload, err = s.tracker.ExportJSON(); err != nil {
					return err
				}
				payload = append(payload, '\n')
			} else {
				payload = []byte(s.tracker.ExportCSV())
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(payload)
				return err
			}
			if err := os.WriteFile(out, payload, 0o644); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d task(s) to %s\n", len(s.tracker.Tasks()), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
