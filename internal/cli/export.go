package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ExportCmd prints the current directory as JSON.
func ExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the current directory as JSON",
		Long: `Print the directory exactly as the API serves it: stored data merged over
the defaults. The output can be fed back with "navdir import".

Examples:
  navdir export
  navdir export -o backup.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			acc, cleanup, err := openStore(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res := acc.LoadDirectory(ctx)
			if res.Recovered() {
				warn(cmd, "stored directory unreadable, exporting defaults: %v", res.Err)
			}

			data, err := json.MarshalIndent(res.Value, "", "  ")
			if err != nil {
				return fmt.Errorf("encode directory: %w", err)
			}
			data = append(data, '\n')

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			success(cmd, "exported %d links and %d categories to %s (source: %s)",
				len(res.Value.Links), len(res.Value.Categories), output, res.Source)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
