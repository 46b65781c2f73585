package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/navdir/internal/domain"
	"github.com/MrSnakeDoc/navdir/internal/sources/seed"
)

// ImportCmd writes a file through the same merge as POST /api/links.
func ImportCmd() *cobra.Command {
	var (
		format string
		dryRun bool
	)

	formats := make([]string, 0, len(seed.Formats))
	for _, f := range seed.Formats {
		formats = append(formats, string(f))
	}

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Merge a directory file into the store",
		Long: `Merge a file into the stored directory. A links array replaces the links;
an object replaces every top-level member it carries (links, categories).
Homepage services.yaml and bookmarks.yaml replace both links and categories.

The format is detected from the file name unless --format is given.

Examples:
  navdir import links.jsonc
  navdir import directory.yaml
  navdir import --format homepage-services /srv/homepage/services.yaml
  navdir import --dry-run bookmarks.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			f, err := seed.ParseFormat(format)
			if err != nil {
				return err
			}
			payload, err := seed.ReadFile(args[0], f)
			if err != nil {
				return err
			}

			acc, cleanup, err := openStore(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if dryRun {
				current := acc.LoadDirectory(ctx)
				merged := domain.Merge(current.Value, payload)
				data, err := json.MarshalIndent(merged, "", "  ")
				if err != nil {
					return fmt.Errorf("encode directory: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			merged, err := acc.WriteDirectory(ctx, payload)
			if err != nil {
				return err
			}
			success(cmd, "imported %s: %d links, %d categories", args[0], len(merged.Links), len(merged.Categories))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "file format: "+strings.Join(formats, ", "))
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the merged directory without writing it")
	return cmd
}
