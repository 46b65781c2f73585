package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// PasswordCmd replaces the admin secret stored in the kv backend.
func PasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "password [NEW]",
		Short: "Set the admin password",
		Long: `Store a new admin password. The stored password takes precedence over
NAVDIR_ADMIN_SECRET. Without an argument the password is read from stdin.

Examples:
  navdir password 'correct horse battery staple'
  echo -n "$SECRET" | navdir password`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			var secret string
			if len(args) == 1 {
				secret = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password from stdin: %w", err)
				}
				secret = strings.TrimRight(line, "\r\n")
			}

			acc, cleanup, err := openStore(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := acc.WriteAdminSecret(ctx, secret); err != nil {
				return err
			}
			success(cmd, "admin password updated")
			return nil
		},
	}
}
