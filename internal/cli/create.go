package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/foodlog/pkg/types"
)

func newCreateCmd(a *app) *cobra.Command {
	var userID, createdAt string
	cmd := &cobra.Command{
		Use:   "create --user-id <id> [key=value...]",
		Short: "Create a food log entry",
		Long: `Create stores a new food log entry for a user. Extra fields are given as
key=value pairs; values that parse as JSON keep their type.

Without --created-at the entry is stamped with the current UTC time.

Example:
  foodlog create --user-id 42 food_name=oatmeal calories=150
  foodlog create --user-id 42 --created-at 2025-01-01T08:00:00Z meal=breakfast`,
		Args: userArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseAssignments(args)
			if err != nil {
				return err
			}

			svc, closeFn, err := a.openService()
			if err != nil {
				return err
			}
			defer closeFn()

			rec, err := svc.Create(cmd.Context(), types.FoodLogRecord{
				UserID:    userID,
				CreatedAt: createdAt,
				Fields:    fields,
			})
			if err != nil {
				return err
			}

			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), rec)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", rec.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "", "owning user (required)")
	cmd.Flags().StringVar(&createdAt, "created-at", "", "creation time, ISO-8601 (default: now)")
	return cmd
}
