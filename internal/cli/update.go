package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> key=value...",
		Short: "Change fields of a food log entry",
		Long: `Update sends only the given fields; every other field keeps its stored
value.

Example:
  foodlog update 0190c2a4-... calories=180 notes="with honey"`,
		Args: userArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}

			svc, closeFn, err := a.openService()
			if err != nil {
				return err
			}
			defer closeFn()

			rec, err := svc.Update(cmd.Context(), args[0], updates)
			if err != nil {
				return err
			}

			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), rec)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", rec.ID)
			return nil
		},
	}
}
