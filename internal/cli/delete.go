package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deleteResult is the JSON output of delete.
type deleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a food log entry",
		Args:  userArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := a.openService()
			if err != nil {
				return err
			}
			defer closeFn()

			ok, err := svc.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), deleteResult{ID: args[0], Deleted: ok})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
