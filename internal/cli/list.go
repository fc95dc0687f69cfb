package cli

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/foodlog/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <user-id>",
		Short: "List a user's food log entries, newest first",
		Args:  userArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := a.openService()
			if err != nil {
				return err
			}
			defer closeFn()

			records, err := svc.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), records)
			}
			if len(records) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No entries for %s\n", args[0])
				return nil
			}
			return printTable(cmd.OutOrStdout(), records)
		},
	}
}

// printTable writes one row per record: id, created_at, then every field
// that appears in any record, sorted by name.
func printTable(w io.Writer, records []types.FoodLogRecord) error {
	columns := lo.Uniq(lo.FlatMap(records, func(r types.FoodLogRecord, _ int) []string {
		return lo.Keys(r.Fields)
	}))
	slices.Sort(columns)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "ID\tCREATED_AT")
	for _, col := range columns {
		fmt.Fprintf(tw, "\t%s", col)
	}
	fmt.Fprintln(tw)

	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s", r.ID, r.CreatedAt)
		for _, col := range columns {
			v, ok := r.Fields[col]
			if !ok || v == nil {
				fmt.Fprint(tw, "\t-")
				continue
			}
			fmt.Fprintf(tw, "\t%v", v)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
