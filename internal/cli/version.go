package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/foodlog/pkg/foodlog"
)

const modulePath = "github.com/mesh-intelligence/foodlog"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the foodlog version",
		Args:  userArgs(cobra.NoArgs),
		// Replaces the root hook: version needs no config.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "foodlog v%s\nmodule: %s\n", foodlog.Version, modulePath)
			return nil
		},
	}
}
