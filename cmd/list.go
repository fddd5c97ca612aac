package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"shsplit.dev/pkg/shsplit/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <module.sh>",
		Short: "List a module's top-level functions and their extraction targets",
		Long:  "List the top-level functions a split would extract, with their target paths and collision status. Never modifies anything.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.List(context.Background(), domain.ListArgs{
				Module: modulePath(args),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
