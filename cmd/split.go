package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shsplit.dev/pkg/shsplit/internal/domain"
	m "shsplit.dev/pkg/shsplit/internal/model"
)

var splitDryRunFlag bool

// splitCmd represents the split command.
var splitCmd = newSplitCmd()

const splitLongDescription = `Split a shell module into one file per top-level function.

Each function's verbatim source moves to public/<name>.sh next to the
module. The module itself is rewritten without the function bodies and ends
with a generated loader block. If any target file already exists the whole
operation is withheld: nothing is written and the module stays untouched.

With --dry-run every decision is made but nothing is modified; the planned
files and a diff of the rewrite are printed instead.`

func newSplitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <module.sh>",
		Short: "Split a shell module into one file per function",
		Long:  splitLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Split(context.Background(), domain.SplitArgs{
				Module:  modulePath(args),
				DryRun:  viper.GetBool(dryRunConfigKey),
				Reports: m.Path(viper.GetString(outputFlagName)),
			})
		},
	}

	configureSplitFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(splitCmd)
}

func configureSplitFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&splitDryRunFlag, dryRunFlagName, "n", viper.GetBool(dryRunConfigKey), "decide everything, mutate nothing")
	bindFlagToConfig(cmd.Flags().Lookup(dryRunFlagName), dryRunConfigKey)
}
