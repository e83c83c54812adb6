package cli

import (
	"github.com/spf13/cobra"

	"ctxmenu.dev/ctxmenu/internal/actions"
	"ctxmenu.dev/ctxmenu/internal/cli/helpers"
	"ctxmenu.dev/ctxmenu/internal/runtime"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	var diff bool

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show whether the workbench is patched",
		Aliases: []string{"st"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.StatusAction(ctx, actions.StatusOptions{Diff: diff})
			})
		},
	}

	cmd.Flags().BoolVarP(&diff, "diff", "d", false, "Show the lines install changed")

	return cmd
}
