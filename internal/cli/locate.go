package cli

import (
	"github.com/spf13/cobra"

	"ctxmenu.dev/ctxmenu/internal/actions"
	"ctxmenu.dev/ctxmenu/internal/cli/helpers"
	"ctxmenu.dev/ctxmenu/internal/runtime"
)

// newLocateCmd creates the locate command
func newLocateCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "List the VS Code workbench files ctxmenu can find",
		Long: `List the VS Code workbench files ctxmenu can find.

The entry marked with * is the one install and uninstall use. With --save,
the chosen installation is stored as vscodeInstallPath.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.LocateAction(ctx, actions.LocateOptions{Save: save})
			})
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Store the installation as vscodeInstallPath")

	return cmd
}
