package cli

import (
	"github.com/spf13/cobra"

	"ctxmenu.dev/ctxmenu/internal/actions"
	"ctxmenu.dev/ctxmenu/internal/cli/helpers"
	"ctxmenu.dev/ctxmenu/internal/runtime"
)

// newInstallCmd creates the install command
func newInstallCmd() *cobra.Command {
	var flags restartFlags

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Enable the custom context menu",
		Long: `Enable the custom context menu.

Backs up the workbench file, removes its Content-Security-Policy tag and
injects the context menu script. Running install again replaces the
previous injection instead of adding a second one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.InstallAction(ctx, actions.InstallOptions{Restart: flags.mode()})
			})
		},
	}
	flags.register(cmd)

	return cmd
}
