package cli

import (
	"github.com/spf13/cobra"

	"ctxmenu.dev/ctxmenu/internal/actions"
	"ctxmenu.dev/ctxmenu/internal/cli/helpers"
	"ctxmenu.dev/ctxmenu/internal/runtime"
)

// newUninstallCmd creates the uninstall command
func newUninstallCmd() *cobra.Command {
	var flags restartFlags

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Disable the custom context menu and restore the workbench",
		Long: `Disable the custom context menu.

Restores the workbench file from the backup taken by install and deletes
every backup file next to it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.UninstallAction(ctx, actions.UninstallOptions{Restart: flags.mode()})
			})
		},
	}
	flags.register(cmd)

	return cmd
}

// newDeactivateCmd creates the hidden deactivate command, run by uninstall hooks
func newDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "deactivate",
		Short:  "Restore the workbench without prompting",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.DeactivateAction)
		},
	}
}
