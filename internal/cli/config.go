package cli

import (
	"github.com/spf13/cobra"

	"ctxmenu.dev/ctxmenu/internal/actions"
	"ctxmenu.dev/ctxmenu/internal/cli/helpers"
	"ctxmenu.dev/ctxmenu/internal/runtime"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set configuration",
		Long: `Get and set configuration values.

Keys:
  vscodeInstallPath   VS Code application directory, tried before auto-detection
  showGoTos           keep the "Go to" entries in the context menu (true/false)
  showClipboardItems  keep the clipboard entries in the context menu (true/false)
  scriptPath          script template used instead of the built-in one
  restartCommand      command run to restart VS Code after a change

Examples:
  ctxmenu config get showGoTos
  ctxmenu config set showGoTos false
  ctxmenu config set restartCommand "code --reuse-window"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.ConfigListAction)
		},
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Edit the configuration file in $VISUAL or $EDITOR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.ConfigEditAction)
		},
	})

	return cmd
}

// newConfigGetCmd creates the config get command
func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "get <key>",
		Short:             "Get a configuration value",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.ConfigGetAction(ctx, args[0])
			})
		},
	}
}

// newConfigSetCmd creates the config set command
func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Set a configuration value",
		Long: `Set a configuration value. Without a value, prompts for one.
An empty value clears the key.`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: helpers.CompleteConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := actions.ConfigSetOptions{Key: args[0], Prompt: len(args) == 1}
			if len(args) == 2 {
				opts.Value = args[1]
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.ConfigSetAction(ctx, opts)
			})
		},
	}
}
