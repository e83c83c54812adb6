package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ctxmenu",
		Short: "ctxmenu customizes the VS Code context menu by patching the workbench",
		Long: `ctxmenu customizes the VS Code context menu by injecting a script into the
workbench markup file, and removes that script again on demand.

Patching modifies the VS Code installation itself. A backup of the
workbench file is taken before every install and restored by uninstall.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to the configuration file (default: $CTXMENU_CONFIG or the user config directory)")
	rootCmd.PersistentFlags().String("install-path", "", "VS Code application directory to patch, overriding vscodeInstallPath")

	// Add subcommands
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUninstallCmd())
	rootCmd.AddCommand(newDeactivateCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newLocateCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}
