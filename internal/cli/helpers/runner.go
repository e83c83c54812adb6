// Package helpers provides shared helper functions for CLI commands.
package helpers

import (
	"github.com/spf13/cobra"

	"ctxmenu.dev/ctxmenu/internal/runtime"
)

// Run is a helper that provides a runtime context to a command's execution function
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	configPath, _ := cmd.Flags().GetString("config")
	installPath, _ := cmd.Flags().GetString("install-path")

	ctx, err := runtime.GetContext(cmd.Context(), runtime.Options{
		ConfigPath:  configPath,
		InstallPath: installPath,
		Out:         cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = ctx.Splog.Close() }()

	return fn(ctx)
}
