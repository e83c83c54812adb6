package cli

import (
	"github.com/spf13/cobra"

	"ctxmenu.dev/ctxmenu/internal/actions"
)

type restartFlags struct {
	restart   bool
	noRestart bool
}

func (f *restartFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.restart, "restart", false, "Run restartCommand without asking")
	cmd.Flags().BoolVar(&f.noRestart, "no-restart", false, "Never run restartCommand")
	cmd.MarkFlagsMutuallyExclusive("restart", "no-restart")
}

func (f *restartFlags) mode() actions.RestartMode {
	switch {
	case f.restart:
		return actions.RestartAlways
	case f.noRestart:
		return actions.RestartNever
	default:
		return actions.RestartAsk
	}
}
