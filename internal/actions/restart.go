package actions

import (
	"strings"

	"ctxmenu.dev/ctxmenu/internal/config"
	"ctxmenu.dev/ctxmenu/internal/runtime"
)

// RestartMode controls what happens after the workbench file changes
type RestartMode int

const (
	// RestartAsk asks before running restartCommand when a terminal is attached
	RestartAsk RestartMode = iota
	// RestartAlways runs restartCommand without asking
	RestartAlways
	// RestartNever only prints the reload tip
	RestartNever
)

// offerRestart runs the configured restart command when the user agrees.
// Declining or cancelling the prompt is not an error.
func offerRestart(ctx *runtime.Context, cfg *config.Config, mode RestartMode) error {
	splog := ctx.Splog

	command := cfg.RestartCommand
	if len(command) == 0 || mode == RestartNever {
		splog.Tip(msgReloadTip)
		return nil
	}

	if mode == RestartAsk {
		if ctx.Prompter == nil || !ctx.Prompter.Interactive() {
			splog.Tip(msgReloadTip)
			return nil
		}
		ok, err := ctx.Prompter.Confirm(msgRestartPrompt, false)
		if err != nil || !ok {
			return nil
		}
	}

	splog.Info("Running %s", strings.Join(command, " "))
	return ctx.Runner(ctx.Context, command[0], command[1:]...)
}
