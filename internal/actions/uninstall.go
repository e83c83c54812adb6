package actions

import (
	"errors"

	cmerrors "ctxmenu.dev/ctxmenu/internal/errors"
	"ctxmenu.dev/ctxmenu/internal/runtime"
	"ctxmenu.dev/ctxmenu/internal/tui"
)

// UninstallOptions contains options for the uninstall command
type UninstallOptions struct {
	Restart RestartMode
}

// UninstallAction restores the workbench file from the installed session's
// backup and removes all backups
func UninstallAction(ctx *runtime.Context, opts UninstallOptions) error {
	splog := ctx.Splog

	session, err := ctx.NewSession()
	if err != nil {
		if errors.Is(err, cmerrors.ErrPathNotFound) {
			// Nothing to remove
			splog.Warn("%s", tui.Notice(tui.NoticeWarning, msgPathNotFound))
			splog.Debug("uninstall: %v", err)
			return nil
		}
		return reportFailure(ctx, err)
	}

	result, err := session.Engine.Uninstall(ctx.Context)
	if err != nil {
		if result.Restored {
			// Only the cleanup failed; the file itself is back to normal
			splog.Success("%s", tui.Notice(tui.NoticeSuccess, msgDisabled))
			if restartErr := offerRestart(ctx, session.Config, opts.Restart); restartErr != nil {
				splog.Debug("restart failed: %v", restartErr)
			}
			return err
		}
		return reportFailure(ctx, err)
	}

	if !result.Restored {
		splog.Info("%s", msgNotInstalled)
		return nil
	}

	splog.Debug("restored session %s, removed %d backup(s)", result.SessionID, result.Purged)
	splog.Success("%s", tui.Notice(tui.NoticeSuccess, msgDisabled))
	return offerRestart(ctx, session.Config, opts.Restart)
}

// DeactivateAction removes the patch without prompting or restarting. It is
// meant for uninstall hooks, so a missing installation is not an error.
func DeactivateAction(ctx *runtime.Context) error {
	session, err := ctx.NewSession()
	if err != nil {
		ctx.Splog.Debug("deactivate: %v", err)
		return nil
	}

	result, err := session.Engine.Uninstall(ctx.Context)
	if err != nil {
		return err
	}
	if result.Restored {
		ctx.Splog.Info("Restored %s", session.Target)
	}
	return nil
}
