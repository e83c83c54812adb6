package actions

import (
	"errors"

	"github.com/google/uuid"

	cmerrors "ctxmenu.dev/ctxmenu/internal/errors"
	"ctxmenu.dev/ctxmenu/internal/runtime"
	"ctxmenu.dev/ctxmenu/internal/tui"
)

// InstallOptions contains options for the install command
type InstallOptions struct {
	Restart RestartMode
}

// InstallAction patches the workbench file with the context menu script under
// a fresh session id
func InstallAction(ctx *runtime.Context, opts InstallOptions) error {
	splog := ctx.Splog

	session, err := ctx.NewSession()
	if err != nil {
		return reportFailure(ctx, err)
	}

	result, err := session.Engine.Install(ctx.Context, uuid.NewString())
	if err != nil {
		var writeErr *cmerrors.WriteError
		if errors.As(err, &writeErr) {
			// The workbench file is untouched, so the menu stays disabled
			splog.Warn("%s", tui.Notice(tui.NoticeWarning, msgAdmin))
			splog.Info("%s", tui.Notice(tui.NoticeInfo, msgDisabled))
			if restartErr := offerRestart(ctx, session.Config, opts.Restart); restartErr != nil {
				splog.Debug("restart failed: %v", restartErr)
			}
			return err
		}
		return reportFailure(ctx, err)
	}

	if result.PreviousSessionID != "" {
		splog.Debug("replaced session %s", result.PreviousSessionID)
	}
	if result.RemovedCSP {
		splog.Debug("removed Content-Security-Policy meta tag")
	}
	splog.Debug("backup written to %s", result.BackupPath)

	splog.Success("%s", tui.Notice(tui.NoticeSuccess, msgEnabled))
	return offerRestart(ctx, session.Config, opts.Restart)
}
