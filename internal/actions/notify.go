package actions

import (
	"errors"

	cmerrors "ctxmenu.dev/ctxmenu/internal/errors"
	"ctxmenu.dev/ctxmenu/internal/runtime"
	"ctxmenu.dev/ctxmenu/internal/tui"
)

// reportFailure prints the notice matching err and returns err unchanged
func reportFailure(ctx *runtime.Context, err error) error {
	splog := ctx.Splog

	var writeErr *cmerrors.WriteError
	switch {
	case errors.Is(err, cmerrors.ErrPathNotFound):
		splog.Warn("%s", tui.Notice(tui.NoticeWarning, msgPathNotFound))
	case errors.As(err, &writeErr) && writeErr.Privileged():
		splog.Warn("%s", tui.Notice(tui.NoticeWarning, msgAdmin))
	default:
		splog.Error("%s", tui.Notice(tui.NoticeError, msgSomethingWrong+err.Error()))
	}
	return err
}
