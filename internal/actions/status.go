package actions

import (
	"fmt"
	"strings"
	"time"

	"ctxmenu.dev/ctxmenu/internal/backup"
	"ctxmenu.dev/ctxmenu/internal/runtime"
	"ctxmenu.dev/ctxmenu/internal/tui"
)

// StatusOptions contains options for the status command
type StatusOptions struct {
	Diff bool
}

// StatusAction reports whether the workbench file is patched and which backups exist
func StatusAction(ctx *runtime.Context, opts StatusOptions) error {
	splog := ctx.Splog

	session, err := ctx.NewSession()
	if err != nil {
		return reportFailure(ctx, err)
	}

	status, err := session.Engine.Status(ctx.Context)
	if err != nil {
		return reportFailure(ctx, err)
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("%s %s", label("workbench"), tui.ColorPath(status.Target)))
	switch {
	case status.SessionID != "":
		lines = append(lines, fmt.Sprintf("%s yes %s", label("patched"), tui.ColorDim("(session "+status.SessionID+")")))
		if status.BackupPresent {
			lines = append(lines, fmt.Sprintf("%s present", label("backup")))
		} else {
			lines = append(lines, fmt.Sprintf("%s %s", label("backup"), tui.Notice(tui.NoticeWarning, "missing, uninstall cannot restore this session")))
		}
	case status.Patched:
		lines = append(lines, fmt.Sprintf("%s %s", label("patched"), tui.Notice(tui.NoticeWarning, "yes, but without a session id")))
	default:
		lines = append(lines, fmt.Sprintf("%s no", label("patched")))
	}

	orphans := status.Orphans()
	summary := fmt.Sprintf("%d", len(status.Backups))
	if len(orphans) > 0 {
		summary += tui.ColorDim(fmt.Sprintf(" (%d stale)", len(orphans)))
	}
	lines = append(lines, fmt.Sprintf("%s %s", label("backups"), summary))
	for _, b := range status.Backups {
		lines = append(lines, "  "+formatBackup(b, b.SessionID == status.SessionID))
	}

	splog.Page(strings.Join(lines, "\n"))
	splog.Newline()

	if !opts.Diff || status.SessionID == "" {
		return nil
	}
	diff, err := session.Engine.Diff(ctx.Context)
	if err != nil {
		return reportFailure(ctx, err)
	}
	if diff != "" {
		splog.Newline()
		splog.Page(diff)
	}
	return nil
}

func label(name string) string {
	return fmt.Sprintf("%-10s", name+":")
}

func formatBackup(b backup.Info, current bool) string {
	line := fmt.Sprintf("%s  %s  %s", b.SessionID, formatSize(b.Size), b.ModTime.Format(time.DateTime))
	if current {
		return line + " " + tui.ColorDim("(installed)")
	}
	return line
}

func formatSize(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
