package patch

import (
	"context"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"ctxmenu.dev/ctxmenu/internal/marker"
)

// Diff returns the lines that differ between the installed session's backup
// and the current workbench file, prefixed with "-" and "+". An unpatched file
// yields an empty diff.
func (e *Engine) Diff(_ context.Context) (string, error) {
	content, err := e.read()
	if err != nil {
		return "", err
	}

	sessionID, ok := marker.ExtractSessionID(content)
	if !ok {
		return "", nil
	}
	original, err := e.store.Restore(sessionID)
	if err != nil {
		return "", err
	}
	return LineDiff(original, content), nil
}

// LineDiff renders a line-oriented diff of two texts, changed lines only
func LineDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				out.WriteByte('\n')
			}
		}
	}
	return out.String()
}
