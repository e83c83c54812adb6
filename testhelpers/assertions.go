package testhelpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ctxmenu.dev/ctxmenu/internal/marker"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. This is useful for test setup code
// where errors are not expected and should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectPatched asserts that the workbench carries exactly one block for sessionID
func ExpectPatched(t *testing.T, scene *Scene, sessionID string) {
	t.Helper()

	content := scene.Read(t)
	id, ok := marker.ExtractSessionID(content)
	require.True(t, ok, "workbench has no session sentinel")
	require.Equal(t, sessionID, id)
	require.Equal(t, 1, strings.Count(content, marker.StartSentinel), "start sentinels")
	require.Equal(t, 1, strings.Count(content, marker.EndSentinel), "end sentinels")
	require.Equal(t, 1, strings.Count(content, "VSCODE-CUSTOM-CSS-SESSION-ID"), "session sentinels")
}

// ExpectContent asserts the workbench holds exactly expected
func ExpectContent(t *testing.T, scene *Scene, expected string) {
	t.Helper()
	require.Equal(t, expected, scene.Read(t))
}

// ExpectBackups asserts the number of backup files beside the workbench
func ExpectBackups(t *testing.T, scene *Scene, count int) {
	t.Helper()
	require.Len(t, scene.Backups(t), count, "backups: %v", scene.Backups(t))
}
