package patch_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	cmerrors "ctxmenu.dev/ctxmenu/internal/errors"
	"ctxmenu.dev/ctxmenu/internal/marker"
	"ctxmenu.dev/ctxmenu/internal/patch"
	"ctxmenu.dev/ctxmenu/testhelpers"
)

const minimal = "<html><body>x</body></html>"

type staticRenderer string

func (r staticRenderer) Render() (string, error) { return string(r), nil }

type failingRenderer struct{}

func (failingRenderer) Render() (string, error) {
	return "", cmerrors.NewReadError("user.js", os.ErrNotExist)
}

func newEngine(scene *testhelpers.Scene) *patch.Engine {
	return patch.New(scene.Workbench, patch.WithRenderer(staticRenderer("<script>menu()</script>")))
}

func TestInstall(t *testing.T) {
	t.Parallel()

	t.Run("inserts the block before the closing root tag", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneAt(t, testhelpers.DefaultWorkbenchPath, minimal, nil)

		_, err := newEngine(scene).Install(context.Background(), "abc-123")
		require.NoError(t, err)

		expected := "<html><body>x</body>" +
			"<!-- !! VSCODE-CUSTOM-CSS-SESSION-ID abc-123 !! -->\n" +
			"<!-- !! VSCODE-CUSTOM-CSS-START !! -->\n" +
			"<script>menu()</script>\n" +
			"<!-- !! VSCODE-CUSTOM-CSS-END !! -->\n" +
			"</html>"
		testhelpers.ExpectContent(t, scene, expected)
		testhelpers.ExpectBackups(t, scene, 1)
	})

	t.Run("writes the pre-patch content as backup", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, nil)
		eng := newEngine(scene)

		result, err := eng.Install(context.Background(), "abc-123")
		require.NoError(t, err)
		require.Equal(t, eng.Store().PathFor("abc-123"), result.BackupPath)

		backup, err := os.ReadFile(result.BackupPath)
		require.NoError(t, err)
		require.Equal(t, testhelpers.Workbench, string(backup))
	})

	t.Run("removes the content security policy", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, nil)

		result, err := newEngine(scene).Install(context.Background(), "abc-123")
		require.NoError(t, err)
		require.True(t, result.RemovedCSP)
		require.NotContains(t, scene.Read(t), "Content-Security-Policy")
		testhelpers.ExpectPatched(t, scene, "abc-123")
	})

	t.Run("replaces an existing patch instead of stacking", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, nil)
		eng := newEngine(scene)

		_, err := eng.Install(context.Background(), "aaa")
		require.NoError(t, err)
		result, err := eng.Install(context.Background(), "bbb")
		require.NoError(t, err)

		require.Equal(t, "aaa", result.PreviousSessionID)
		testhelpers.ExpectPatched(t, scene, "bbb")
		testhelpers.ExpectBackups(t, scene, 2)

		backup, err := eng.Store().Restore("bbb")
		require.NoError(t, err)
		require.Equal(t, testhelpers.Workbench, backup)
	})

	t.Run("strips a patch whose backup is gone", func(t *testing.T) {
		t.Parallel()
		patched := "<html><body>x</body>" + marker.Block("dead", "<script></script>") + "</html>"
		scene := testhelpers.NewSceneAt(t, testhelpers.DefaultWorkbenchPath, patched, nil)
		eng := newEngine(scene)

		_, err := eng.Install(context.Background(), "beef")
		require.NoError(t, err)

		backup, err := eng.Store().Restore("beef")
		require.NoError(t, err)
		require.Equal(t, minimal, backup)
		testhelpers.ExpectPatched(t, scene, "beef")
	})

	t.Run("refuses a document without a closing root tag", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneAt(t, testhelpers.DefaultWorkbenchPath, "<html><body>", nil)

		_, err := newEngine(scene).Install(context.Background(), "abc")
		require.True(t, errors.Is(err, cmerrors.ErrNoRootTag))
		testhelpers.ExpectContent(t, scene, "<html><body>")
		testhelpers.ExpectBackups(t, scene, 0)
	})

	t.Run("leaves no backup when the template cannot be read", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, nil)
		eng := patch.New(scene.Workbench, patch.WithRenderer(failingRenderer{}))

		_, err := eng.Install(context.Background(), "abc")
		require.True(t, errors.Is(err, cmerrors.ErrRead))
		testhelpers.ExpectContent(t, scene, testhelpers.Workbench)
		testhelpers.ExpectBackups(t, scene, 0)
	})

	t.Run("rejects invalid session ids", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, nil)

		_, err := newEngine(scene).Install(context.Background(), "not a session")
		require.True(t, errors.Is(err, cmerrors.ErrInvalidSessionID))
	})

	t.Run("reports a missing workbench as a read error", func(t *testing.T) {
		t.Parallel()
		eng := patch.New(filepath.Join(t.TempDir(), "workbench.html"))

		_, err := eng.Install(context.Background(), "abc")
		require.True(t, errors.Is(err, cmerrors.ErrRead))
	})

	t.Run("surfaces permission errors as write errors", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		scene.MakeReadOnly(t)

		_, err := newEngine(scene).Install(context.Background(), "abc")
		require.True(t, errors.Is(err, cmerrors.ErrWrite))

		require.ErrorIs(t, err, fs.ErrPermission)

		var writeErr *cmerrors.WriteError
		require.True(t, errors.As(err, &writeErr))
		require.True(t, writeErr.Privileged())
		testhelpers.ExpectContent(t, scene, testhelpers.Workbench)
	})

	t.Run("does nothing once the context is canceled", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newEngine(scene).Install(ctx, "abc")
		require.ErrorIs(t, err, context.Canceled)
		testhelpers.ExpectContent(t, scene, testhelpers.Workbench)
		testhelpers.ExpectBackups(t, scene, 0)
	})
}

func TestUninstall(t *testing.T) {
	t.Parallel()

	t.Run("round trips a clean document byte for byte", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, nil)
		eng := newEngine(scene)

		_, err := eng.Install(context.Background(), "abc-123")
		require.NoError(t, err)
		result, err := eng.Uninstall(context.Background())
		require.NoError(t, err)

		require.Equal(t, "abc-123", result.SessionID)
		require.True(t, result.Restored)
		require.Equal(t, 1, result.Purged)
		testhelpers.ExpectContent(t, scene, testhelpers.Workbench)
		testhelpers.ExpectBackups(t, scene, 0)
	})

	t.Run("restores the original after repeated installs", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, nil)
		eng := newEngine(scene)

		for _, id := range []string{"aaa", "bbb", "ccc"} {
			_, err := eng.Install(context.Background(), id)
			require.NoError(t, err)
		}
		result, err := eng.Uninstall(context.Background())
		require.NoError(t, err)

		require.Equal(t, "ccc", result.SessionID)
		require.Equal(t, 3, result.Purged)
		testhelpers.ExpectContent(t, scene, testhelpers.Workbench)
		testhelpers.ExpectBackups(t, scene, 0)
	})

	t.Run("restores the minimal example", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneAt(t, testhelpers.DefaultWorkbenchPath, minimal, nil)
		eng := newEngine(scene)

		_, err := eng.Install(context.Background(), "abc-123")
		require.NoError(t, err)
		_, err = eng.Uninstall(context.Background())
		require.NoError(t, err)
		testhelpers.ExpectContent(t, scene, minimal)
	})

	t.Run("is a no-op on an unpatched document", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, nil)
		stale := scene.WriteBackup(t, "aaa", "stale")

		result, err := newEngine(scene).Uninstall(context.Background())
		require.NoError(t, err)
		require.Empty(t, result.SessionID)
		require.False(t, result.Restored)
		testhelpers.ExpectContent(t, scene, testhelpers.Workbench)
		require.FileExists(t, stale)
	})

	t.Run("is a no-op when the workbench is missing", func(t *testing.T) {
		t.Parallel()
		eng := patch.New(filepath.Join(t.TempDir(), "workbench.html"))

		result, err := eng.Uninstall(context.Background())
		require.NoError(t, err)
		require.False(t, result.Restored)
	})

	t.Run("refuses to write without a backup", func(t *testing.T) {
		t.Parallel()
		patched := "<html>" + marker.Block("abc", "<script></script>") + "</html>"
		scene := testhelpers.NewSceneAt(t, testhelpers.DefaultWorkbenchPath, patched, nil)
		scene.WriteBackup(t, "other", "<html></html>")

		_, err := newEngine(scene).Uninstall(context.Background())
		require.True(t, errors.Is(err, cmerrors.ErrBackupNotFound))
		testhelpers.ExpectContent(t, scene, patched)
		testhelpers.ExpectBackups(t, scene, 1)
	})

	t.Run("uses the session embedded in the file, not stale backups", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneAt(t, testhelpers.DefaultWorkbenchPath, minimal, nil)
		scene.WriteBackup(t, "0000", "<html>stale</html>")
		eng := newEngine(scene)

		_, err := eng.Install(context.Background(), "1111")
		require.NoError(t, err)
		id, ok := marker.ExtractSessionID(scene.Read(t))
		require.True(t, ok)
		require.Equal(t, "1111", id)

		_, err = eng.Uninstall(context.Background())
		require.NoError(t, err)
		testhelpers.ExpectContent(t, scene, minimal)
		testhelpers.ExpectBackups(t, scene, 0)
	})

	t.Run("writes the backup content unchanged", func(t *testing.T) {
		t.Parallel()
		patched := "<html>" + marker.Block("abc", "<script></script>") + "</html>"
		scene := testhelpers.NewSceneAt(t, testhelpers.DefaultWorkbenchPath, patched, nil)
		saved := "<html>" + marker.Block("old", "<style></style>") + "</html>"
		scene.WriteBackup(t, "abc", saved)

		result, err := newEngine(scene).Uninstall(context.Background())
		require.NoError(t, err)
		require.True(t, result.Restored)
		testhelpers.ExpectContent(t, scene, saved)
	})

	t.Run("keeps the permission cause when the directory is read-only", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		eng := newEngine(scene)
		_, err := eng.Install(context.Background(), "abc")
		require.NoError(t, err)
		patched := scene.Read(t)
		scene.MakeReadOnly(t)

		_, err = eng.Uninstall(context.Background())
		require.ErrorIs(t, err, fs.ErrPermission)
		testhelpers.ExpectContent(t, scene, patched)
	})

	t.Run("purges every stale backup", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, nil)
		for _, id := range []string{"a1", "b2", "c3"} {
			scene.WriteBackup(t, id, "stale")
		}
		eng := newEngine(scene)

		_, err := eng.Install(context.Background(), "d4")
		require.NoError(t, err)
		result, err := eng.Uninstall(context.Background())
		require.NoError(t, err)
		require.Equal(t, 4, result.Purged)
		testhelpers.ExpectBackups(t, scene, 0)
	})
}

func TestConcurrentInstalls(t *testing.T) {
	t.Parallel()

	scene := testhelpers.NewScene(t, nil)
	eng := newEngine(scene)

	ids := []string{"a", "b", "c", "d", "e", "f", "0", "1"}
	errs := make(chan error, len(ids))
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := eng.Install(context.Background(), id)
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	content := scene.Read(t)
	require.Equal(t, 1, strings.Count(content, marker.StartSentinel))
	require.Equal(t, 1, strings.Count(content, "VSCODE-CUSTOM-CSS-SESSION-ID"))

	_, err := eng.Uninstall(context.Background())
	require.NoError(t, err)
	testhelpers.ExpectContent(t, scene, testhelpers.Workbench)
}

func TestStatus(t *testing.T) {
	t.Parallel()

	scene := testhelpers.NewScene(t, nil)
	scene.WriteBackup(t, "01d", "stale")
	eng := newEngine(scene)

	status, err := eng.Status(context.Background())
	require.NoError(t, err)
	require.False(t, status.Patched)
	require.Len(t, status.Orphans(), 1)

	_, err = eng.Install(context.Background(), "abc")
	require.NoError(t, err)

	status, err = eng.Status(context.Background())
	require.NoError(t, err)
	require.True(t, status.Patched)
	require.Equal(t, "abc", status.SessionID)
	require.True(t, status.BackupPresent)
	require.Len(t, status.Backups, 2)
	require.Len(t, status.Orphans(), 1)
	require.Equal(t, scene.Workbench, status.Target)
}

func TestDiff(t *testing.T) {
	t.Parallel()

	scene := testhelpers.NewScene(t, nil)
	eng := newEngine(scene)

	diff, err := eng.Diff(context.Background())
	require.NoError(t, err)
	require.Empty(t, diff)

	_, err = eng.Install(context.Background(), "abc")
	require.NoError(t, err)

	diff, err = eng.Diff(context.Background())
	require.NoError(t, err)
	require.Contains(t, diff, "-\t\t\thttp-equiv=\"Content-Security-Policy\"\n")
	require.Contains(t, diff, "+<!-- !! VSCODE-CUSTOM-CSS-START !! -->\n")
	require.Contains(t, diff, "+<script>menu()</script>\n")
}
