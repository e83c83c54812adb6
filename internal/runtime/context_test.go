package runtime

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	cmerrors "ctxmenu.dev/ctxmenu/internal/errors"
	"ctxmenu.dev/ctxmenu/testhelpers"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	t.Setenv("CTXMENU_LOG_FILE", filepath.Join(t.TempDir(), "ctxmenu.log"))
	t.Setenv("CTXMENU_SEARCH_PATHS", "")

	var buf bytes.Buffer
	c, err := GetContext(context.Background(), Options{
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
		Out:        &buf,
	})
	require.NoError(t, err)
	return c
}

func TestDetectRoots(t *testing.T) {
	t.Setenv("CTXMENU_SEARCH_PATHS", "/a"+string(os.PathListSeparator)+" "+string(os.PathListSeparator)+"/b")
	require.Equal(t, []string{"/a", "/b"}, DetectRoots())

	t.Setenv("CTXMENU_SEARCH_PATHS", "")
	require.Empty(t, DetectRoots())
}

func TestCandidateRoots(t *testing.T) {
	c := newTestContext(t)
	c.InstallPath = "/flag"
	c.DetectedRoots = []string{"/detected"}

	cfg, err := c.LoadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Set("vscodeInstallPath", "/configured"))

	require.Equal(t, []string{"/flag", "/configured", "/detected"}, c.CandidateRoots(cfg))
}

func TestNewSession(t *testing.T) {
	t.Run("reports path not found without roots", func(t *testing.T) {
		c := newTestContext(t)
		_, err := c.NewSession()
		require.True(t, errors.Is(err, cmerrors.ErrPathNotFound))
	})

	t.Run("re-reads configuration for every session", func(t *testing.T) {
		c := newTestContext(t)
		first := testhelpers.NewScene(t, nil)
		second := testhelpers.NewScene(t, nil)

		cfg, err := c.LoadConfig()
		require.NoError(t, err)
		require.NoError(t, cfg.Set("vscodeInstallPath", first.Root))
		require.NoError(t, cfg.Save(c.ConfigPath))

		session, err := c.NewSession()
		require.NoError(t, err)
		require.Equal(t, first.Workbench, session.Target)

		require.NoError(t, cfg.Set("vscodeInstallPath", second.Root))
		require.NoError(t, cfg.Save(c.ConfigPath))

		session, err = c.NewSession()
		require.NoError(t, err)
		require.Equal(t, second.Workbench, session.Target)
		require.Equal(t, second.Workbench, session.Engine.Target())
	})

	t.Run("command line override wins over configuration", func(t *testing.T) {
		c := newTestContext(t)
		configured := testhelpers.NewScene(t, nil)
		flagged := testhelpers.NewScene(t, nil)

		cfg := testhelpers.Must(c.LoadConfig())
		require.NoError(t, cfg.Set("vscodeInstallPath", configured.Root))
		require.NoError(t, cfg.Save(c.ConfigPath))
		c.InstallPath = flagged.Root

		session, err := c.NewSession()
		require.NoError(t, err)
		require.Equal(t, flagged.Workbench, session.Target)
	})
}
