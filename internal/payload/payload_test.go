package payload

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	cmerrors "ctxmenu.dev/ctxmenu/internal/errors"
)

func TestSubstitute(t *testing.T) {
	t.Parallel()

	out := Substitute("a=%showGoTos%;b=%showClipboardItems%;c=%showGoTos%", Options{ShowGoTos: true})
	require.Equal(t, "a=true;b=false;c=true", out)
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("wraps the embedded template in a script tag", func(t *testing.T) {
		t.Parallel()
		out, err := Renderer{Options: Options{ShowGoTos: false, ShowClipboardItems: true}}.Render()
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(out, "<script>"))
		require.True(t, strings.HasSuffix(out, "</script>"))
		require.Contains(t, out, "const SHOW_GOTOS = false;")
		require.Contains(t, out, "const SHOW_CLIPBOARD_ITEMS = true;")
		require.NotContains(t, out, "%show")
	})

	t.Run("reads an external template", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "user.js")
		require.NoError(t, os.WriteFile(path, []byte("go(%showGoTos%)"), 0600))

		out, err := Renderer{TemplatePath: path, Options: Options{ShowGoTos: true}}.Render()
		require.NoError(t, err)
		require.Equal(t, "<script>go(true)</script>", out)
	})

	t.Run("reports an unreadable template as a read error", func(t *testing.T) {
		t.Parallel()
		_, err := Renderer{TemplatePath: filepath.Join(t.TempDir(), "missing.js")}.Render()
		require.Error(t, err)
		require.True(t, errors.Is(err, cmerrors.ErrRead))
	})
}

func TestDefaultTemplateCarriesPlaceholders(t *testing.T) {
	t.Parallel()

	tmpl := DefaultTemplate()
	require.Contains(t, tmpl, ShowGoTosPlaceholder)
	require.Contains(t, tmpl, ShowClipboardItemsPlaceholder)
}
