// Package payload renders the script block injected into the workbench.
package payload

import (
	_ "embed"
	"os"
	"strconv"
	"strings"

	cmerrors "ctxmenu.dev/ctxmenu/internal/errors"
)

// Placeholder tokens substituted into the script template
const (
	ShowGoTosPlaceholder          = "%showGoTos%"
	ShowClipboardItemsPlaceholder = "%showClipboardItems%"
)

//go:embed static/user.js
var defaultTemplate string

// DefaultTemplate returns the script template shipped with the binary
func DefaultTemplate() string {
	return defaultTemplate
}

// Options are the feature toggles exposed to the script
type Options struct {
	ShowGoTos          bool
	ShowClipboardItems bool
}

// Renderer produces the markup inserted between the start and end sentinels
type Renderer struct {
	// TemplatePath replaces the embedded template when set
	TemplatePath string
	Options      Options
}

// Template returns the raw script template
func (r Renderer) Template() (string, error) {
	if r.TemplatePath == "" {
		return defaultTemplate, nil
	}
	data, err := os.ReadFile(r.TemplatePath)
	if err != nil {
		return "", cmerrors.NewReadError(r.TemplatePath, err)
	}
	return string(data), nil
}

// Render returns the script element carrying the substituted template
func (r Renderer) Render() (string, error) {
	tmpl, err := r.Template()
	if err != nil {
		return "", err
	}
	return "<script>" + Substitute(tmpl, r.Options) + "</script>", nil
}

// Substitute replaces every placeholder token with its boolean literal
func Substitute(tmpl string, opts Options) string {
	return strings.NewReplacer(
		ShowGoTosPlaceholder, strconv.FormatBool(opts.ShowGoTos),
		ShowClipboardItemsPlaceholder, strconv.FormatBool(opts.ShowClipboardItems),
	).Replace(tmpl)
}
