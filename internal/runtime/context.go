// Package runtime provides the per-invocation context handed to every action.
// It replaces process-wide state: the configuration and the workbench path
// are resolved again for each operation instead of being cached.
package runtime

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"ctxmenu.dev/ctxmenu/internal/config"
	"ctxmenu.dev/ctxmenu/internal/output"
	"ctxmenu.dev/ctxmenu/internal/patch"
	"ctxmenu.dev/ctxmenu/internal/tui"
)

// CommandRunner runs an external command, used to restart the editor
type CommandRunner func(ctx context.Context, name string, args ...string) error

// EditFunc edits content in the user's editor and returns the result
type EditFunc func(initialContent, filenamePattern string) (string, error)

// Context provides access to logging, prompts and configuration for commands
type Context struct {
	Context context.Context
	Splog   *output.Splog

	// ConfigPath is the configuration file read at the start of each operation
	ConfigPath string
	// InstallPath overrides vscodeInstallPath for this invocation
	InstallPath string
	// DetectedRoots are tried after any override
	DetectedRoots []string

	Prompter tui.Prompter
	Runner   CommandRunner
	Editor   EditFunc
}

// Options configures GetContext
type Options struct {
	ConfigPath  string
	InstallPath string
	Out         io.Writer
}

// NewContext creates a context with console logging and the default collaborators
func NewContext(ctx context.Context) *Context {
	return &Context{
		Context:       ctx,
		Splog:         output.NewSplog(),
		ConfigPath:    config.DefaultPath(),
		DetectedRoots: DetectRoots(),
		Prompter:      tui.TerminalPrompter{},
		Runner:        ExecRunner,
		Editor:        tui.OpenEditor,
	}
}

// GetContext creates the context for a command invocation, including file
// logging to output.GetLogFilePath when the log directory is writable
func GetContext(ctx context.Context, opts Options) (*Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	c := NewContext(ctx)

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	splog, err := output.NewSplogWithConfig(out, output.GetLogFilePath())
	if err != nil {
		// File logging is optional
		splog, _ = output.NewSplogWithConfig(out, "")
	}
	c.Splog = splog

	if opts.ConfigPath != "" {
		c.ConfigPath = opts.ConfigPath
	}
	c.InstallPath = strings.TrimSpace(opts.InstallPath)
	return c, nil
}

// DetectRoots returns the auto-detected application roots. CTXMENU_SEARCH_PATHS,
// when set, replaces the built-in list with an os.PathListSeparator separated list.
func DetectRoots() []string {
	if paths, ok := os.LookupEnv("CTXMENU_SEARCH_PATHS"); ok {
		var roots []string
		for _, p := range filepath.SplitList(paths) {
			if p = strings.TrimSpace(p); p != "" {
				roots = append(roots, p)
			}
		}
		return roots
	}
	return patch.DefaultRoots()
}

// ExecRunner runs a command with the process's standard streams
func ExecRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", name, err)
	}
	return nil
}

// LoadConfig reads the configuration fresh from disk
func (c *Context) LoadConfig() (*config.Config, error) {
	return config.Load(c.ConfigPath)
}

// CandidateRoots orders the roots searched for the workbench file: the
// command line override, then the configured override, then detected roots
func (c *Context) CandidateRoots(cfg *config.Config) []string {
	var roots []string
	if c.InstallPath != "" {
		roots = append(roots, c.InstallPath)
	}
	if p := cfg.InstallPath(); p != "" {
		roots = append(roots, p)
	}
	return append(roots, c.DetectedRoots...)
}

// Session is the state resolved for a single operation
type Session struct {
	Config *config.Config
	Target string
	Engine *patch.Engine
}

// NewSession loads the configuration, locates the workbench file and builds
// an engine for it. Nothing is cached between calls.
func (c *Context) NewSession() (*Session, error) {
	cfg, err := c.LoadConfig()
	if err != nil {
		return nil, err
	}

	target, err := patch.Locate(c.CandidateRoots(cfg))
	if err != nil {
		return nil, err
	}
	c.Splog.Debug("using workbench %s", target)

	eng := patch.New(target,
		patch.WithRenderer(cfg.Renderer()),
		patch.WithLogger(c.Splog),
	)
	return &Session{Config: cfg, Target: target, Engine: eng}, nil
}
