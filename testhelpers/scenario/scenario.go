// Package scenario provides a high-level test scenario that combines a Scene
// and a runtime Context to provide a terse API for action and CLI tests.
package scenario

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"ctxmenu.dev/ctxmenu/internal/cli"
	"ctxmenu.dev/ctxmenu/internal/config"
	"ctxmenu.dev/ctxmenu/internal/output"
	"ctxmenu.dev/ctxmenu/internal/runtime"
	"ctxmenu.dev/ctxmenu/testhelpers"
)

// Scenario represents a high-level test scenario that combines a Scene,
// a recording prompter and command runner, and a runtime Context.
type Scenario struct {
	T          *testing.T
	Scene      *testhelpers.Scene
	Context    *runtime.Context
	ConfigPath string
	Output     *bytes.Buffer
	Prompter   *FakePrompter

	mu   sync.Mutex
	runs [][]string
}

// NewScenario creates a new Scenario with an optional setup function. The
// scene's root is the only auto-detected root.
// NOTE: This function is NOT safe for parallel tests as it uses t.Setenv.
func NewScenario(t *testing.T, setup testhelpers.SceneSetup) *Scenario {
	t.Helper()

	// Force non-interactive mode for the terminal prompter
	t.Setenv("CTXMENU_TEST_NO_INTERACTIVE", "1")

	scene := testhelpers.NewScene(t, setup)
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("CTXMENU_CONFIG", configPath)
	t.Setenv("CTXMENU_LOG_FILE", filepath.Join(t.TempDir(), "ctxmenu.log"))
	t.Setenv("CTXMENU_SEARCH_PATHS", scene.Root)

	var buf bytes.Buffer
	splog, err := output.NewSplogWithConfig(&buf, "")
	require.NoError(t, err)

	s := &Scenario{
		T:          t,
		Scene:      scene,
		ConfigPath: configPath,
		Output:     &buf,
		Prompter:   &FakePrompter{},
	}

	ctx := runtime.NewContext(context.Background())
	ctx.Splog = splog
	ctx.ConfigPath = configPath
	ctx.DetectedRoots = []string{scene.Root}
	ctx.Prompter = s.Prompter
	ctx.Runner = s.record
	ctx.Editor = func(string, string) (string, error) {
		return "", fmt.Errorf("unexpected editor")
	}
	s.Context = ctx

	return s
}

func (s *Scenario) record(_ context.Context, name string, args ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, append([]string{name}, args...))
	return nil
}

// Runs returns the commands executed through the context's runner
func (s *Scenario) Runs() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.runs...)
}

// WithConfig stores a configuration value
func (s *Scenario) WithConfig(key, value string) *Scenario {
	s.T.Helper()
	cfg, err := config.Load(s.ConfigPath)
	require.NoError(s.T, err)
	require.NoError(s.T, cfg.Set(key, value))
	require.NoError(s.T, cfg.Save(s.ConfigPath))
	return s
}

// WithEditor replaces the editor with one that returns content
func (s *Scenario) WithEditor(content string) *Scenario {
	s.Context.Editor = func(string, string) (string, error) {
		return content, nil
	}
	return s
}

// WithInteractive makes the prompter report an attached terminal
func (s *Scenario) WithInteractive() *Scenario {
	s.Prompter.IsInteractive = true
	return s
}

// WithoutDetectedRoots removes the scene from the auto-detected roots
func (s *Scenario) WithoutDetectedRoots() *Scenario {
	s.T.Setenv("CTXMENU_SEARCH_PATHS", "")
	s.Context.DetectedRoots = nil
	return s
}

// OutputString returns everything the context's logger printed
func (s *Scenario) OutputString() string {
	return s.Output.String()
}

// RunCli executes a ctxmenu command in process and fails the test on error.
func (s *Scenario) RunCli(args ...string) string {
	s.T.Helper()
	out, err := s.RunCliAndGetOutput(args...)
	require.NoError(s.T, err, "CLI command failed: ctxmenu %v\nOutput: %s", args, out)
	return out
}

// RunCliAndGetOutput executes a ctxmenu command in process and returns its output.
func (s *Scenario) RunCliAndGetOutput(args ...string) (string, error) {
	root := cli.NewRootCmd("test", "none", "unknown")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// RunExpectError executes a ctxmenu command and expects it to fail.
func (s *Scenario) RunExpectError(args ...string) string {
	s.T.Helper()
	out, err := s.RunCliAndGetOutput(args...)
	require.Error(s.T, err, "expected CLI command to fail: ctxmenu %v\nOutput: %s", args, out)
	return out
}

// FakePrompter answers prompts from queued values and records the questions
type FakePrompter struct {
	IsInteractive bool
	Confirms      []bool
	Selects       []string
	Inputs        []string
	Asked         []string
}

// Confirm implements tui.Prompter
func (p *FakePrompter) Confirm(prompt string, _ bool) (bool, error) {
	p.Asked = append(p.Asked, prompt)
	if len(p.Confirms) == 0 {
		return false, fmt.Errorf("unexpected confirm: %s", prompt)
	}
	answer := p.Confirms[0]
	p.Confirms = p.Confirms[1:]
	return answer, nil
}

// Select implements tui.Prompter
func (p *FakePrompter) Select(message string, options []string) (string, error) {
	p.Asked = append(p.Asked, message)
	if len(p.Selects) == 0 {
		return "", fmt.Errorf("unexpected select: %s", message)
	}
	answer := p.Selects[0]
	p.Selects = p.Selects[1:]
	for _, option := range options {
		if option == answer {
			return answer, nil
		}
	}
	return "", fmt.Errorf("%q is not one of %s", answer, strings.Join(options, ", "))
}

// Input implements tui.Prompter
func (p *FakePrompter) Input(prompt, _ string) (string, error) {
	p.Asked = append(p.Asked, prompt)
	if len(p.Inputs) == 0 {
		return "", fmt.Errorf("unexpected input: %s", prompt)
	}
	answer := p.Inputs[0]
	p.Inputs = p.Inputs[1:]
	return answer, nil
}

// Interactive implements tui.Prompter
func (p *FakePrompter) Interactive() bool {
	return p.IsInteractive
}
