package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestConfirmModel(t *testing.T) {
	t.Run("y accepts", func(t *testing.T) {
		m, cmd := confirmModel{prompt: "Restart?"}.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
		final := m.(confirmModel)
		require.True(t, final.done)
		require.True(t, final.choice)
		require.NotNil(t, cmd)
	})

	t.Run("enter keeps the default", func(t *testing.T) {
		m, _ := confirmModel{prompt: "Restart?", choice: true}.Update(tea.KeyMsg{Type: tea.KeyEnter})
		final := m.(confirmModel)
		require.True(t, final.done)
		require.True(t, final.choice)
	})

	t.Run("escape cancels", func(t *testing.T) {
		m, _ := confirmModel{prompt: "Restart?"}.Update(tea.KeyMsg{Type: tea.KeyEsc})
		final := m.(confirmModel)
		require.Error(t, final.err)
		require.Empty(t, final.View())
	})

	t.Run("view shows the default", func(t *testing.T) {
		require.Contains(t, confirmModel{prompt: "Restart?"}.View(), "[y/N]")
		require.Contains(t, confirmModel{prompt: "Restart?", choice: true}.View(), "[Y/n]")
	})
}

func TestPromptsDisabledInTests(t *testing.T) {
	t.Setenv("CTXMENU_TEST_NO_INTERACTIVE", "1")

	_, err := PromptConfirm("Restart?", false)
	require.ErrorIs(t, err, ErrInteractiveDisabled)
	_, err = PromptSelect("Pick", []string{"a"})
	require.ErrorIs(t, err, ErrInteractiveDisabled)
	_, err = PromptTextInput("Path", "")
	require.ErrorIs(t, err, ErrInteractiveDisabled)
	require.False(t, TerminalPrompter{}.Interactive())
}

func TestEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "nano")
	require.Equal(t, "nano", Editor())

	t.Setenv("VISUAL", "code --wait")
	require.Equal(t, "code --wait", Editor())

	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	require.Equal(t, "vi", Editor())
}

func TestOpenEditorDisabledInTests(t *testing.T) {
	t.Setenv("CTXMENU_TEST_NO_INTERACTIVE", "1")
	_, err := OpenEditor("x", "ctxmenu-*.yaml")
	require.ErrorIs(t, err, ErrInteractiveDisabled)
}
