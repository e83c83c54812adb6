// Package tui provides the terminal user interface for ctxmenu.
//
// It handles:
//   - Interactive prompts and selections (using survey and bubbletea)
//   - Notices and terminal colors (using lipgloss)
//   - TTY detection for deciding whether prompts can be shown
package tui
