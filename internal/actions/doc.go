// Package actions provides high-level business logic for CLI commands.
//
// Each action corresponds to a ctxmenu command (install, uninstall, status,
// etc.) and orchestrates the patch engine, the configuration and the user
// notices for it.
//
// Key patterns:
//   - Actions accept runtime.Context which provides Splog, the Prompter and the
//     configuration location
//   - Actions resolve a fresh runtime.Session per call; nothing is cached
//   - Actions handle user interaction through the tui package
package actions
