// Package config manages ctxmenu configuration.
//
// It handles:
//   - Locating the configuration file (CTXMENU_CONFIG or the user config directory)
//   - Reading it fresh for every operation, with defaults for unset keys
//   - Getting and setting individual keys for the config command
package config
