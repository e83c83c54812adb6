package actions

import (
	"fmt"
	"strings"

	"ctxmenu.dev/ctxmenu/internal/config"
	"ctxmenu.dev/ctxmenu/internal/runtime"
	"ctxmenu.dev/ctxmenu/internal/tui"
)

// ConfigListAction prints all configuration values
func ConfigListAction(ctx *runtime.Context) error {
	cfg, err := ctx.LoadConfig()
	if err != nil {
		return err
	}

	var lines []string
	for _, key := range config.Keys {
		value, err := cfg.Get(key)
		if err != nil {
			return err
		}
		if value == "" {
			value = tui.ColorDim("(not set)")
		}
		lines = append(lines, fmt.Sprintf("%s: %s", key, value))
	}

	ctx.Splog.Page(strings.Join(lines, "\n"))
	ctx.Splog.Newline()
	return nil
}

// ConfigGetAction prints a single configuration value
func ConfigGetAction(ctx *runtime.Context, key string) error {
	cfg, err := ctx.LoadConfig()
	if err != nil {
		return err
	}
	value, err := cfg.Get(key)
	if err != nil {
		return err
	}
	ctx.Splog.Page(value)
	ctx.Splog.Newline()
	return nil
}

// ConfigSetOptions contains options for config set
type ConfigSetOptions struct {
	Key   string
	Value string
	// Prompt asks for the value instead of using Value
	Prompt bool
}

// ConfigSetAction validates and stores a configuration value
func ConfigSetAction(ctx *runtime.Context, opts ConfigSetOptions) error {
	cfg, err := ctx.LoadConfig()
	if err != nil {
		return err
	}

	value := opts.Value
	if opts.Prompt {
		if ctx.Prompter == nil || !ctx.Prompter.Interactive() {
			return fmt.Errorf("a value for %s is required in non-interactive mode", opts.Key)
		}
		current, err := cfg.Get(opts.Key)
		if err != nil {
			return err
		}
		value, err = ctx.Prompter.Input(fmt.Sprintf("%s:", opts.Key), current)
		if err != nil {
			return err
		}
	}

	if err := cfg.Set(opts.Key, value); err != nil {
		return err
	}
	if err := cfg.Save(ctx.ConfigPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	stored, _ := cfg.Get(opts.Key)
	if stored == "" {
		ctx.Splog.Info("Cleared %s.", opts.Key)
		return nil
	}
	ctx.Splog.Info("Set %s to: %s", opts.Key, stored)
	return nil
}

// ConfigEditAction opens the configuration in the user's editor and saves it
// once it parses
func ConfigEditAction(ctx *runtime.Context) error {
	cfg, err := ctx.LoadConfig()
	if err != nil {
		return err
	}
	current, err := cfg.Marshal()
	if err != nil {
		return err
	}

	edited, err := ctx.Editor(string(current), "ctxmenu-*.yaml")
	if err != nil {
		return err
	}
	if edited == string(current) {
		ctx.Splog.Info("No changes.")
		return nil
	}

	updated, err := config.Parse([]byte(edited))
	if err != nil {
		return err
	}
	if err := updated.Save(ctx.ConfigPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	ctx.Splog.Info("Saved %s", tui.ColorPath(ctx.ConfigPath))
	return nil
}
