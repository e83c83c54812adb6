package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"ctxmenu.dev/ctxmenu/internal/payload"
)

// Configuration keys, named after the VS Code settings they mirror
const (
	KeyInstallPath        = "vscodeInstallPath"
	KeyShowGoTos          = "showGoTos"
	KeyShowClipboardItems = "showClipboardItems"
	KeyScriptPath         = "scriptPath"
	KeyRestartCommand     = "restartCommand"
)

// Keys lists every configuration key in display order
var Keys = []string{KeyInstallPath, KeyShowGoTos, KeyShowClipboardItems, KeyScriptPath, KeyRestartCommand}

// Config represents the user configuration. Nil fields fall back to defaults.
type Config struct {
	VSCodeInstallPath  *string  `yaml:"vscodeInstallPath,omitempty"`
	ShowGoTos          *bool    `yaml:"showGoTos,omitempty"`
	ShowClipboardItems *bool    `yaml:"showClipboardItems,omitempty"`
	ScriptPath         *string  `yaml:"scriptPath,omitempty"`
	RestartCommand     []string `yaml:"restartCommand,omitempty"`
}

// DefaultPath returns the configuration file path.
// If CTXMENU_CONFIG is set, uses that path.
// Otherwise, uses <user config dir>/ctxmenu/config.yaml
func DefaultPath() string {
	if customPath := os.Getenv("CTXMENU_CONFIG"); customPath != "" {
		return customPath
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to current directory if we can't get the config dir
		return "ctxmenu.yaml"
	}
	return filepath.Join(configDir, "ctxmenu", "config.yaml")
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Parse decodes data strictly, rejecting keys ctxmenu does not know
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if len(bytes.TrimSpace(data)) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Marshal returns the YAML form of the configuration
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Save writes the configuration to path, creating its directory
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// InstallPath returns the trimmed installation root override, or "" if unset
func (c *Config) InstallPath() string {
	if c.VSCodeInstallPath == nil {
		return ""
	}
	return strings.TrimSpace(*c.VSCodeInstallPath)
}

// GetShowGoTos returns whether the Go to entries stay visible, true by default
func (c *Config) GetShowGoTos() bool {
	if c.ShowGoTos != nil {
		return *c.ShowGoTos
	}
	return true
}

// GetShowClipboardItems returns whether the clipboard entries stay visible, true by default
func (c *Config) GetShowClipboardItems() bool {
	if c.ShowClipboardItems != nil {
		return *c.ShowClipboardItems
	}
	return true
}

// GetScriptPath returns the external script template, or "" for the embedded one
func (c *Config) GetScriptPath() string {
	if c.ScriptPath == nil {
		return ""
	}
	return strings.TrimSpace(*c.ScriptPath)
}

// Renderer returns the payload renderer for this configuration
func (c *Config) Renderer() payload.Renderer {
	return payload.Renderer{
		TemplatePath: c.GetScriptPath(),
		Options: payload.Options{
			ShowGoTos:          c.GetShowGoTos(),
			ShowClipboardItems: c.GetShowClipboardItems(),
		},
	}
}

// Get returns the string form of a configuration value
func (c *Config) Get(key string) (string, error) {
	switch key {
	case KeyInstallPath:
		return c.InstallPath(), nil
	case KeyShowGoTos:
		return strconv.FormatBool(c.GetShowGoTos()), nil
	case KeyShowClipboardItems:
		return strconv.FormatBool(c.GetShowClipboardItems()), nil
	case KeyScriptPath:
		return c.GetScriptPath(), nil
	case KeyRestartCommand:
		return strings.Join(c.RestartCommand, " "), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// Set parses value and assigns it to key. An empty value clears string keys.
func (c *Config) Set(key, value string) error {
	switch key {
	case KeyInstallPath:
		c.VSCodeInstallPath = optionalString(value)
	case KeyShowGoTos, KeyShowClipboardItems:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %s (must be 'true' or 'false')", key, value)
		}
		if key == KeyShowGoTos {
			c.ShowGoTos = &enabled
		} else {
			c.ShowClipboardItems = &enabled
		}
	case KeyScriptPath:
		c.ScriptPath = optionalString(value)
	case KeyRestartCommand:
		c.RestartCommand = strings.Fields(value)
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
