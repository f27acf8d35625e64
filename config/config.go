// Package config loads the garden's YAML or TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/bloom/garden"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// DefaultResizeDebounce is how long the viewport must stay still before the
// visible scene is rebuilt.
const DefaultResizeDebounce = 300 * time.Millisecond

// Window holds the desktop window settings.
type Window struct {
	Title     string `yaml:"title" toml:"title"`
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	Resizable bool   `yaml:"resizable" toml:"resizable"`
}

// Config is the full launcher configuration. Zero values in a loaded file
// keep their defaults.
type Config struct {
	Window Window `yaml:"window" toml:"window"`

	// Seed feeds every random draw. Zero picks a fresh seed per run.
	Seed uint64 `yaml:"seed" toml:"seed"`

	ResizeDebounce time.Duration `yaml:"resizeDebounce" toml:"resizeDebounce"`

	// Messages overrides the greeting lines per scene name.
	Messages map[string][]string `yaml:"messages,omitempty" toml:"messages,omitempty"`

	// Timelines maps a scene name to a YAML file holding its entrance and
	// idle loops, replacing the built-in ones.
	Timelines map[string]string `yaml:"timelines,omitempty" toml:"timelines,omitempty"`

	Debug   bool `yaml:"debug" toml:"debug"`
	ShowFPS bool `yaml:"showFPS" toml:"showFPS"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Window: Window{
			Title:     "bloom",
			Width:     1024,
			Height:    768,
			Resizable: true,
		},
		ResizeDebounce: DefaultResizeDebounce,
	}
}

// Load reads path over the defaults and validates the result. Files ending
// in .toml are decoded as TOML, everything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(data)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseTOML decodes TOML over the defaults and validates the result.
// Durations are written as strings, e.g. resizeDebounce = "300ms".
func ParseTOML(data []byte) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks sizes, the debounce interval and scene names.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.ResizeDebounce < 0 {
		return fmt.Errorf("%w: negative resize debounce %s", ErrInvalid, c.ResizeDebounce)
	}
	for name, lines := range c.Messages {
		if !isScene(name) {
			return fmt.Errorf("%w: messages for unknown scene %q", ErrInvalid, name)
		}
		if len(lines) == 0 {
			return fmt.Errorf("%w: scene %q has an empty message list", ErrInvalid, name)
		}
	}
	for name := range c.Timelines {
		if !isScene(name) {
			return fmt.Errorf("%w: timeline for unknown scene %q", ErrInvalid, name)
		}
	}
	return nil
}

// MessagesFor returns the configured lines for a scene, or nil to use the
// built-in ones.
func (c *Config) MessagesFor(scene string) []string {
	return c.Messages[scene]
}

func isScene(name string) bool {
	for _, n := range garden.Names {
		if n == name {
			return true
		}
	}
	return false
}
