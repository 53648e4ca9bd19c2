package core

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigEnv names the environment variable holding the config file path.
const ConfigEnv = "GALLOWS_CONFIG"

// DefaultConfigFile is looked up in the working directory when ConfigEnv is
// unset.
const DefaultConfigFile = "gallows.toml"

func DefaultConfig() Config {
	return Config{
		Title:    "Hangman",
		Width:    1280,
		Height:   720,
		VSync:    true,
		LogLevel: "info",
		Text: TextConfig{
			Source: "title",
			Family: "Go",
			Size:   48,
			Weight: 700,
		},
	}
}

// ParseConfig decodes TOML over the defaults and validates the result.
func ParseConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads path. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}
	cfg, err := ParseConfig(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ConfigPath resolves the config location from the environment.
func ConfigPath() string {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p
	}
	return DefaultConfigFile
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Text.Size <= 0 {
		return fmt.Errorf("text size must be positive, got %v", c.Text.Size)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel into a slog level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}
