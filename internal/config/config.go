package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings ducktail reads from its TOML file.
type Config struct {
	LogPath      string
	PollInterval time.Duration
	Debounce     time.Duration
	Listen       string
	TailLines    int
}

const (
	defaultConfigPath   = "~/.config/ducktail/config.toml"
	defaultLogPath      = "/var/log/duck/duck.log"
	defaultPollInterval = 5 * time.Second
	defaultDebounce     = 200 * time.Millisecond
	defaultListen       = "127.0.0.1:7488"
	defaultTailLines    = 200
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogPath:      defaultLogPath,
		PollInterval: defaultPollInterval,
		Debounce:     defaultDebounce,
		Listen:       defaultListen,
		TailLines:    defaultTailLines,
	}
}

// DefaultPath returns the config file location used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config file, falling back to defaults when it
// is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		LogPath      string `toml:"log_path"`
		PollInterval int    `toml:"poll_interval"`
		DebounceMS   int    `toml:"filter_debounce_ms"`
		Listen       string `toml:"listen"`
		TailLines    int    `toml:"tail_lines"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if logPath := strings.TrimSpace(raw.LogPath); logPath != "" {
		cfg.LogPath = mustExpand(logPath)
	}
	if raw.PollInterval > 0 {
		cfg.PollInterval = time.Duration(raw.PollInterval) * time.Second
	}
	if raw.DebounceMS > 0 {
		cfg.Debounce = time.Duration(raw.DebounceMS) * time.Millisecond
	}
	if listen := strings.TrimSpace(raw.Listen); listen != "" {
		cfg.Listen = listen
	}
	if raw.TailLines > 0 {
		cfg.TailLines = raw.TailLines
	}

	return cfg, nil
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
