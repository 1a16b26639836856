package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"datepick-cli/internal/model"
)

type GlobalConfig struct {
	// Locale selects the month/weekday name table (BCP-47, e.g. "en-GB", "nb").
	Locale string `json:"locale,omitempty"`

	// Mode is the default picker mode for new fields ("date" or "datetime").
	Mode string `json:"mode,omitempty"`

	// MinuteStep sizes the minute grid in the time view.
	MinuteStep int `json:"minuteStep,omitempty"`

	// DataDir overrides where values.sqlite lives. Defaults to the config dir.
	DataDir string `json:"dataDir,omitempty"`

	// TUI holds optional user preferences for the interactive picker.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Theme forces the palette: "light", "dark" or "auto".
	Theme string `json:"theme,omitempty"`
	// Glyphs selects the glyph set ("unicode" or "ascii").
	Glyphs string `json:"glyphs,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.datepick).
	if v := strings.TrimSpace(os.Getenv("DATEPICK_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".datepick"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadConfig reads config.json. A missing file is an empty config.
func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// Unique temp name + rename: the TUI and CLI may write concurrently.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// ResolveDataDir returns where values.sqlite lives: explicit dir, then config, then the config dir.
func (cfg *GlobalConfig) ResolveDataDir(explicit string) (string, error) {
	if v := strings.TrimSpace(explicit); v != "" {
		return v, nil
	}
	if cfg != nil {
		if v := strings.TrimSpace(cfg.DataDir); v != "" {
			return v, nil
		}
	}
	return ConfigDir()
}

// ConfigKeys lists the keys accepted by Set, sorted.
func ConfigKeys() []string {
	keys := []string{"locale", "mode", "minuteStep", "dataDir", "tui.theme", "tui.glyphs"}
	sort.Strings(keys)
	return keys
}

// Set assigns one config key from its string form. An empty value unsets it.
func (cfg *GlobalConfig) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "locale":
		cfg.Locale = value
	case "mode":
		if value != "" {
			m, ok := model.ParseMode(value)
			if !ok {
				return fmt.Errorf("invalid mode %q (expected date|datetime)", value)
			}
			value = string(m)
		}
		cfg.Mode = value
	case "minuteStep":
		if value == "" {
			cfg.MinuteStep = 0
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 30 || 60%n != 0 {
			return fmt.Errorf("invalid minuteStep %q (expected a divisor of 60 between 1 and 30)", value)
		}
		cfg.MinuteStep = n
	case "dataDir":
		cfg.DataDir = value
	case "tui.theme":
		switch strings.ToLower(value) {
		case "", "light", "dark", "auto":
		default:
			return fmt.Errorf("invalid tui.theme %q (expected light|dark|auto)", value)
		}
		cfg.tui().Theme = strings.ToLower(value)
	case "tui.glyphs":
		switch strings.ToLower(value) {
		case "", "unicode", "ascii":
		default:
			return fmt.Errorf("invalid tui.glyphs %q (expected unicode|ascii)", value)
		}
		cfg.tui().Glyphs = strings.ToLower(value)
	default:
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(ConfigKeys(), ", "))
	}
	return nil
}

func (cfg *GlobalConfig) tui() *TUIConfig {
	if cfg.TUI == nil {
		cfg.TUI = &TUIConfig{}
	}
	return cfg.TUI
}
