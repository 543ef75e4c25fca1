// Package config handles configuration for aichat.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apperrors "github.com/diogo/aichat/internal/errors"
)

// Environment variables that override the config file
const (
	EnvHome        = "AICHAT_HOME"
	EnvReplyDelay  = "AICHAT_REPLY_DELAY"
	EnvLocale      = "AICHAT_LOCALE"
	EnvTheme       = "AICHAT_THEME"
	EnvRepliesFile = "AICHAT_REPLIES_FILE"
	EnvGreeting    = "AICHAT_GREETING"
	EnvDebug       = "AICHAT_DEBUG"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// Config represents the user configuration
type Config struct {
	// ReplyDelayMS is how long the simulated assistant types, in milliseconds.
	ReplyDelayMS int `json:"reply_delay_ms"`
	// Greeting is the assistant message every session starts with.
	Greeting string `json:"greeting,omitempty"`
	// Locale selects the clock format for message timestamps (e.g. "en", "ru").
	Locale string `json:"locale"`
	// RepliesFile optionally points to a JSON file with the canned reply set.
	RepliesFile string `json:"replies_file,omitempty"`
	// CopyToClipboard copies every assistant reply to the clipboard.
	CopyToClipboard bool `json:"copy_to_clipboard"`
	// Debug writes a lifecycle log to debug.log in the config directory.
	Debug    bool           `json:"debug"`
	TUITheme string         `json:"tui_theme,omitempty"` // TUI color theme
	Markdown MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		ReplyDelayMS:    1500,
		Locale:          "en", // 12-hour clock; "ru" selects 24-hour time
		CopyToClipboard: false,
		Debug:           false,
		TUITheme:        "amber",
		Markdown:        DefaultMarkdownConfig(),
	}
}

// ReplyDelay returns the reply delay as a duration
func (c Config) ReplyDelay() time.Duration {
	return time.Duration(c.ReplyDelayMS) * time.Millisecond
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(EnvHome)); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".aichat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetDebugLogPath returns the path of the debug log
func GetDebugLogPath() (string, error) {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "debug.log"), nil
}

// LoadDotEnv loads variables from .env files into the process environment.
// Missing files are skipped and variables already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// LoadConfig loads the configuration from disk and applies environment overrides
func LoadConfig() (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return cfg, err
	}
	return ApplyEnv(cfg)
}

// LoadFile loads the configuration file alone, without environment
// overrides. A missing file yields the defaults.
func LoadFile() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any AICHAT_* variables that are set
func ApplyEnv(cfg Config) (Config, error) {
	overrides := map[string]string{
		EnvReplyDelay:  KeyReplyDelay,
		EnvLocale:      KeyLocale,
		EnvTheme:       KeyTheme,
		EnvRepliesFile: KeyRepliesFile,
		EnvGreeting:    KeyGreeting,
		EnvDebug:       KeyDebug,
	}

	// Stable order so the first error is deterministic
	envs := make([]string, 0, len(overrides))
	for env := range overrides {
		envs = append(envs, env)
	}
	sort.Strings(envs)

	for _, env := range envs {
		value, ok := os.LookupEnv(env)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if err := cfg.Set(overrides[env], value); err != nil {
			return cfg, fmt.Errorf("%s: %w", env, err)
		}
	}
	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Settable keys for Set and Get
const (
	KeyReplyDelay      = "reply_delay_ms"
	KeyGreeting        = "greeting"
	KeyLocale          = "locale"
	KeyRepliesFile     = "replies_file"
	KeyCopyToClipboard = "copy_to_clipboard"
	KeyDebug           = "debug"
	KeyTheme           = "tui_theme"
	KeyMarkdownStyle   = "markdown.style"
)

// Keys returns the settable configuration keys
func Keys() []string {
	return []string{
		KeyReplyDelay,
		KeyGreeting,
		KeyLocale,
		KeyRepliesFile,
		KeyCopyToClipboard,
		KeyDebug,
		KeyTheme,
		KeyMarkdownStyle,
	}
}

// Set assigns a value given as text to the named key
func (c *Config) Set(key, value string) error {
	switch key {
	case KeyReplyDelay:
		ms, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return apperrors.NewSettingError(key, value, "must be a whole number of milliseconds")
		}
		if ms < 0 {
			return apperrors.NewSettingError(key, value, "must not be negative")
		}
		c.ReplyDelayMS = ms
	case KeyGreeting:
		c.Greeting = value
	case KeyLocale:
		locale := strings.ToLower(strings.TrimSpace(value))
		if !IsKnownLocale(locale) {
			return apperrors.NewSettingError(key, value, "unknown locale (available: "+strings.Join(AvailableLocales(), ", ")+")")
		}
		c.Locale = locale
	case KeyRepliesFile:
		c.RepliesFile = strings.TrimSpace(value)
	case KeyCopyToClipboard, KeyDebug:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return apperrors.NewSettingError(key, value, "must be true or false")
		}
		if key == KeyDebug {
			c.Debug = b
		} else {
			c.CopyToClipboard = b
		}
	case KeyTheme:
		c.TUITheme = strings.TrimSpace(value)
	case KeyMarkdownStyle:
		c.Markdown.Style = strings.TrimSpace(value)
	default:
		return apperrors.NewSettingError(key, "", "unknown key")
	}
	return nil
}

// Get returns the value of the named key as text
func (c Config) Get(key string) (string, error) {
	switch key {
	case KeyReplyDelay:
		return strconv.Itoa(c.ReplyDelayMS), nil
	case KeyGreeting:
		return c.Greeting, nil
	case KeyLocale:
		return c.Locale, nil
	case KeyRepliesFile:
		return c.RepliesFile, nil
	case KeyCopyToClipboard:
		return strconv.FormatBool(c.CopyToClipboard), nil
	case KeyDebug:
		return strconv.FormatBool(c.Debug), nil
	case KeyTheme:
		return c.TUITheme, nil
	case KeyMarkdownStyle:
		return c.Markdown.Style, nil
	default:
		return "", apperrors.NewSettingError(key, "", "unknown key")
	}
}

// AvailableLocales returns the locales with a known clock format
func AvailableLocales() []string {
	return []string{"en", "ru", "de", "fr", "es", "pt", "ja"}
}

// IsKnownLocale reports whether locale is supported
func IsKnownLocale(locale string) bool {
	for _, l := range AvailableLocales() {
		if l == locale {
			return true
		}
	}
	return false
}
