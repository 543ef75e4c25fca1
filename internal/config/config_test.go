package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/diogo/aichat/internal/errors"
)

// setupHome points the config directory at a temp dir and clears overrides
func setupHome(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv(EnvHome, tmpDir)
	for _, env := range []string{EnvReplyDelay, EnvLocale, EnvTheme, EnvRepliesFile, EnvGreeting, EnvDebug} {
		t.Setenv(env, "")
	}
	return tmpDir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ReplyDelayMS != 1500 {
		t.Errorf("Expected default reply delay to be 1500, got %d", cfg.ReplyDelayMS)
	}

	if cfg.ReplyDelay() != 1500*time.Millisecond {
		t.Errorf("ReplyDelay() = %v, want 1.5s", cfg.ReplyDelay())
	}

	if cfg.Locale != "en" {
		t.Errorf("Expected default locale to be 'en', got '%s'", cfg.Locale)
	}

	if cfg.CopyToClipboard {
		t.Errorf("Expected CopyToClipboard to be false, got %v", cfg.CopyToClipboard)
	}

	if cfg.Markdown.Style != "dark" {
		t.Errorf("Expected markdown style 'dark', got '%s'", cfg.Markdown.Style)
	}
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv(EnvHome, "")
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if dir == "" {
		t.Error("GetConfigDir() returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("GetConfigDir() returned relative path: %s", dir)
	}
}

func TestGetConfigDir_Override(t *testing.T) {
	tmpDir := setupHome(t)

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if dir != tmpDir {
		t.Errorf("GetConfigDir() = %s, want %s", dir, tmpDir)
	}
}

func TestGetDebugLogPath(t *testing.T) {
	tmpDir := setupHome(t)

	path, err := GetDebugLogPath()
	if err != nil {
		t.Fatalf("GetDebugLogPath() returned error: %v", err)
	}
	if path != filepath.Join(tmpDir, "debug.log") {
		t.Errorf("GetDebugLogPath() = %s", path)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	tmpDir := setupHome(t)
	nested := filepath.Join(tmpDir, "nested", "aichat")
	t.Setenv(EnvHome, nested)

	dir, err := EnsureConfigDir()
	if err != nil {
		t.Fatalf("EnsureConfigDir() returned error: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("config dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("config path is not a directory")
	}
	if perm := info.Mode().Perm(); perm != 0o700 {
		t.Errorf("Dir permissions = %o, want 700", perm)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	setupHome(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}

	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

func TestSaveConfig(t *testing.T) {
	tmpDir := setupHome(t)

	cfg := DefaultConfig()
	cfg.ReplyDelayMS = 250
	cfg.Locale = "ru"
	cfg.CopyToClipboard = true

	err := SaveConfig(cfg)
	if err != nil {
		t.Fatalf("SaveConfig() returned error: %v", err)
	}

	// Verify file was created
	configPath := filepath.Join(tmpDir, "config.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	// Verify content
	var saved Config
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("Failed to parse saved config: %v", err)
	}

	if saved.ReplyDelayMS != cfg.ReplyDelayMS {
		t.Errorf("ReplyDelayMS = %d, want %d", saved.ReplyDelayMS, cfg.ReplyDelayMS)
	}
	if saved.Locale != cfg.Locale {
		t.Errorf("Locale = %s, want %s", saved.Locale, cfg.Locale)
	}
	if saved.CopyToClipboard != cfg.CopyToClipboard {
		t.Errorf("CopyToClipboard = %v, want %v", saved.CopyToClipboard, cfg.CopyToClipboard)
	}

	// Check file permissions
	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Failed to stat config file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("File permissions = %o, want 600", perm)
	}
}

func TestLoadConfig_WithExistingFile(t *testing.T) {
	tmpDir := setupHome(t)

	original := DefaultConfig()
	original.ReplyDelayMS = 10
	original.Greeting = "Привет! Я AI ассистент. Чем могу помочь?"
	original.Locale = "ru"

	data, _ := json.MarshalIndent(original, "", "  ")
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), data, 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}

	if cfg != original {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, original)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpDir := setupHome(t)

	invalidJSON := `{"invalid": json content`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte(invalidJSON), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Error("LoadConfig() with invalid JSON should return error")
	}

	// Should return default config on error
	if cfg.ReplyDelayMS != 1500 {
		t.Errorf("ReplyDelayMS = %d, want 1500", cfg.ReplyDelayMS)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	setupHome(t)
	t.Setenv(EnvReplyDelay, "42")
	t.Setenv(EnvLocale, "RU")
	t.Setenv(EnvGreeting, "Hello there")
	t.Setenv(EnvDebug, "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}

	if cfg.ReplyDelayMS != 42 {
		t.Errorf("ReplyDelayMS = %d, want 42", cfg.ReplyDelayMS)
	}
	if cfg.Locale != "ru" {
		t.Errorf("Locale = %s, want ru", cfg.Locale)
	}
	if cfg.Greeting != "Hello there" {
		t.Errorf("Greeting = %s", cfg.Greeting)
	}
	if !cfg.Debug {
		t.Error("Debug should be enabled by env")
	}
}

func TestLoadConfig_BadEnv(t *testing.T) {
	setupHome(t)
	t.Setenv(EnvReplyDelay, "soon")

	_, err := LoadConfig()
	if !errors.Is(err, apperrors.ErrInvalidSettings) {
		t.Errorf("LoadConfig() error = %v, want setting error", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	setupHome(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("AICHAT_REPLY_DELAY=77\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	// godotenv does not override variables that are already set
	if err := os.Unsetenv(EnvReplyDelay); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Unsetenv(EnvReplyDelay) })

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv() returned error: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.ReplyDelayMS != 77 {
		t.Errorf("ReplyDelayMS = %d, want 77", cfg.ReplyDelayMS)
	}
}

func TestConfig_SetGet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		want    string
		wantErr bool
	}{
		{KeyReplyDelay, "300", "300", false},
		{KeyReplyDelay, "-1", "", true},
		{KeyReplyDelay, "fast", "", true},
		{KeyGreeting, "Hi!", "Hi!", false},
		{KeyLocale, "de", "de", false},
		{KeyLocale, "xx", "", true},
		{KeyRepliesFile, " /tmp/replies.json ", "/tmp/replies.json", false},
		{KeyCopyToClipboard, "true", "true", false},
		{KeyCopyToClipboard, "maybe", "", true},
		{KeyDebug, "1", "true", false},
		{KeyTheme, "nord", "nord", false},
		{KeyMarkdownStyle, "light", "light", false},
		{"model", "x", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.Set(tt.key, tt.value)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidSettings) {
					t.Errorf("Set() error = %v, want setting error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set() returned error: %v", err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get() returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Get() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeys_AllGettable(t *testing.T) {
	cfg := DefaultConfig()
	for _, key := range Keys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) returned error: %v", key, err)
		}
	}
}

func TestIsKnownLocale(t *testing.T) {
	if !IsKnownLocale("ru") {
		t.Error("ru should be known")
	}
	if IsKnownLocale("klingon") {
		t.Error("klingon should not be known")
	}
}

func TestLoadFile_IgnoresEnv(t *testing.T) {
	setupHome(t)
	t.Setenv(EnvLocale, "de")

	cfg, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile() returned error: %v", err)
	}
	if cfg.Locale != "en" {
		t.Errorf("Locale = %s, want file value en", cfg.Locale)
	}

	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.Locale != "de" {
		t.Errorf("Locale = %s, want env value de", cfg.Locale)
	}
}
