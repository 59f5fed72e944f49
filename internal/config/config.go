package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database  DatabaseConfig
	Backup    BackupConfig
	UI        UIConfig
	Shortcuts []ShortcutOverride
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// BackupConfig holds export/import settings.
type BackupConfig struct {
	Dir       string
	UserEmail string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Platform forces the shortcut display style: "mac", "other", or ""
	// to detect from the running OS.
	Platform string
}

// ShortcutOverride rebinds one shortcut id to a combo string such as
// "ctrl+shift+p".
type ShortcutOverride struct {
	ID    string
	Combo string
}

// Load reads configuration from file and env. Env var overrides use prefix FINTRAX_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "fintrax", "fintrax.db"))
	v.SetDefault("backup.dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "fintrax", "backups"))
	v.SetDefault("backup.user_email", "")
	v.SetDefault("ui.platform", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("FINTRAX_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "fintrax"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FINTRAX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the TUI settings view for non-sensitive preferences.
func Save(cfg Config) error {
	path := os.Getenv("FINTRAX_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "fintrax", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("backup.dir", cfg.Backup.Dir)
	v.Set("backup.user_email", cfg.Backup.UserEmail)
	v.Set("ui.platform", cfg.UI.Platform)
	if len(cfg.Shortcuts) > 0 {
		items := make([]map[string]string, 0, len(cfg.Shortcuts))
		for _, o := range cfg.Shortcuts {
			items = append(items, map[string]string{"id": o.ID, "combo": o.Combo})
		}
		v.Set("shortcuts", items)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
