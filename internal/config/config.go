// Package config loads the application settings from defaults, an optional
// config file and MENTALJOURNAL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	AppName   = "mentaljournal"
	EnvPrefix = "MENTALJOURNAL"
)

// Theme values.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

const (
	DefaultToastDuration  = 2 * time.Second
	DefaultChatReplyDelay = time.Second
	DefaultChatReply      = "Das ist eine automatische Antwort"
	DefaultEmergencyURL   = "https://www.nummergegenkummer.de/"
)

type Config struct {
	ToastDuration  time.Duration
	ChatReplyDelay time.Duration
	ChatReply      string
	ExportDir      string
	EmergencyURL   string
	Theme          string
	LogFile        string
	ContentFile    string

	// Source is the config file that was read, if any.
	Source string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("toast_duration", DefaultToastDuration)
	v.SetDefault("chat_reply_delay", DefaultChatReplyDelay)
	v.SetDefault("chat_reply", DefaultChatReply)
	v.SetDefault("export_dir", "~")
	v.SetDefault("emergency_url", DefaultEmergencyURL)
	v.SetDefault("theme", ThemeAuto)
	v.SetDefault("log_file", "")
	v.SetDefault("content_file", "")
}

// Load reads the configuration. An explicit path must exist; without one the
// user config directory and the working directory are searched for
// mentaljournal.{yaml,toml,json} and a missing file is not an error.
func Load(path string) (*Config, error) {
	var search []string
	if dir, err := os.UserConfigDir(); err == nil {
		search = append(search, filepath.Join(dir, AppName))
	}
	search = append(search, ".")
	return load(viper.New(), path, search)
}

func load(v *viper.Viper, path string, search []string) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("expand config path: %w", err)
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigName(AppName)
		for _, p := range search {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		ToastDuration:  v.GetDuration("toast_duration"),
		ChatReplyDelay: v.GetDuration("chat_reply_delay"),
		ChatReply:      v.GetString("chat_reply"),
		EmergencyURL:   strings.TrimSpace(v.GetString("emergency_url")),
		Theme:          strings.ToLower(strings.TrimSpace(v.GetString("theme"))),
		Source:         v.ConfigFileUsed(),
	}

	var err error
	if cfg.ExportDir, err = expand(v.GetString("export_dir")); err != nil {
		return nil, err
	}
	if cfg.LogFile, err = expand(v.GetString("log_file")); err != nil {
		return nil, err
	}
	if cfg.ContentFile, err = expand(v.GetString("content_file")); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func expand(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", nil
	}
	out, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", p, err)
	}
	return out, nil
}

// Default returns the configuration with every default applied and no file
// or environment consulted.
func Default() *Config {
	home, _ := homedir.Dir()
	return &Config{
		ToastDuration:  DefaultToastDuration,
		ChatReplyDelay: DefaultChatReplyDelay,
		ChatReply:      DefaultChatReply,
		ExportDir:      home,
		EmergencyURL:   DefaultEmergencyURL,
		Theme:          ThemeAuto,
	}
}

func (c *Config) Validate() error {
	if c.ToastDuration <= 0 {
		return fmt.Errorf("toast_duration must be positive, got %s", c.ToastDuration)
	}
	if c.ChatReplyDelay < 0 {
		return fmt.Errorf("chat_reply_delay must not be negative, got %s", c.ChatReplyDelay)
	}
	if strings.TrimSpace(c.ChatReply) == "" {
		return errors.New("chat_reply must not be empty")
	}
	if !strings.HasPrefix(c.EmergencyURL, "https://") && !strings.HasPrefix(c.EmergencyURL, "http://") {
		return fmt.Errorf("emergency_url must be an http(s) URL, got %q", c.EmergencyURL)
	}
	switch c.Theme {
	case ThemeAuto, ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("theme must be one of auto, light, dark, got %q", c.Theme)
	}
	return nil
}

// Settings lists the effective values as key/value pairs in a stable order.
func (c *Config) Settings() [][2]string {
	source := c.Source
	if source == "" {
		source = "(defaults)"
	}
	return [][2]string{
		{"config_file", source},
		{"toast_duration", c.ToastDuration.String()},
		{"chat_reply_delay", c.ChatReplyDelay.String()},
		{"chat_reply", c.ChatReply},
		{"export_dir", c.ExportDir},
		{"emergency_url", c.EmergencyURL},
		{"theme", c.Theme},
		{"log_file", c.LogFile},
		{"content_file", c.ContentFile},
	}
}
