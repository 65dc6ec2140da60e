package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates application settings sourced from environment variables.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Clamd   ClamdConfig   `mapstructure:"clamd"`
	Log     LogConfig     `mapstructure:"log"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port           int   `mapstructure:"port"`
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

// SessionConfig 控制浏览器会话（Workspace）的 cookie 与回收策略。
type SessionConfig struct {
	CookieName    string        `mapstructure:"cookie_name"`
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	SecureCookie  bool          `mapstructure:"secure_cookie"`
}

// ClamdConfig 指向可选的 clamd 服务，为空时跳过图片扫描。
type ClamdConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// SlogLevel 把配置中的级别转换为 slog.Level，无法识别时回退到 Info。
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.max_upload_bytes", 5*1024*1024)
	v.SetDefault("session.cookie_name", "cvform_session")
	v.SetDefault("session.idle_ttl", 2*time.Hour)
	v.SetDefault("session.sweep_interval", 5*time.Minute)
	v.SetDefault("session.secure_cookie", false)
	v.SetDefault("clamd.addr", "")
	v.SetDefault("log.level", "info")
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":               "API_PORT",
		"api.max_upload_bytes":   "API_MAX_UPLOAD_BYTES",
		"session.cookie_name":    "SESSION_COOKIE_NAME",
		"session.idle_ttl":       "SESSION_IDLE_TTL",
		"session.sweep_interval": "SESSION_SWEEP_INTERVAL",
		"session.secure_cookie":  "SESSION_SECURE_COOKIE",
		"clamd.addr":             "CLAMD_ADDR",
		"log.level":              "LOG_LEVEL",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.API.MaxUploadBytes <= 0 {
		return errors.New("api max upload bytes must be positive")
	}
	if strings.TrimSpace(cfg.Session.CookieName) == "" {
		return errors.New("session cookie name is required")
	}
	if cfg.Session.IdleTTL < 0 {
		return errors.New("session idle ttl must not be negative")
	}
	if cfg.Session.IdleTTL > 0 && cfg.Session.SweepInterval <= 0 {
		return errors.New("session sweep interval must be positive when idle ttl is set")
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", cfg.Log.Level)
	}
	return nil
}
