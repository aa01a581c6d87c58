package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "STOCKROOM"

type Config struct {
	Database  Database  `mapstructure:"database"`
	HTTP      HTTP      `mapstructure:"http"`
	Reports   Reports   `mapstructure:"reports"`
	Log       Log       `mapstructure:"log"`
	Auth      Auth      `mapstructure:"auth"`
	RateLimit RateLimit `mapstructure:"rate_limit"`
}

type Database struct {
	// Driver is "sqlite" (local file) or "pgx" (Postgres URL).
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	URL    string `mapstructure:"url"`
}

type HTTP struct {
	Addr string `mapstructure:"addr"`
}

type Reports struct {
	Dir string `mapstructure:"dir"`
}

type Log struct {
	Format    string `mapstructure:"format"`
	Level     string `mapstructure:"level"`
	AddSource bool   `mapstructure:"add_source"`
}

// Auth protects the JSON API. An empty PasswordHash leaves the API open,
// which is fine as long as the server only listens on loopback.
type Auth struct {
	Username     string        `mapstructure:"username"`
	PasswordHash string        `mapstructure:"password_hash"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
}

func (a Auth) Enabled() bool {
	return a.PasswordHash != ""
}

type RateLimit struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// SlogLevel parses Level, defaulting to info.
func (l Log) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/inventory.db")
	v.SetDefault("database.url", "")
	v.SetDefault("http.addr", "127.0.0.1:8080")
	v.SetDefault("reports.dir", "reports")
	v.SetDefault("log.format", "TEXT")
	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.add_source", false)
	v.SetDefault("auth.username", "admin")
	v.SetDefault("auth.password_hash", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 15*time.Minute)
	v.SetDefault("rate_limit.rps", 5.0)
	v.SetDefault("rate_limit.burst", 10)
}

// Load reads stockroom.yaml (working directory or $HOME/.config/stockroom)
// when present and lets STOCKROOM_* environment variables override it.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("stockroom")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/stockroom")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return errors.New("database.path is required for the sqlite driver")
		}
	case "pgx":
		if c.Database.URL == "" {
			return errors.New("database.url is required for the pgx driver")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Auth.Enabled() && c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required when auth.password_hash is set")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1 {
		return errors.New("rate_limit.rps must be positive and rate_limit.burst at least 1")
	}
	return nil
}
