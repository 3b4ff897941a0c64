package config

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"db"`
	Session  SessionConfig  `mapstructure:"session"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Security SecurityConfig `mapstructure:"security"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DBConfig struct {
	Source   string `mapstructure:"source"`
	MaxConns int32  `mapstructure:"max_conns"`
}

type SessionConfig struct {
	Secret     string        `mapstructure:"secret"`
	CookieName string        `mapstructure:"cookie_name"`
	TTL        time.Duration `mapstructure:"ttl"`
	Secure     bool          `mapstructure:"secure"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SecurityConfig toggles the owner check on note and profile routes.
type SecurityConfig struct {
	EnforceOwnership bool `mapstructure:"enforce_ownership"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

var (
	ErrMissingDBSource      = errors.New("db.source is required")
	ErrMissingSessionSecret = errors.New("session.secret is required")
	ErrPlaceholderSecret    = errors.New("session.secret is a placeholder value")
)

// placeholderSecrets are sample values that must never sign sessions.
var placeholderSecrets = []string{"change-me", "changeme", "secret"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":3003")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("db.source", "")
	v.SetDefault("db.max_conns", 10)
	v.SetDefault("session.secret", "")
	v.SetDefault("session.cookie_name", "notig_session")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.secure", false)
	v.SetDefault("cors.allowed_origins", []string{"http://127.0.0.1:5173", "http://localhost:5173"})
	v.SetDefault("security.enforce_ownership", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Load reads configs/settings.yml (when present) and overlays environment
// variables, e.g. DB_SOURCE or SESSION_SECRET. A local .env file is loaded
// into the environment first; variables already set win.
func Load(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if len(paths) == 0 {
		paths = []string{"./configs", "/configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("settings")
	v.SetConfigType("yml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Env values arrive as one comma separated string.
	if len(cfg.CORS.AllowedOrigins) == 1 && strings.Contains(cfg.CORS.AllowedOrigins[0], ",") {
		cfg.CORS.AllowedOrigins = strings.Split(cfg.CORS.AllowedOrigins[0], ",")
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DB.Source == "" {
		return ErrMissingDBSource
	}
	if c.Session.Secret == "" {
		return ErrMissingSessionSecret
	}
	if slices.Contains(placeholderSecrets, strings.ToLower(c.Session.Secret)) {
		return ErrPlaceholderSecret
	}
	return nil
}
