package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver      string `mapstructure:"driver"`
	URL         string `mapstructure:"url"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type AuthConfig struct {
	JWTSecret              string        `mapstructure:"jwt_secret"`
	SessionTTL             time.Duration `mapstructure:"session_ttl"`
	BcryptCost             int           `mapstructure:"bcrypt_cost"`
	CookieSecure           bool          `mapstructure:"cookie_secure"`
	LoginAttemptsPerMinute int           `mapstructure:"login_attempts_per_minute"`
	LoginBurst             int           `mapstructure:"login_burst"`
	LimiterSweep           string        `mapstructure:"limiter_sweep"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"server.port":                    "PORT",
	"database.driver":                "DATABASE_DRIVER",
	"database.url":                   "DATABASE_URL",
	"database.auto_migrate":          "AUTO_MIGRATE",
	"auth.jwt_secret":                "JWT_SECRET",
	"auth.session_ttl":               "SESSION_TTL",
	"auth.bcrypt_cost":               "BCRYPT_COST",
	"auth.cookie_secure":             "COOKIE_SECURE",
	"auth.login_attempts_per_minute": "LOGIN_ATTEMPTS_PER_MINUTE",
	"auth.login_burst":               "LOGIN_BURST",
	"auth.limiter_sweep":             "LIMITER_SWEEP",
	"log.level":                      "LOG_LEVEL",
	"log.format":                     "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.url", "mothwallet.db")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.session_ttl", time.Hour)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.cookie_secure", false)
	v.SetDefault("auth.login_attempts_per_minute", 10)
	v.SetDefault("auth.login_burst", 5)
	v.SetDefault("auth.limiter_sweep", "@every 10m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads .env (when present), an optional config.yaml and the
// environment, in increasing order of precedence.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.Auth.LoginAttemptsPerMinute <= 0 || c.Auth.LoginBurst <= 0 {
		return errors.New("login limiter settings must be positive")
	}
	return nil
}
