package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret       string
		TokenTTLMinutes int
	}
	Catalog struct {
		Path string
	}
	Log struct {
		Level  string
		Format string
	}
	Cors struct {
		AllowOrigins []string
	}
	Storage struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
	Events struct {
		AMQPURL  string
		Exchange string
	}
}

// TokenTTL is the access token lifetime.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}

// Load reads configuration from environment variables and optional config files.
// Variables from a .env file in the working directory never override the
// process environment.
func Load() (Config, error) {
	_ = godotenv.Load() // optional file

	v := viper.New()
	v.SetEnvPrefix("CAREER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("database.path", "data/career.db")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttlminutes", 1440)
	v.SetDefault("catalog.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("cors.alloworigins", []string{"*"})
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "reports")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("events.amqpurl", "")
	v.SetDefault("events.exchange", "career_events")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwtsecret is required (set CAREER_AUTH_JWTSECRET)")
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("auth.tokenttlminutes must be positive, got %d", c.Auth.TokenTTLMinutes)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
