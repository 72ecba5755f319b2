// Package config reads the portal settings from the environment.
package config

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the runtime settings.
type Config struct {
	Port       string
	JWTSecret  string
	JWTIssuer  string
	SessionTTL time.Duration

	// DBURL selects the PostgreSQL store; empty keeps messages in memory.
	DBURL      string
	FetchDelay time.Duration

	DemoLogin    bool
	SeedPassword string

	LoginRateRequests int
	LoginRateWindow   time.Duration

	SchoolName string
}

func defaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("jwt_iss", "escola-conectada")
	v.SetDefault("session_ttl", 12*time.Hour)
	v.SetDefault("fetch_delay", time.Duration(0))
	v.SetDefault("demo_login", true)
	v.SetDefault("login_rate_requests", 10)
	v.SetDefault("login_rate_window", time.Minute)
	v.SetDefault("school_name", "Secretaria Escolar")
}

// Load reads .env (if present) and the environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Printf("failed to load .env file: %+v", err)
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	defaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:              v.GetString("port"),
		JWTSecret:         v.GetString("jwt_secret"),
		JWTIssuer:         v.GetString("jwt_iss"),
		SessionTTL:        v.GetDuration("session_ttl"),
		DBURL:             v.GetString("db_url"),
		FetchDelay:        v.GetDuration("fetch_delay"),
		DemoLogin:         v.GetBool("demo_login"),
		SeedPassword:      v.GetString("seed_password"),
		LoginRateRequests: v.GetInt("login_rate_requests"),
		LoginRateWindow:   v.GetDuration("login_rate_window"),
		SchoolName:        v.GetString("school_name"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET environment variable is not set")
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, errors.New("SESSION_TTL must be positive")
	}
	if cfg.LoginRateRequests <= 0 || cfg.LoginRateWindow <= 0 {
		return Config{}, errors.New("LOGIN_RATE_REQUESTS and LOGIN_RATE_WINDOW must be positive")
	}

	return cfg, nil
}
