package config

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port             string        `mapstructure:"PORT"`
	AppEnv           string        `mapstructure:"APP_ENV"`
	DatabasePath     string        `mapstructure:"DATABASE_PATH"`
	JWTSecret        string        `mapstructure:"JWT_SECRET"`
	TokenTTL         time.Duration `mapstructure:"TOKEN_TTL"`
	EnableCORS       bool          `mapstructure:"ENABLE_CORS"`
	CORSOrigins      []string      `mapstructure:"CORS_ORIGINS"`
	HTTPReadTimeout  time.Duration `mapstructure:"HTTP_READ_TIMEOUT"`
	HTTPWriteTimeout time.Duration `mapstructure:"HTTP_WRITE_TIMEOUT"`
	HTTPIdleTimeout  time.Duration `mapstructure:"HTTP_IDLE_TIMEOUT"`
	ShutdownTimeout  time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

func LoadConfig() *Config {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "4000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_PATH", "charity.db")
	v.SetDefault("TOKEN_TTL", "8h")
	v.SetDefault("ENABLE_CORS", false)
	v.SetDefault("CORS_ORIGINS", []string{})
	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "30s")
	v.SetDefault("HTTP_IDLE_TIMEOUT", "60s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.BindEnv("JWT_SECRET")

	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}

// Validate reports settings the server cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
