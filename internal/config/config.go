package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

var (
	ErrMissingDatabaseURI = errors.New("database uri is required (DATABASE_URI)")
	ErrMissingJWTSecret   = errors.New("jwt secret is required (JWT_SECRET)")
)

type Config struct {
	Port        int
	DatabaseURI string
	JWTSecret   string
	UploadsDir  string
	TokenTTL    time.Duration
}

func New() *Config {
	return &Config{
		Port:       5000,
		UploadsDir: "uploads",
		TokenTTL:   time.Hour,
	}
}

// RegisterFlags binds the config fields to fs. Flag values are the defaults;
// environment variables applied by ApplyEnv take precedence.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&c.Port, "port", "p", c.Port, "HTTP listen port")
	fs.StringVarP(&c.DatabaseURI, "database-uri", "d", c.DatabaseURI, "postgres DSN, or sqlite:<path>")
	fs.StringVarP(&c.JWTSecret, "jwt-secret", "s", c.JWTSecret, "token signing key")
	fs.StringVar(&c.UploadsDir, "uploads-dir", c.UploadsDir, "directory served under /uploads")
	fs.DurationVar(&c.TokenTTL, "token-ttl", c.TokenTTL, "issued token lifetime")
}

func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse PORT: %w", err)
		}
		c.Port = port
	}
	c.DatabaseURI = getEnv("DATABASE_URI", c.DatabaseURI)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.UploadsDir = getEnv("UPLOADS_DIR", c.UploadsDir)
	if v, ok := os.LookupEnv("TOKEN_TTL"); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse TOKEN_TTL: %w", err)
		}
		c.TokenTTL = ttl
	}
	return nil
}

// ValidateDatabase checks only what store-level commands need.
func (c *Config) ValidateDatabase() error {
	if c.DatabaseURI == "" {
		return ErrMissingDatabaseURI
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.ValidateDatabase(); err != nil {
		return err
	}
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("invalid token ttl %s", c.TokenTTL)
	}
	return nil
}

func (c *Config) RunAddress() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
