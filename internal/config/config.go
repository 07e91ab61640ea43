package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

const PROD_STRING = "prod"

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all application configuration loaded from environment.
type Config struct {
	AppEnv      string `envconfig:"APP_ENV" default:"dev"`
	ProdOrigins string `envconfig:"PROD_ORIGINS"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`

	// StorageDriver selects postgres or the in-process memory store.
	StorageDriver     string `envconfig:"STORAGE_DRIVER" default:"postgres"`
	DBDSN             string `envconfig:"DB_DSN"`
	DBMaxConns        int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	DBConnectAttempts int    `envconfig:"DB_CONNECT_ATTEMPTS" default:"10"`

	JWTSecret         string        `envconfig:"JWT_SECRET" required:"true"`
	JWTAccessTokenTTL time.Duration `envconfig:"JWT_ACCESS_TOKEN_TTL" default:"30m"`
	BcryptCost        int           `envconfig:"BCRYPT_COST" default:"12"`

	// Seed admin, created on startup when missing.
	AdminUsername string `envconfig:"ADMIN_USERNAME"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	// Timezone used to decide which calendar day is "today".
	Timezone string `envconfig:"APP_TIMEZONE" default:"UTC"`

	RedisAddr      string        `envconfig:"REDIS_ADDR"`
	RedisPassword  string        `envconfig:"REDIS_PASSWORD"`
	RedisDB        int           `envconfig:"REDIS_DB" default:"0"`
	ReportCacheTTL time.Duration `envconfig:"REPORT_CACHE_TTL" default:"30s"`

	RabbitURL       string `envconfig:"RABBIT_URL"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"courtmaster.bookings"`

	IsProduction bool           `ignored:"true"`
	Location     *time.Location `ignored:"true"`
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}
	return FromEnv()
}

// FromEnv reads the process environment only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) finalize() error {
	c.IsProduction = c.AppEnv == PROD_STRING
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	switch c.StorageDriver {
	case DriverPostgres:
		if c.DBDSN == "" {
			return errors.New("DB_DSN is required when STORAGE_DRIVER=postgres")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.DBMaxConns < 1 {
		return errors.New("DB_MAX_CONNS must be at least 1")
	}
	if c.DBConnectAttempts < 1 {
		return errors.New("DB_CONNECT_ATTEMPTS must be at least 1")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if c.JWTAccessTokenTTL <= 0 {
		return errors.New("JWT_ACCESS_TOKEN_TTL must be positive")
	}
	if c.ReportCacheTTL <= 0 {
		return errors.New("REPORT_CACHE_TTL must be positive")
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	c.Location = loc
	return nil
}

// Origins splits PROD_ORIGINS on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.ProdOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
