package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config represents the server configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Redis     RedisConfig
	Reconcile ReconcileConfig
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port            string        `env:"PORT"             envDefault:"3001"`
	CorsOrigins     []string      `env:"CORS_ORIGINS"     envDefault:"*" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// DatabaseConfig represents MySQL connection configuration
type DatabaseConfig struct {
	Host            string        `env:"DB_HOST"              envDefault:"127.0.0.1"`
	Port            string        `env:"DB_PORT"              envDefault:"3306"`
	User            string        `env:"DB_USER"              envDefault:"root"`
	Password        string        `env:"DB_PASSWORD"`
	Name            string        `env:"DB_NAME"              envDefault:"site_inventory"`
	TLS             bool          `env:"DB_TLS"               envDefault:"false"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS"    envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS"    envDefault:"25"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"3m"`
}

// AuthConfig represents token and bootstrap admin configuration
type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET"     envDefault:"default-secret-change-in-production"`
	TokenTTL      time.Duration `env:"JWT_TTL"        envDefault:"24h"`
	AdminEmail    string        `env:"ADMIN_EMAIL"    envDefault:"admin@example.com"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
}

// RedisConfig enables the distributed DDL lock when Addr is set
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB"       envDefault:"0"`
	LockTTL  time.Duration `env:"LOCK_TTL"       envDefault:"30s"`
}

// ReconcileConfig schedules the specification drift check. "off" disables it.
type ReconcileConfig struct {
	Schedule string `env:"RECONCILE_SCHEDULE" envDefault:"@every 5m"`
}

// Load reads the first .env file found in paths (if any) and then parses the environment.
func Load(paths ...string) (*Config, error) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", p, err)
		}
		log.Printf("📁 Loaded .env from %s", p)
		break
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints env tags can't express
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Name) == "" {
		return fmt.Errorf("DB_NAME must not be empty")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1, got %d", c.Database.MaxOpenConns)
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		c.Database.MaxIdleConns = c.Database.MaxOpenConns
	}
	if c.Redis.Addr != "" && c.Redis.LockTTL <= 0 {
		return fmt.Errorf("LOCK_TTL must be positive when REDIS_ADDR is set")
	}
	if c.Auth.JWTSecret == "default-secret-change-in-production" {
		log.Println("⚠️  JWT_SECRET not set, using the development default")
	}
	return nil
}
