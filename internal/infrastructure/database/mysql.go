package database

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"log"
	"sync"

	"github.com/go-sql-driver/mysql"

	"github.com/Andtit4/site-database-sub001/internal/config"
)

const tlsConfigName = "inventory"

var tlsOnce sync.Once

// Connection wraps the MySQL connection pool.
// sql.DB is already safe for concurrent use; no extra locking is layered on top.
type Connection struct {
	db *sql.DB
}

// Open creates a pooled MySQL connection from configuration and pings it
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Connection, error) {
	db, err := sql.Open("mysql", BuildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// MaxIdleConns should match MaxOpenConns so connections aren't churned under load
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Connection{db: db}, nil
}

// BuildDSN renders the go-sql-driver DSN for the configured database
func BuildDSN(cfg config.DatabaseConfig) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	mc.DBName = cfg.Name
	mc.ParseTime = true
	// RowsAffected counts matched rows so an unchanged UPDATE is not read as missing
	mc.ClientFoundRows = true
	mc.Params = map[string]string{"charset": "utf8mb4"}

	if cfg.TLS {
		tlsOnce.Do(func() {
			if err := mysql.RegisterTLSConfig(tlsConfigName, &tls.Config{
				MinVersion: tls.VersionTLS12,
				ServerName: cfg.Host,
			}); err != nil {
				log.Printf("Failed to register TLS config: %v", err)
			}
		})
		mc.TLSConfig = tlsConfigName
	}

	return mc.FormatDSN()
}

// DB returns the underlying *sql.DB connection
func (c *Connection) DB() *sql.DB {
	return c.db
}

// Close closes the database connection
func (c *Connection) Close() error {
	return c.db.Close()
}
