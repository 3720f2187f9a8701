// Package config provides configuration management, validation, and provider logic for the orders service.
package config

import (
	"context"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq" // Import for PostgreSQL driver registration
)

// config_db.go: PostgreSQL database connection helpers and legacy patterns.

// ConnectDB establishes a connection to the PostgreSQL database using
// STQ_ORDERS_DB_DSN, calling log.Fatal on error. Prefer ConnectDBWithError.
func (cfg *APIConfig) ConnectDB() {
	if cfg.DBConn != nil {
		log.Println("Database already connected")
		return
	}

	dsn := os.Getenv("STQ_ORDERS_DB_DSN")
	if dsn == "" {
		log.Println("Warning: STQ_ORDERS_DB_DSN is not set")
		return
	}

	provider := NewPostgresProvider(dsn)
	db, dbQueries, err := provider.Connect(context.Background())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	cfg.DB = dbQueries
	cfg.DBConn = db
	log.Println("Connected to database successfully...")
}

// ConnectDBWithError establishes a database connection and returns any
// error instead of calling log.Fatal.
func (cfg *APIConfig) ConnectDBWithError(ctx context.Context) error {
	if cfg.DBConn != nil {
		return nil
	}

	dsn := cfg.DBDSN
	if dsn == "" {
		dsn = os.Getenv("STQ_ORDERS_DB_DSN")
	}
	if dsn == "" {
		return fmt.Errorf("database dsn is not set")
	}

	provider := NewPostgresProvider(dsn)
	db, dbQueries, err := provider.Connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	cfg.DB = dbQueries
	cfg.DBConn = db
	return nil
}

// DisconnectDB closes the underlying connection pool, if one is open.
func (cfg *APIConfig) DisconnectDB(_ context.Context) error {
	if cfg.DBConn == nil {
		return nil
	}
	err := cfg.DBConn.Close()
	cfg.DBConn = nil
	cfg.DB = nil
	return err
}
