package datastore

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"talenthui-go-backend/config"
)

func NewDSN() string {
	c := config.C.Database
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Addr + ":" + c.Port +
		"/" + c.DBName + "?sslmode=" + c.SSLMode
}

// NewPool creates a pgx pool from the default DSN in config.
func NewPool() (*pgxpool.Pool, error) {
	return NewPoolWithDSN(NewDSN())
}

// NewPoolWithDSN creates a pgx connection pool
func NewPoolWithDSN(dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool config: %w", err)
	}
	poolConfig.MaxConns = 20
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = time.Minute * 2

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	return pool, nil
}

// NewPoolFromEnv builds a pool from the DATA_STORE_URL / DATA_STORE_SERVICE_KEY
// pair the import CLI uses. The service key overrides the DSN password so the
// URL can be shared without credentials.
func NewPoolFromEnv() (*pgxpool.Pool, error) {
	url := os.Getenv("DATA_STORE_URL")
	serviceKey := os.Getenv("DATA_STORE_SERVICE_KEY")
	if url == "" || serviceKey == "" {
		return nil, fmt.Errorf("missing credentials: set DATA_STORE_URL and DATA_STORE_SERVICE_KEY")
	}

	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATA_STORE_URL: %w", err)
	}
	poolConfig.ConnConfig.Password = serviceKey
	poolConfig.MaxConns = 20
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = time.Minute * 2

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	return pool, nil
}
