package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/apex/log"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type Options struct {
	ConnectionString string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
}

// DBService represents a service that interacts with a database.
type DBService struct {
	DB *sql.DB
}

// NewDBService opens a pgx-backed pool with the given limits and pings it.
func NewDBService(ctx context.Context, opts Options) (*DBService, error) {
	if opts.ConnectionString == "" {
		return nil, fmt.Errorf("missing database connection string")
	}

	db, err := sql.Open("pgx", opts.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("could not open db connection: %w", err)
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not connect to the database: %w", err)
	}

	return &DBService{DB: db}, nil
}

// Health pings the database and reports the result as a status map.
func (s *DBService) Health(ctx context.Context) map[string]string {
	stats := make(map[string]string)

	err := s.DB.PingContext(ctx)
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	dbStats := s.DB.Stats()
	stats["status"] = "up"
	stats["message"] = "It's healthy"
	stats["open_connections"] = fmt.Sprint(dbStats.OpenConnections)
	stats["in_use"] = fmt.Sprint(dbStats.InUse)
	return stats
}

func (s *DBService) Close() error {
	log.Info("Closing database connection")
	return s.DB.Close()
}
