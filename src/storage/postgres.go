package storage

import (
	"context"
	"database/sql"
	"sync"

	"rsi-tracker/src/helpers"
	"rsi-tracker/src/logger"
	"rsi-tracker/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

// PostgresDB backs the cache with a shared Postgres instance, for deployments
// where several nodes should see the same cached day of data.
type PostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger

	initOnce sync.Once
	initErr  error
}

// -----------------------------------------------------------------------------

func NewPostgresDB(cfg *models.MConfig, log *logger.Logger) *PostgresDB {
	return &PostgresDB{
		Config: cfg,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize() error {
	d.initOnce.Do(func() {
		d.initErr = d.initialize()
	})
	return d.initErr
}

func (d *PostgresDB) initialize() error {
	db, err := sql.Open("postgres", d.Config.Storage.DBConnectionString)
	if err != nil {
		return &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to open postgres connection", Cause: err}}
	}

	if err := db.Ping(); err != nil {
		return &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to reach postgres", Cause: err}}
	}

	d.DB = db

	query := `
		CREATE TABLE IF NOT EXISTS assets (
			symbol TEXT PRIMARY KEY NOT NULL,
			timestamp BIGINT NOT NULL,
			data TEXT NOT NULL
		);
	`
	if _, err := db.Exec(query); err != nil {
		return &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to create assets table", Cause: err}}
	}

	d.Logger.Info("Postgres cache initialized")
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Get(ctx context.Context, key string) (*models.MCacheEntry, error) {
	row := d.DB.QueryRowContext(ctx, "SELECT symbol, timestamp, data FROM assets WHERE symbol = $1", key)

	var entry models.MCacheEntry
	err := row.Scan(&entry.Symbol, &entry.Timestamp, &entry.Data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to read cache entry", Cause: err}}
	}
	return &entry, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Put(ctx context.Context, entry models.MCacheEntry) error {
	_, err := d.DB.ExecContext(ctx, `
		INSERT INTO assets (symbol, timestamp, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (symbol) DO UPDATE SET
			timestamp = excluded.timestamp,
			data = excluded.data
	`, entry.Symbol, entry.Timestamp, entry.Data)
	if err != nil {
		return &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to write cache entry", Cause: err}}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Delete(ctx context.Context, key string) error {
	if _, err := d.DB.ExecContext(ctx, "DELETE FROM assets WHERE symbol = $1", key); err != nil {
		return &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to delete cache entry", Cause: err}}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Clear(ctx context.Context) error {
	if _, err := d.DB.ExecContext(ctx, "DELETE FROM assets"); err != nil {
		return &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to clear cache", Cause: err}}
	}
	d.Logger.Info("Postgres cache cleared")
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
