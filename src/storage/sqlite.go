package storage

import (
	"context"
	"database/sql"
	"sync"

	"rsi-tracker/src/helpers"
	"rsi-tracker/src/logger"
	"rsi-tracker/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

// AsyncSQLiteDB is the default cache store: a single key-value table in a
// local SQLite file, so cached data survives restarts with no external
// service.
type AsyncSQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger

	initOnce sync.Once
	initErr  error
}

// -----------------------------------------------------------------------------

func NewAsyncSQLiteDB(cfg *models.MConfig, log *logger.Logger) *AsyncSQLiteDB {
	return &AsyncSQLiteDB{
		Config: cfg,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// Initialize opens the database and creates the cache table if missing.
// Concurrent and repeated calls share a single initialization.
func (d *AsyncSQLiteDB) Initialize() error {
	d.initOnce.Do(func() {
		d.initErr = d.initialize()
	})
	return d.initErr
}

func (d *AsyncSQLiteDB) initialize() error {
	db, err := sql.Open("sqlite", d.Config.Storage.DBPath)
	if err != nil {
		return &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to open sqlite database", Cause: err}}
	}

	if err := db.Ping(); err != nil {
		return &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to reach sqlite database", Cause: err}}
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	query := `
		CREATE TABLE IF NOT EXISTS assets (
			symbol TEXT PRIMARY KEY NOT NULL,
			timestamp INTEGER NOT NULL,
			data TEXT NOT NULL
		);
	`
	if _, err := db.Exec(query); err != nil {
		return &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to create assets table", Cause: err}}
	}

	d.Logger.Info("SQLite cache initialized at %s", d.Config.Storage.DBPath)
	return nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) Get(ctx context.Context, key string) (*models.MCacheEntry, error) {
	row := d.DB.QueryRowContext(ctx, "SELECT symbol, timestamp, data FROM assets WHERE symbol = ?", key)

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

func (d *AsyncSQLiteDB) Put(ctx context.Context, entry models.MCacheEntry) error {
	_, err := d.DB.ExecContext(ctx, `
		INSERT OR REPLACE INTO assets (symbol, timestamp, data)
		VALUES (?, ?, ?)
	`, entry.Symbol, entry.Timestamp, entry.Data)
	if err != nil {
		return &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to write cache entry", Cause: err}}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) Delete(ctx context.Context, key string) error {
	if _, err := d.DB.ExecContext(ctx, "DELETE FROM assets WHERE symbol = ?", key); err != nil {
		return &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to delete cache entry", Cause: err}}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) Clear(ctx context.Context) error {
	if _, err := d.DB.ExecContext(ctx, "DELETE FROM assets"); err != nil {
		return &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to clear cache", Cause: err}}
	}
	d.Logger.Info("SQLite cache cleared")
	return nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
