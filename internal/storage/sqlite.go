// Package storage persists the default server address of each organizational unit,
// either in SQLite or in memory.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/woozymasta/mcwho/internal/models"
	_ "modernc.org/sqlite" // Driver sqlite
)

// ErrUnavailable marks any failure of the underlying storage.
// It is fatal to the operation that hit it but not to the process.
var ErrUnavailable = errors.New("storage unavailable")

// Repository manages the SQLite database connection.
type Repository struct {
	db *sql.DB
}

// New initializes a new SQLite connection, sets connection pool parameters, and creates the schema.
func New(dbPath string) (*Repository, error) {
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, unavailable(err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(1 * time.Hour)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, unavailable(err)
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, unavailable(err)
	}

	return newRepository(db), nil
}

func newRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Close closes the underlying database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// GetDefaultServer returns the address stored for the unit.
// A missing record is reported with ok=false and no error.
func (r *Repository) GetDefaultServer(ctx context.Context, unitID string) (string, bool, error) {
	var address string
	err := r.db.QueryRowContext(ctx, `SELECT address FROM default_servers WHERE unit_id = ?`, unitID).Scan(&address)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, unavailable(err)
	}

	return address, true, nil
}

// SetDefaultServer inserts or replaces the single record of the unit.
// Concurrent writers for the same unit resolve as last writer wins.
func (r *Repository) SetDefaultServer(ctx context.Context, unitID, address string) error {
	query := `
	INSERT INTO default_servers (unit_id, address)
	VALUES (?, ?)
	ON CONFLICT(unit_id) DO UPDATE SET
		address = excluded.address;
	`

	if _, err := r.db.ExecContext(ctx, query, unitID, address); err != nil {
		return unavailable(err)
	}

	return nil
}

// ListDefaultServers retrieves all records ordered by unit identifier.
func (r *Repository) ListDefaultServers(ctx context.Context) ([]models.DefaultServer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT unit_id, address FROM default_servers ORDER BY unit_id`)
	if err != nil {
		return nil, unavailable(err)
	}
	defer func() { _ = rows.Close() }()

	var servers []models.DefaultServer
	for rows.Next() {
		var s models.DefaultServer
		if err := rows.Scan(&s.UnitID, &s.Address); err != nil {
			return nil, unavailable(err)
		}
		servers = append(servers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}

	return servers, nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
