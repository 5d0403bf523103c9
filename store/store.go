// Package store persists movies, clients and rentals in SQLite.
//
// The schema is created on Open. Rentals reference movies and clients with
// ON DELETE CASCADE, so deleting a movie or a client also deletes its rentals.
package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/juju/errors"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when no row matches the requested id.
const ErrNotFound = errors.ConstError("record not found")

const schema = `
CREATE TABLE IF NOT EXISTS movies (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	title           TEXT    NOT NULL,
	year            INTEGER NOT NULL,
	genre           TEXT    NOT NULL,
	age_restriction TEXT    NOT NULL,
	rental_price    REAL    NOT NULL,
	available       BOOLEAN NOT NULL
);
CREATE TABLE IF NOT EXISTS clients (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name    TEXT    NOT NULL,
	last_name     TEXT    NOT NULL,
	date_of_birth TEXT    NOT NULL,
	email         TEXT    NOT NULL,
	subscribe     BOOLEAN NOT NULL
);
CREATE TABLE IF NOT EXISTS rentals (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	movie_id      INTEGER NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
	client_id     INTEGER NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
	rental_charge REAL    NOT NULL,
	rental_date   TIMESTAMP NOT NULL,
	due_date      TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS rentals_movie_id ON rentals(movie_id);
CREATE INDEX IF NOT EXISTS rentals_client_id ON rentals(client_id);
`

// Store owns the database handle and hands out the repositories.
type Store struct {
	db *sql.DB

	Movies  *MovieRepository
	Clients *ClientRepository
	Rentals *RentalRepository
}

// Open opens (creating if needed) the SQLite database at path and applies the
// schema. Use ":memory:" for a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?"
	} else {
		dsn += "&"
	}
	dsn += "_foreign_keys=on&_busy_timeout=5000"

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Annotatef(err, "opening %q", path)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Annotate(err, "applying schema")
	}
	return &Store{
		db:      db,
		Movies:  &MovieRepository{db: db},
		Clients: &ClientRepository{db: db},
		Rentals: &RentalRepository{db: db},
	}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// affected maps a zero-row update or delete to ErrNotFound.
func affected(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Trace(err)
	}
	if n == 0 {
		return errors.Annotatef(ErrNotFound, "%s %d", what, id)
	}
	return nil
}
