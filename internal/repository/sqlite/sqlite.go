// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — it lives inside the Go binary as a single
// file. No separate database server to install, configure, or manage. The shop
// is a single-server deployment with four small collections, which is exactly
// the workload SQLite is built for. Tests use ":memory:" for a throwaway DB.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a C
// compiler installed and cross-compilation becomes painful. modernc.org/sqlite
// is a pure Go translation of the SQLite C code — works everywhere Go works.
package sqlite

import (
	"database/sql"
	"fmt"

	// BLANK IMPORT:
	// The underscore import is a "side-effect only" import. The sqlite
	// package's init() registers itself with database/sql as a driver named
	// "sqlite"; after this import, sql.Open("sqlite", ...) knows how to talk
	// to SQLite.
	_ "modernc.org/sqlite"
)

// DB owns the sql.DB connection pool and exposes one repository per
// collection. The four repos share the pool; DB controls the lifecycle
// (New creates everything, Close tears it down).
type DB struct {
	conn *sql.DB

	Products  *ProductRepo
	Orders    *OrderRepo
	SiteTexts *SiteTextRepo
	Users     *UserRepo
}

// New creates a new SQLite database connection and runs migrations.
//
// dbPath examples:
//   - "data/shop.db"  → file-based database (persistent)
//   - ":memory:"      → in-memory database (great for tests, lost on close)
//
// sql.Open() does NOT actually open a connection — it just creates a pool
// manager. We call Ping() to force an immediate connection so a bad path or
// permissions issue surfaces here, not on the first query.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL (Write-Ahead Logging) mode:
	// Default SQLite locks the entire database during writes. WAL allows
	// concurrent reads while a write is happening — needed for a web server
	// where multiple requests hit the DB.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	db.Products = &ProductRepo{conn: conn}
	db.Orders = &OrderRepo{conn: conn}
	db.SiteTexts = &SiteTextRepo{conn: conn}
	db.Users = &UserRepo{conn: conn}

	return db, nil
}

// Close closes the database connection pool. Always defer Close() wherever
// New() is called so the WAL is flushed and the file lock released.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the four collection tables.
//
// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every startup.
// For this schema size a migration tool (golang-migrate) would be overkill.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price       REAL NOT NULL DEFAULT 0,
			image       TEXT NOT NULL DEFAULT '',
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating products table: %w", err)
	}

	// product_id deliberately has no FOREIGN KEY constraint: orders keep
	// their product_id even after the product is deleted, and the admin
	// views tolerate the dangling reference.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS orders (
			id               TEXT PRIMARY KEY,
			product_id       TEXT NOT NULL,
			email            TEXT NOT NULL,
			discord_name     TEXT NOT NULL,
			paysafecard_code TEXT NOT NULL,
			status           TEXT NOT NULL DEFAULT 'pending',
			created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating orders table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS site_texts (
			id          TEXT PRIMARY KEY,
			key         TEXT NOT NULL UNIQUE,
			value       TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT ''
		);
	`)
	if err != nil {
		return fmt.Errorf("creating site_texts table: %w", err)
	}

	// username and email are UNIQUE — the service layer probes first for a
	// friendly error, the constraint is the backstop.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'user',
			email         TEXT NOT NULL UNIQUE,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_login    DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	return nil
}
