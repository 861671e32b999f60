// Package store persists questions, objectives, the review ledger and
// aggregate metrics. Statements are rendered with ent's SQL builder so the
// same code runs against SQLite and Postgres, and executed through sqlx.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	// Postgres driver registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects the database backend.
type Config struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// Store owns the database handle. Its embedded Queries run outside any
// transaction; use InTx for multi-statement writes.
type Store struct {
	*Queries
	db *sqlx.DB
}

// Open connects to the configured database and creates or upgrades the schema.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	var (
		db      *sql.DB
		entDial string
		err     error
	)

	switch cfg.Driver {
	case DriverSQLite, "":
		entDial = dialect.SQLite
		db, err = openSQLite(cfg.DSN)
	case DriverPostgres:
		entDial = dialect.Postgres
		db, err = openPostgres(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := migrate(ctx, entsql.OpenDB(entDial, db)); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	xdb := sqlx.NewDb(db, driverName(entDial))
	return &Store{
		Queries: &Queries{ext: xdb, dialect: entDial},
		db:      xdb,
	}, nil
}

// OpenSQLite opens a SQLite database at path.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	return Open(ctx, Config{Driver: DriverSQLite, DSN: path})
}

// DB returns the underlying handle for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Dialect returns the ent dialect name of the backing database.
func (s *Store) Dialect() string {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func openSQLite(dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection keeps pragmas and in-memory databases consistent, and
	// serializes writers the way SQLite wants anyway.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	return db, nil
}

func openPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func driverName(entDialect string) string {
	if entDialect == dialect.Postgres {
		return "pgx"
	}
	return "sqlite"
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. PREPDECK_DB environment variable
// 2. $XDG_DATA_HOME/prepdeck/prepdeck.db
// 3. ~/.local/share/prepdeck/prepdeck.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("PREPDECK_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "prepdeck", "prepdeck.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
