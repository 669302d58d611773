package storage

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Backend names a supported database engine.
type Backend string

const (
	SQLite     Backend = "sqlite" // default
	PostgreSQL Backend = "postgresql"
	MySQL      Backend = "mysql"
)

// ParseBackend validates a backend name. Empty means SQLite.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "", SQLite:
		return SQLite, nil
	case PostgreSQL, "postgres", "pgx":
		return PostgreSQL, nil
	case MySQL:
		return MySQL, nil
	default:
		return "", fmt.Errorf("unsupported backend %q: must be sqlite, postgresql or mysql", s)
	}
}

// DB wraps a sql.DB for the season store.
type DB struct {
	conn    *sql.DB
	backend Backend
	now     func() time.Time
}

// Open opens (or creates) the SQLite database at the given path and applies the schema.
func Open(path string) (*DB, error) {
	return OpenBackend(SQLite, path)
}

// OpenBackend connects to the given backend and applies the schema. For SQLite
// dsn is a file path; for MySQL it is user:password@tcp(host:port)/dbname; for
// PostgreSQL a libpq keyword string or URL.
func OpenBackend(backend Backend, dsn string) (*DB, error) {
	var (
		conn *sql.DB
		err  error
	)
	switch backend {
	case SQLite:
		conn, err = sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", dsn))
		if err != nil {
			return nil, fmt.Errorf("open sqlite %q: %w", dsn, err)
		}
		// One connection: avoids "database is locked" and keeps :memory: databases alive.
		conn.SetMaxOpenConns(1)
	case PostgreSQL:
		conn, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgresql: %w", err)
		}
	case MySQL:
		conn, err = sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported backend %q", backend)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connect %s (%s): %w", backend, Describe(backend, dsn), err)
	}
	db := &DB{conn: conn, backend: backend, now: time.Now}
	if err := db.applySchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// applySchema runs schema.sql one statement at a time; MySQL rejects
// multi-statement Exec by default.
func (db *DB) applySchema() error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// Backend reports which engine the store runs on.
func (db *DB) Backend() Backend { return db.backend }

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (db *DB) rebind(query string) string {
	if db.backend != PostgreSQL {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Describe renders a connection target without credentials, for logs and
// error messages.
func Describe(backend Backend, dsn string) string {
	switch backend {
	case MySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "mysql"
		}
		return fmt.Sprintf("mysql %s/%s", cfg.Addr, cfg.DBName)
	case PostgreSQL:
		for _, kv := range strings.Fields(dsn) {
			if strings.HasPrefix(kv, "password=") {
				continue
			}
			if strings.HasPrefix(kv, "host=") || strings.HasPrefix(kv, "dbname=") {
				return "postgresql " + kv
			}
		}
		return "postgresql"
	default:
		return "sqlite " + dsn
	}
}
