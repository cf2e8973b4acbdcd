// internal/rankdb/db.go
//
// SQLite persistence for finished rankings.
// Responsibilities:
//   - Opening SQLite database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Storing each finished search as a flat ranked list and reading the latest back.

package rankdb

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/guess-ranker/internal/hint"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/search"
)

//go:embed sql/*.sql
var migrations embed.FS

// ErrNoRuns is returned by Latest when nothing has been stored for a mode.
var ErrNoRuns = errors.New("rankdb: no stored runs")

// DB wraps the SQLite handle.
type DB struct {
	SQL *sql.DB
}

// Run is one stored search.
type Run struct {
	ID        int64           `json:"id"`
	Mode      search.Mode     `json:"mode"`
	Guesses   int             `json:"guesses"`
	Secrets   int             `json:"secrets"`
	CreatedAt time.Time       `json:"createdAt"`
	Entries   []search.Scored `json:"entries"`
}

// Open opens (creating if missing) the database at dsn and applies migrations.
func Open(dsn string) (*DB, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{SQL: db}, nil
}

// Close releases the database handle.
func (d *DB) Close() error { return d.SQL.Close() }

/**
 * openDB opens (and creates if missing) a SQLite database file.
 *
 * - Ensures parent directory exists for relative DSNs (e.g. ./data/rankings.db).
 * - Configures busy timeout and WAL journaling mode.
 * - Enforces foreign keys.
 */
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

/**
 * migrate applies SQL migrations from the embedded sql directory.
 *
 * - Uses a _migrations table to track applied files.
 * - Executes each *.sql file in lexical order inside its own transaction.
 * - Skips files already applied.
 */
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(fsys, "sql", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk sql dir: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Save stores r as a new run, ranks numbered from 1 in r's order.
func (d *DB) Save(ctx context.Context, r *search.Ranking, secrets int) (int64, error) {
	tx, err := d.SQL.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (mode, guesses, secrets, created_at) VALUES (?,?,?,?)`,
		r.Mode.String(), len(r.Entries), secrets, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO rankings (run_id, rank, word, score) VALUES (?,?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for i, e := range r.Entries {
		if _, err := stmt.ExecContext(ctx, id, i+1, string(e.Word), e.Score); err != nil {
			return 0, fmt.Errorf("insert rank %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	return id, nil
}

// Latest loads the most recent run for mode with at most limit entries,
// best first. limit <= 0 loads every entry.
func (d *DB) Latest(ctx context.Context, mode search.Mode, limit int) (*Run, error) {
	var run Run
	var created string
	err := d.SQL.QueryRowContext(ctx,
		`SELECT id, guesses, secrets, created_at FROM runs WHERE mode=? ORDER BY id DESC LIMIT 1`,
		mode.String(),
	).Scan(&run.ID, &run.Guesses, &run.Secrets, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNoRuns, mode)
	}
	if err != nil {
		return nil, err
	}
	run.Mode = mode
	run.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)

	if limit <= 0 {
		limit = -1
	}
	rows, err := d.SQL.QueryContext(ctx,
		`SELECT word, score FROM rankings WHERE run_id=? ORDER BY rank ASC LIMIT ?`, run.ID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var w string
		var e search.Scored
		if err := rows.Scan(&w, &e.Score); err != nil {
			return nil, err
		}
		e.Word = hint.Word(w)
		run.Entries = append(run.Entries, e)
	}
	return &run, rows.Err()
}
