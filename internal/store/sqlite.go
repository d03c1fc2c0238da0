// apps/go-solver/internal/store/sqlite.go
//
// SQLite-backed Store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Players and current games, one row per player.

package store

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

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLite is a Store persisted in a SQLite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at path and migrates it.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }

// openDB ensures the parent directory exists and configures busy timeout,
// WAL journaling and foreign keys.
func openDB(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// Pragmas are per connection; one connection keeps them in force.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies the embedded *.sql files in lexical order, each inside its own
// transaction, skipping files already recorded in _migrations.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
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

		sqlBytes, err := migrations.ReadFile(f)
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

func (s *SQLite) SavePlayer(ctx context.Context, p Player) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO players (id, name, mode, created_at) VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET name=excluded.name, mode=excluded.mode`,
		p.ID, p.Name, p.Mode, p.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLite) GetPlayer(ctx context.Context, id string) (Player, error) {
	var p Player
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, mode, created_at FROM players WHERE id=?`, id,
	).Scan(&p.ID, &p.Name, &p.Mode, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Player{}, ErrNotFound
	}
	if err != nil {
		return Player{}, err
	}
	p.CreatedAt = mustParse(created)
	return p, nil
}

func (s *SQLite) SaveGame(ctx context.Context, g *game.Game) error {
	guesses := make([]string, len(g.Guesses))
	for i, w := range g.Guesses {
		guesses[i] = w.String()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO games (player_id, id, answer, max_guesses, guesses, finished, won, started_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(player_id) DO UPDATE SET
            id=excluded.id, answer=excluded.answer, max_guesses=excluded.max_guesses,
            guesses=excluded.guesses, finished=excluded.finished, won=excluded.won,
            started_at=excluded.started_at`,
		g.PlayerID, g.ID, g.Answer.String(), g.MaxGuesses, strings.Join(guesses, ","),
		g.Finished, g.Won, g.StartedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLite) GetGame(ctx context.Context, playerID string) (*game.Game, error) {
	var (
		g                       game.Game
		answer, guesses, started string
	)
	err := s.db.QueryRowContext(ctx, `
        SELECT id, player_id, answer, max_guesses, guesses, finished, won, started_at
        FROM games WHERE player_id=?`, playerID,
	).Scan(&g.ID, &g.PlayerID, &answer, &g.MaxGuesses, &guesses, &g.Finished, &g.Won, &started)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if g.Answer, err = game.ParseWord(answer); err != nil {
		return nil, fmt.Errorf("game %s: %w", g.ID, err)
	}
	g.Guesses = []game.Word{}
	if guesses != "" {
		for _, part := range strings.Split(guesses, ",") {
			w, err := game.ParseWord(part)
			if err != nil {
				return nil, fmt.Errorf("game %s: %w", g.ID, err)
			}
			g.Guesses = append(g.Guesses, w)
		}
	}
	g.StartedAt = mustParse(started)
	return &g, nil
}

// mustParse parses RFC3339 timestamps; on error returns zero time.
func mustParse(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

var _ Store = (*SQLite)(nil)
