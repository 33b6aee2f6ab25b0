package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"verse_channel_bot/internal/domain/cursor"
)

const createBotStateTable = `CREATE TABLE IF NOT EXISTS bot_state (
    name          TEXT PRIMARY KEY,
    current_index INTEGER NOT NULL CHECK (current_index >= 0),
    last_run      TIMESTAMPTZ,
    total_verses  INTEGER NOT NULL DEFAULT 0,
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresCursorRepository keeps one bot_state row per bot name.
type PostgresCursorRepository struct {
	db   *sql.DB
	name string
}

var _ cursor.Repository = (*PostgresCursorRepository)(nil)

func NewPostgresCursorRepository(db *sql.DB, name string) *PostgresCursorRepository {
	return &PostgresCursorRepository{db: db, name: name}
}

// EnsureSchema creates the bot_state table if it does not exist.
func (r *PostgresCursorRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createBotStateTable); err != nil {
		return fmt.Errorf("error creating bot_state table: %w", err)
	}
	return nil
}

func (r *PostgresCursorRepository) Fetch(ctx context.Context) (cursor.State, error) {
	query := `SELECT current_index, last_run, total_verses FROM bot_state WHERE name = $1`

	var (
		st      cursor.State
		lastRun sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, r.name).Scan(&st.CurrentIndex, &lastRun, &st.TotalVerses)
	if err != nil {
		if err == sql.ErrNoRows {
			return cursor.State{}, cursor.ErrNotFound
		}
		return cursor.State{}, fmt.Errorf("error getting bot state %q: %w", r.name, err)
	}
	if lastRun.Valid {
		st.LastRun = lastRun.Time
	}
	return st, nil
}

func (r *PostgresCursorRepository) Persist(ctx context.Context, st cursor.State) error {
	query := `INSERT INTO bot_state (name, current_index, last_run, total_verses, updated_at)
               VALUES ($1, $2, $3, $4, NOW())
               ON CONFLICT (name) DO UPDATE
               SET current_index = EXCLUDED.current_index,
                   last_run = EXCLUDED.last_run,
                   total_verses = EXCLUDED.total_verses,
                   updated_at = NOW()`

	lastRun := sql.NullTime{Time: lastRunUTC(st.LastRun), Valid: !st.LastRun.IsZero()}
	if _, err := r.db.ExecContext(ctx, query, r.name, st.CurrentIndex, lastRun, st.TotalVerses); err != nil {
		return fmt.Errorf("error saving bot state %q: %w", r.name, err)
	}
	return nil
}

// lastRunUTC normalises timestamps before they reach the driver.
func lastRunUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
