// Package sqlite provides a SQLite-backed implementation of the workout repository port.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
	"github.com/ewilliams-labs/cadence/backend/internal/core/ports"
)

// Adapter implements the repository port for SQLite
type Adapter struct {
	db  *sql.DB
	now func() time.Time
}

var _ ports.WorkoutRepository = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open db: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: failed to ping db: %w", err)
	}

	adapter := &Adapter{db: db, now: time.Now}

	// Auto-migrate on startup for local dev
	if err := adapter.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

// GetByID loads a workout and its sections in position order.
func (a *Adapter) GetByID(ctx context.Context, id string) (domain.Workout, error) {
	row := a.db.QueryRowContext(ctx, "SELECT id, name, type, created_at FROM workouts WHERE id = ?", id)
	var w domain.Workout
	if err := row.Scan(&w.ID, &w.Name, &w.Type, &w.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Workout{}, domain.ErrNotFound
		}
		return domain.Workout{}, fmt.Errorf("sqlite: failed to load workout: %w", err)
	}
	sections, err := a.loadSections(ctx, w.ID)
	if err != nil {
		return domain.Workout{}, err
	}
	w.Sections = sections

	return w, nil
}

// List loads every workout, oldest first.
func (a *Adapter) List(ctx context.Context) ([]domain.Workout, error) {
	rows, err := a.db.QueryContext(ctx, "SELECT id, name, type, created_at FROM workouts ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to list workouts: %w", err)
	}

	workouts := []domain.Workout{}
	for rows.Next() {
		var w domain.Workout
		if err := rows.Scan(&w.ID, &w.Name, &w.Type, &w.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("sqlite: failed to scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	// Sections are read after the cursor is released: the pool holds one connection.
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to iterate workouts: %w", err)
	}

	for i := range workouts {
		sections, err := a.loadSections(ctx, workouts[i].ID)
		if err != nil {
			return nil, err
		}
		workouts[i].Sections = sections
	}
	return workouts, nil
}

func (a *Adapter) loadSections(ctx context.Context, workoutID string) ([]domain.Section, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT name, intensity, duration, rounds, work, rest
		FROM workout_sections
		WHERE workout_id = ?
		ORDER BY position ASC
	`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to load sections: %w", err)
	}
	defer rows.Close()

	sections := []domain.Section{}
	for rows.Next() {
		var s domain.Section
		var intensity string
		var duration, rounds, work, rest sql.NullInt64
		if err := rows.Scan(&s.Name, &intensity, &duration, &rounds, &work, &rest); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan section: %w", err)
		}
		s.Intensity = domain.Intensity(intensity)
		s.Duration = fromNull(duration)
		s.Rounds = fromNull(rounds)
		s.Work = fromNull(work)
		s.Rest = fromNull(rest)
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: failed to iterate sections: %w", err)
	}
	return sections, nil
}

// Create inserts a workout with no sections under a fresh uuid.
func (a *Adapter) Create(ctx context.Context, name, workoutType string) (domain.Workout, error) {
	w, err := domain.NewWorkout(uuid.NewString(), name, workoutType)
	if err != nil {
		return domain.Workout{}, fmt.Errorf("sqlite: %w", err)
	}
	w.CreatedAt = a.now().UTC().Truncate(time.Second)

	if _, err := a.db.ExecContext(ctx,
		"INSERT INTO workouts (id, name, type, created_at) VALUES (?, ?, ?, ?)",
		w.ID, w.Name, w.Type, w.CreatedAt,
	); err != nil {
		return domain.Workout{}, fmt.Errorf("sqlite: failed to insert workout: %w", err)
	}
	return *w, nil
}

// UpdateSections replaces all sections of a workout in one transaction.
func (a *Adapter) UpdateSections(ctx context.Context, id string, sections []domain.Section) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	var exists int
	if err := tx.QueryRowContext(ctx, "SELECT 1 FROM workouts WHERE id = ?", id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("sqlite: failed to load workout: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM workout_sections WHERE workout_id = ?", id); err != nil {
		return fmt.Errorf("sqlite: failed to clear sections: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO workout_sections (workout_id, position, name, intensity, duration, rounds, work, rest)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("sqlite: failed to prepare section insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range sections {
		if _, err := stmt.ExecContext(ctx,
			id, i, s.Name, string(s.Intensity),
			toNull(s.Duration), toNull(s.Rounds), toNull(s.Work), toNull(s.Rest),
		); err != nil {
			return fmt.Errorf("sqlite: failed to save section %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: transaction commit failed: %w", err)
	}
	return nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS workouts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS workout_sections (
		workout_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		intensity TEXT NOT NULL DEFAULT '',
		duration INTEGER,
		rounds INTEGER,
		work INTEGER,
		rest INTEGER,
		PRIMARY KEY (workout_id, position),
		FOREIGN KEY(workout_id) REFERENCES workouts(id) ON DELETE CASCADE
	);
	`
	_, err := a.db.Exec(query)
	return err
}

func toNull(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func fromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
