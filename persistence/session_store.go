// Package persistence stores completed pipeline runs so they can be listed
// and replayed later.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Session is one recorded pipeline run.
type Session struct {
	ID        string    `json:"id"`
	Problem   string    `json:"problem"`
	Language  string    `json:"language"`
	FinalCode string    `json:"final_code"`
	CreatedAt time.Time `json:"created_at"`
}

// Stage is one recorded pipeline stage, ordered by Seq.
type Stage struct {
	Seq    int    `json:"seq"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Output string `json:"output"`
}

// ErrSessionNotFound is returned when a session id does not exist.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists sessions in a SQLite database.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore opens/creates the database at dbPath.
func NewSessionStore(dbPath string) (*SessionStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, err
	}
	store := &SessionStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SessionStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		problem TEXT NOT NULL,
		language TEXT NOT NULL,
		final_code TEXT,
		created_at TIMESTAMP NOT NULL
	);
	CREATE TABLE IF NOT EXISTS stages (
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		output TEXT,
		PRIMARY KEY(session_id, seq),
		FOREIGN KEY(session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save records a session and its stages in one transaction.
func (s *SessionStore) Save(ctx context.Context, session Session, stages []Stage) error {
	if session.ID == "" {
		return errors.New("session id required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (id, problem, language, final_code, created_at) VALUES (?, ?, ?, ?, ?)`,
		session.ID, session.Problem, session.Language, session.FinalCode, session.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	for _, stage := range stages {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO stages (session_id, seq, name, role, output) VALUES (?, ?, ?, ?, ?)`,
			session.ID, stage.Seq, stage.Name, stage.Role, stage.Output,
		); err != nil {
			return fmt.Errorf("insert stage %d: %w", stage.Seq, err)
		}
	}
	return tx.Commit()
}

// List returns stored sessions, newest first.
func (s *SessionStore) List(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, problem, language, final_code, created_at FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var session Session
		if err := rows.Scan(&session.ID, &session.Problem, &session.Language, &session.FinalCode, &session.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// Load returns a session and its ordered stages.
func (s *SessionStore) Load(ctx context.Context, id string) (Session, []Stage, error) {
	var session Session
	err := s.db.QueryRowContext(ctx,
		`SELECT id, problem, language, final_code, created_at FROM sessions WHERE id = ?`, id,
	).Scan(&session.ID, &session.Problem, &session.Language, &session.FinalCode, &session.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, nil, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, name, role, output FROM stages WHERE session_id = ? ORDER BY seq`, id)
	if err != nil {
		return Session{}, nil, err
	}
	defer rows.Close()

	var stages []Stage
	for rows.Next() {
		var stage Stage
		if err := rows.Scan(&stage.Seq, &stage.Name, &stage.Role, &stage.Output); err != nil {
			return Session{}, nil, err
		}
		stages = append(stages, stage)
	}
	return session, stages, rows.Err()
}

// Delete removes a session and its stages.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Close releases the database handle.
func (s *SessionStore) Close() error {
	return s.db.Close()
}
