// Package store persists user-taught phrase mappings. When a user corrects
// a misread utterance ("when I say ship it, I mean publish"), the mapping
// is stored here and consulted on every later parse, ahead of generic
// keyword scoring.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"voxpost/internal/interpreter"
)

// LearnedPhrase is one user-taught mapping.
type LearnedPhrase struct {
	ID         int64
	Phrase     string // normalized utterance text
	Command    interpreter.CommandType
	Confidence float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LearnedPhraseStore is a writable SQLite store of learned phrases. It
// implements interpreter.PhraseSource and is safe for concurrent use.
type LearnedPhraseStore struct {
	db     *sql.DB
	dbPath string
	logger *zap.Logger
	mu     sync.RWMutex
}

// NewLearnedPhraseStore creates or opens the store, creating the schema on
// first use.
func NewLearnedPhraseStore(dbPath string, logger *zap.Logger) (*LearnedPhraseStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to verify database connection: %w", err)
	}

	s := &LearnedPhraseStore{db: db, dbPath: dbPath, logger: logger}
	if err := s.initializeSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logger.Debug("learned phrase store ready", zap.String("path", dbPath))
	return s, nil
}

func (s *LearnedPhraseStore) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS learned_phrases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		phrase TEXT NOT NULL UNIQUE,
		command_type TEXT NOT NULL,
		confidence REAL NOT NULL DEFAULT 0.95,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_learned_phrases_command ON learned_phrases(command_type);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create learned_phrases table: %w", err)
	}
	return nil
}

// Teach stores or updates a phrase mapping. The phrase is normalized with
// the interpreter's normalizer so lookups match parse-time input.
func (s *LearnedPhraseStore) Teach(ctx context.Context, phrase string, command interpreter.CommandType, confidence float64) error {
	normalized := interpreter.Normalize(phrase)
	if normalized == "" {
		return fmt.Errorf("phrase is empty after normalization")
	}
	if !command.Valid() || command == interpreter.CommandUnknown {
		return fmt.Errorf("cannot teach command type %q", command)
	}
	if confidence <= 0 || confidence > 1 {
		confidence = 0.95
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO learned_phrases (phrase, command_type, confidence)
		VALUES (?, ?, ?)
		ON CONFLICT(phrase) DO UPDATE SET
			command_type = excluded.command_type,
			confidence = excluded.confidence,
			updated_at = CURRENT_TIMESTAMP`,
		normalized, string(command), confidence)
	if err != nil {
		return fmt.Errorf("failed to store phrase: %w", err)
	}
	s.logger.Debug("phrase taught",
		zap.String("phrase", normalized),
		zap.String("command", string(command)))
	return nil
}

// Lookup implements interpreter.PhraseSource. Errors are swallowed: a
// broken store must never block parsing.
func (s *LearnedPhraseStore) Lookup(ctx context.Context, normalized string) (interpreter.CommandType, float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var command string
	var confidence float64
	err := s.db.QueryRowContext(ctx,
		`SELECT command_type, confidence FROM learned_phrases WHERE phrase = ?`,
		normalized).Scan(&command, &confidence)
	if err == sql.ErrNoRows {
		return interpreter.CommandUnknown, 0, false
	}
	if err != nil {
		s.logger.Debug("phrase lookup failed", zap.Error(err))
		return interpreter.CommandUnknown, 0, false
	}
	return interpreter.CommandType(command), confidence, true
}

// Forget removes a taught phrase. Removing an unknown phrase is not an
// error.
func (s *LearnedPhraseStore) Forget(ctx context.Context, phrase string) error {
	normalized := interpreter.Normalize(phrase)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM learned_phrases WHERE phrase = ?`, normalized); err != nil {
		return fmt.Errorf("failed to delete phrase: %w", err)
	}
	return nil
}

// All returns every taught phrase, newest first.
func (s *LearnedPhraseStore) All(ctx context.Context) ([]LearnedPhrase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, phrase, command_type, confidence, created_at, updated_at
		FROM learned_phrases ORDER BY updated_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query phrases: %w", err)
	}
	defer rows.Close()

	var out []LearnedPhrase
	for rows.Next() {
		var p LearnedPhrase
		var command string
		if err := rows.Scan(&p.ID, &p.Phrase, &command, &p.Confidence, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan phrase row: %w", err)
		}
		p.Command = interpreter.CommandType(command)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (s *LearnedPhraseStore) Close() error {
	return s.db.Close()
}
