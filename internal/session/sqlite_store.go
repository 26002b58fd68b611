package session

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/careerline/careerline/internal/logger"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

// SQLiteStore is the durable Store implementation. The two tokens live as
// independently keyed rows; Write and Clear touch both inside a single
// transaction so no reader ever observes half a pair.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the credential database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	// A single writer keeps the pair-atomicity reasoning simple.
	db.SetMaxOpenConns(1)

	const schema = `CREATE TABLE IF NOT EXISTS credentials (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate credential store: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Read() *Credential {
	var cred Credential

	rows, err := s.db.Query(`SELECT key, value FROM credentials WHERE key IN (?, ?)`, keyAccessToken, keyRefreshToken)
	if err != nil {
		logger.Warn("credential read failed, treating as no credential", zap.Error(err))
		return nil
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			logger.Warn("credential scan failed, treating as no credential", zap.Error(err))
			return nil
		}
		switch key {
		case keyAccessToken:
			cred.AccessToken = value
		case keyRefreshToken:
			cred.RefreshToken = value
		}
	}
	if err := rows.Err(); err != nil {
		logger.Warn("credential read failed, treating as no credential", zap.Error(err))
		return nil
	}

	if !cred.Complete() {
		// A lone token means a torn write from an older client; discard it.
		if cred.AccessToken != "" || cred.RefreshToken != "" {
			logger.Warn("incomplete credential pair in store, clearing")
			s.Clear()
		}
		return nil
	}
	return &cred
}

func (s *SQLiteStore) Write(c Credential) {
	err := s.withTx(func(tx *sql.Tx) error {
		const upsert = `INSERT OR REPLACE INTO credentials (key, value) VALUES (?, ?)`
		if _, err := tx.Exec(upsert, keyAccessToken, c.AccessToken); err != nil {
			return err
		}
		_, err := tx.Exec(upsert, keyRefreshToken, c.RefreshToken)
		return err
	})
	if err != nil {
		logger.Error("credential write failed", zap.Error(err))
	}
}

func (s *SQLiteStore) Clear() {
	err := s.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM credentials WHERE key IN (?, ?)`, keyAccessToken, keyRefreshToken)
		return err
	})
	if err != nil {
		logger.Error("credential clear failed", zap.Error(err))
	}
}

func (s *SQLiteStore) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	return tx.Commit()
}
