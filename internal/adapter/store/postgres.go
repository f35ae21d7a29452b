package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arturoeanton/postpilot/internal/domain"
)

const tokenSchema = `
CREATE TABLE IF NOT EXISTS oauth_tokens (
	client_id    TEXT PRIMARY KEY,
	access_token TEXT NOT NULL,
	user_id      TEXT NOT NULL DEFAULT '',
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresTokenStore keeps the token as a single row keyed by OAuth client id.
// The "postgres" driver (github.com/lib/pq) must be registered by the caller.
type PostgresTokenStore struct {
	db       *sql.DB
	clientID string
}

// NewPostgresTokenStore opens a connection, pings it and ensures the schema.
func NewPostgresTokenStore(ctx context.Context, databaseURL, clientID string) (*PostgresTokenStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &PostgresTokenStore{db: db, clientID: clientID}
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the token table if it does not exist.
func (s *PostgresTokenStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, tokenSchema); err != nil {
		return fmt.Errorf("create oauth_tokens: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *PostgresTokenStore) Close() error {
	return s.db.Close()
}

// Load returns the token row for the client, or nil, nil when absent.
func (s *PostgresTokenStore) Load(ctx context.Context) (*domain.Token, error) {
	query := `SELECT access_token, user_id FROM oauth_tokens WHERE client_id = $1`

	var tok domain.Token
	err := s.db.QueryRowContext(ctx, query, s.clientID).Scan(&tok.AccessToken, &tok.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	if !tok.Valid() {
		return nil, nil
	}
	return &tok, nil
}

// Save upserts the token row for the client.
func (s *PostgresTokenStore) Save(ctx context.Context, tok *domain.Token) error {
	if tok == nil {
		return fmt.Errorf("save token: nil token")
	}
	query := `
		INSERT INTO oauth_tokens (client_id, access_token, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (client_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			user_id = EXCLUDED.user_id,
			updated_at = NOW()`

	if _, err := s.db.ExecContext(ctx, query, s.clientID, tok.AccessToken, tok.UserID); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}
