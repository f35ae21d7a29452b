package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/arturoeanton/postpilot/internal/domain"
)

// FileTokenStore keeps the token as one JSON document on disk.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore returns a store backed by the file at path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Path returns the backing file path.
func (s *FileTokenStore) Path() string {
	return s.path
}

// Load reads the whole file. A missing or malformed file yields nil, nil.
func (s *FileTokenStore) Load(_ context.Context) (*domain.Token, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}

	var tok domain.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		slog.Warn("ignoring malformed token file", "path", s.path, "error", err)
		return nil, nil
	}
	if !tok.Valid() {
		return nil, nil
	}
	return &tok, nil
}

// Save overwrites the file with the token. The write goes through a temp file
// and rename so a crash never leaves a half-written record.
func (s *FileTokenStore) Save(_ context.Context, tok *domain.Token) error {
	if tok == nil {
		return fmt.Errorf("save token: nil token")
	}
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write token file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close token file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}
	slog.Info("saved access token", "path", s.path)
	return nil
}
