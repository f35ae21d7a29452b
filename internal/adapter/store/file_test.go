package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/postpilot/internal/domain"
)

func TestFileTokenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("absent file means no token", func(t *testing.T) {
		s := NewFileTokenStore(filepath.Join(t.TempDir(), "token.json"))
		tok, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, tok)
	})

	t.Run("round trip through a fresh store", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		want := &domain.Token{AccessToken: "AQX-token", UserID: "abc123"}
		require.NoError(t, NewFileTokenStore(path).Save(ctx, want))

		got, err := NewFileTokenStore(path).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("save overwrites the whole record", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		s := NewFileTokenStore(path)
		require.NoError(t, s.Save(ctx, &domain.Token{AccessToken: "old", UserID: "u1"}))
		require.NoError(t, s.Save(ctx, &domain.Token{AccessToken: "new"}))

		got, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, &domain.Token{AccessToken: "new"}, got)
	})

	t.Run("malformed content means no token", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		tok, err := NewFileTokenStore(path).Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, tok)
	})

	t.Run("record without access token means no token", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"user_id":"x"}`), 0o600))

		tok, err := NewFileTokenStore(path).Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, tok)
	})

	t.Run("nil token is rejected", func(t *testing.T) {
		s := NewFileTokenStore(filepath.Join(t.TempDir(), "token.json"))
		assert.Error(t, s.Save(ctx, nil))
	})
}
