package image

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryForTopic(t *testing.T) {
	assert.Equal(t, "artificial intelligence technology", QueryForTopic("AI Models"))
	assert.Equal(t, "data visualization", QueryForTopic("Data Science"))
	assert.Equal(t, "scientific research", QueryForTopic("research"))
	assert.Equal(t, defaultQuery, QueryForTopic("gardening"))
}

func TestUnsplash_FindImage(t *testing.T) {
	t.Run("first result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search/photos", r.URL.Path)
			assert.Equal(t, "Client-ID key", r.Header.Get("Authorization"))
			assert.Equal(t, "scientific research", r.URL.Query().Get("query"))
			assert.Equal(t, "1", r.URL.Query().Get("per_page"))
			assert.Equal(t, "landscape", r.URL.Query().Get("orientation"))
			_, _ = w.Write([]byte(`{"results":[{"urls":{"regular":"https://images.example/1.jpg"}}]}`))
		}))
		defer srv.Close()

		got, err := NewUnsplash(srv.URL, "key").FindImage(context.Background(), "research")
		require.NoError(t, err)
		assert.Equal(t, "https://images.example/1.jpg", got)
	})

	t.Run("no results", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":[]}`))
		}))
		defer srv.Close()

		got, err := NewUnsplash(srv.URL, "key").FindImage(context.Background(), "x")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusForbidden)
		}))
		defer srv.Close()

		_, err := NewUnsplash(srv.URL, "key").FindImage(context.Background(), "x")
		assert.Error(t, err)
	})

	t.Run("disabled without key", func(t *testing.T) {
		got, err := NewUnsplash("http://unused", "").FindImage(context.Background(), "AI")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
