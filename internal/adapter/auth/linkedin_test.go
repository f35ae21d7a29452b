package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(tokenURL, userInfoURL string) *LinkedInProvider {
	return NewLinkedInProvider(LinkedInConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8000/api/auth/callback",
		AuthURL:      "https://www.linkedin.com/oauth/v2/authorization",
		TokenURL:     tokenURL,
		UserInfoURL:  userInfoURL,
	})
}

func TestLinkedInProvider_AuthURL(t *testing.T) {
	p := newTestProvider("http://unused", "http://unused")

	raw := p.AuthURL("nonce-123")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "www.linkedin.com", u.Host)
	assert.Equal(t, "/oauth/v2/authorization", u.Path)
	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "http://localhost:8000/api/auth/callback", q.Get("redirect_uri"))
	assert.Equal(t, "openid profile email w_member_social", q.Get("scope"))
	assert.Equal(t, "nonce-123", q.Get("state"))
	assert.Contains(t, raw, "scope=openid+profile+email+w_member_social")
	assert.Contains(t, raw, "redirect_uri=http%3A%2F%2Flocalhost%3A8000%2Fapi%2Fauth%2Fcallback")
}

func TestLinkedInProvider_ExchangeCode(t *testing.T) {
	t.Run("success sends the authorization_code form", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
			assert.Equal(t, "the-code", r.PostForm.Get("code"))
			assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
			assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
			assert.Equal(t, "http://localhost:8000/api/auth/callback", r.PostForm.Get("redirect_uri"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"AQX","expires_in":5184000,"token_type":"Bearer"}`))
		}))
		defer srv.Close()

		pair, err := newTestProvider(srv.URL, "").ExchangeCode(context.Background(), "the-code")
		require.NoError(t, err)
		assert.Equal(t, "AQX", pair.AccessToken)
		assert.Greater(t, pair.ExpiresIn, 0)
	})

	t.Run("non-2xx fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		}))
		defer srv.Close()

		_, err := newTestProvider(srv.URL, "").ExchangeCode(context.Background(), "bad")
		assert.Error(t, err)
	})

	t.Run("missing access_token fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"expires_in":60}`))
		}))
		defer srv.Close()

		_, err := newTestProvider(srv.URL, "").ExchangeCode(context.Background(), "code")
		assert.Error(t, err)
	})
}

func TestLinkedInProvider_UserID(t *testing.T) {
	t.Run("returns sub", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer AQX", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"sub":"782bbtaQ","name":"Ada"}`))
		}))
		defer srv.Close()

		id, err := newTestProvider("", srv.URL).UserID(context.Background(), "AQX")
		require.NoError(t, err)
		assert.Equal(t, "782bbtaQ", id)
	})

	t.Run("unauthorized", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "expired", http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := newTestProvider("", srv.URL).UserID(context.Background(), "old")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("missing sub", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"name":"Ada"}`))
		}))
		defer srv.Close()

		_, err := newTestProvider("", srv.URL).UserID(context.Background(), "AQX")
		assert.Error(t, err)
	})
}
