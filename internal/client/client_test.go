package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/userhub-api/internal/dto"
	"github.com/dcastano/userhub-api/internal/session"
)

// fakeServer emulates the service's envelope responses. rejectTokens makes
// every protected call answer 401, as the real guard does for an invalid or
// expired token.
type fakeServer struct {
	user         dto.UserResponse
	token        string
	rejectTokens bool
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, status int, body any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, dto.Response{
			Success: true,
			Message: "Login successful",
			Data:    dto.AuthData{User: f.user, Token: f.token},
		})
	})

	mux.HandleFunc("/api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		if f.rejectTokens || r.Header.Get("Authorization") != "Bearer "+f.token {
			writeJSON(w, http.StatusUnauthorized, dto.Response{Success: false, Message: "Invalid or expired token"})
			return
		}
		writeJSON(w, http.StatusOK, dto.Response{Success: true, Data: f.user})
	})

	return mux
}

func newFakeServer(t *testing.T) (*fakeServer, *Client, *session.Store) {
	t.Helper()

	f := &fakeServer{
		user:  dto.UserResponse{ID: uuid.New(), FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"},
		token: "valid-token",
	}
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	sessions := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	return f, New(srv.URL, sessions), sessions
}

func TestLoginStoresSession(t *testing.T) {
	_, c, sessions := newFakeServer(t)

	data, err := c.Login(context.Background(), "jane@example.com", "Secret1")
	require.NoError(t, err)
	assert.Equal(t, "valid-token", data.Token)

	sess, err := sessions.Load()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "valid-token", sess.Token)
	assert.Equal(t, "jane@example.com", sess.User.Email)
}

func TestProtectedCallRequiresLogin(t *testing.T) {
	_, c, _ := newFakeServer(t)

	_, err := c.Profile(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestRejectedTokenClearsSession(t *testing.T) {
	f, c, sessions := newFakeServer(t)
	ctx := context.Background()

	_, err := c.Login(ctx, "jane@example.com", "Secret1")
	require.NoError(t, err)

	// The server starts rejecting the token (e.g. it expired).
	f.rejectTokens = true

	_, err = c.Profile(ctx)
	assert.ErrorIs(t, err, ErrSessionExpired)

	sess, err := sessions.Load()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestInitWithoutSession(t *testing.T) {
	_, c, _ := newFakeServer(t)

	user, err := c.Init(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestInitRevalidatesStoredSession(t *testing.T) {
	f, c, sessions := newFakeServer(t)

	require.NoError(t, sessions.Save(&session.Session{
		Token: "valid-token",
		User:  dto.UserResponse{Email: "stale@example.com"},
	}))

	user, err := c.Init(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	// The snapshot is refreshed with the server's copy, not trusted as-is.
	assert.Equal(t, f.user.Email, user.Email)

	sess, err := sessions.Load()
	require.NoError(t, err)
	assert.Equal(t, f.user.Email, sess.User.Email)
}

func TestInitWithRejectedStoredSession(t *testing.T) {
	f, c, sessions := newFakeServer(t)
	f.rejectTokens = true

	require.NoError(t, sessions.Save(&session.Session{Token: "valid-token"}))

	user, err := c.Init(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)

	sess, err := sessions.Load()
	require.NoError(t, err)
	assert.Nil(t, sess)
}
