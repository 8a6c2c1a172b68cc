package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/userhub-api/internal/dto"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := NewStore(path)

	sess := &Session{
		Token: "some-token",
		User:  dto.UserResponse{ID: uuid.New(), Email: "jane@example.com"},
	}
	require.NoError(t, s.Save(sess))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, sess.Token, loaded.Token)
	assert.Equal(t, sess.User.Email, loaded.User.Email)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStoreLoadMissing(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "session.json"))

	sess, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewStore(path)

	require.NoError(t, s.Save(&Session{Token: "tok"}))
	require.NoError(t, s.Clear())

	sess, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, sess)

	// Clearing again is not an error.
	require.NoError(t, s.Clear())
}

func TestStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}
