package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adgenlab/adgen/internal/api"
)

func testUser() api.User {
	return api.User{
		ID:           1,
		Username:     "owner",
		Email:        "a@b.com",
		BusinessType: "restaurant",
		IsVerified:   true,
		IsActive:     true,
	}
}

func TestNewStore(t *testing.T) {
	t.Run("creates directory with private permissions", func(t *testing.T) {
		tmpDir := t.TempDir()
		sessionDir := filepath.Join(tmpDir, "session")

		store, err := NewStore(sessionDir)
		require.NoError(t, err)
		assert.NotNil(t, store)

		info, err := os.Stat(sessionDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	})
}

func TestStore_EstablishRestore(t *testing.T) {
	t.Run("round-trips the identical profile", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		user := testUser()
		require.NoError(t, store.Establish("T1", "R1", user))

		// Simulate a process restart with a fresh store.
		reloaded, err := NewStore(tmpDir)
		require.NoError(t, err)

		sess := reloaded.Restore()
		require.NotNil(t, sess)
		assert.Equal(t, "T1", sess.AccessToken)
		assert.Equal(t, "R1", sess.RefreshToken)
		assert.Equal(t, user, sess.User)
		assert.True(t, reloaded.IsAuthenticated())
		assert.Equal(t, "T1", reloaded.AccessToken())
	})

	t.Run("replaces a prior session", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Establish("T1", "R1", testUser()))

		other := testUser()
		other.ID = 2
		other.Email = "c@d.com"
		require.NoError(t, store.Establish("T2", "", other))

		sess := store.Current()
		require.NotNil(t, sess)
		assert.Equal(t, "T2", sess.AccessToken)
		assert.Empty(t, sess.RefreshToken)
		assert.Equal(t, "c@d.com", sess.User.Email)
	})

	t.Run("missing refresh token is not an error", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		require.NoError(t, store.Establish("T1", "", testUser()))

		sess := store.Restore()
		require.NotNil(t, sess)
		assert.Empty(t, sess.RefreshToken)
	})

	t.Run("rejects an empty access token", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		require.Error(t, store.Establish("", "R1", testUser()))
		assert.False(t, store.IsAuthenticated())
	})
}

func TestStore_Restore(t *testing.T) {
	t.Run("nothing persisted means logged out", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		assert.Nil(t, store.Restore())
		assert.False(t, store.IsAuthenticated())
		assert.Empty(t, store.AccessToken())
	})

	t.Run("malformed profile degrades to logged out and purges", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "access_token"), []byte("T1"), 0600))
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "profile.json"), []byte("{not json"), 0600))

		assert.Nil(t, store.Restore())
		assert.False(t, store.IsAuthenticated())

		// Partial state is gone.
		_, err = os.Stat(filepath.Join(tmpDir, "access_token"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("token without profile is purged", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "access_token"), []byte("T1"), 0600))

		assert.Nil(t, store.Restore())

		_, err = os.Stat(filepath.Join(tmpDir, "access_token"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("profile without token is purged", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "profile.json"), []byte(`{"id":1}`), 0600))

		assert.Nil(t, store.Restore())
		assert.False(t, store.IsAuthenticated())
	})
}

func TestStore_Clear(t *testing.T) {
	t.Run("removes all persisted state", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		require.NoError(t, store.Establish("T1", "R1", testUser()))
		require.NoError(t, store.Clear())

		assert.False(t, store.IsAuthenticated())
		assert.Empty(t, store.AccessToken())
		assert.Nil(t, store.Restore())

		for _, name := range []string{"access_token", "refresh_token", "profile.json"} {
			_, err := os.Stat(filepath.Join(tmpDir, name))
			assert.True(t, os.IsNotExist(err), name)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Establish("T1", "R1", testUser()))
		require.NoError(t, store.Clear())
		require.NoError(t, store.Clear())
		assert.False(t, store.IsAuthenticated())
	})
}

func TestStore_CurrentIsSnapshot(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Establish("T1", "R1", testUser()))

	sess := store.Current()
	require.NotNil(t, sess)
	sess.User.Email = "mutated@example.com"

	assert.Equal(t, "a@b.com", store.Current().User.Email)
}
