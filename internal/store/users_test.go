package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsEmptyMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	store := NewUserStore(path, zerolog.Nop())

	users, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestLoadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o644))

	_, err := NewUserStore(path, zerolog.Nop()).Load()
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	store := NewUserStore(path, zerolog.Nop())

	users := map[string]UserAccount{
		"bob": {
			Password:  "$2a$12$fakehash",
			CreatedAt: "2024-03-01 10:30",
			History: []HistoryEntry{
				{
					Date:       "2024-03-02 11:00",
					TotalScore: "1/2",
					Categories: []CategoryScore{
						{Category: "A", Score: "1/1"},
						{Category: "B", Score: "0/1"},
					},
				},
			},
		},
	}
	require.NoError(t, store.Save(users))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, users, loaded)

	// The file matches the legacy wire format.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	raw := map[string]map[string]interface{}{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "2024-03-01 10:30", raw["bob"]["created_at"])
}

func TestUpdateAppliesMutation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	store := NewUserStore(path, zerolog.Nop())

	err := store.Update(func(users map[string]UserAccount) error {
		users["alice"] = UserAccount{Password: "h", CreatedAt: "2024-01-01 00:00", History: []HistoryEntry{}}
		return nil
	})
	require.NoError(t, err)

	account, err := store.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, "h", account.Password)
	assert.Empty(t, account.History)
}

func TestUpdateErrorSkipsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	store := NewUserStore(path, zerolog.Nop())
	require.NoError(t, store.Save(map[string]UserAccount{}))

	sentinel := assert.AnError
	err := store.Update(func(users map[string]UserAccount) error {
		users["ghost"] = UserAccount{}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	users, err := store.Load()
	require.NoError(t, err)
	assert.NotContains(t, users, "ghost")
}

func TestGetUnknownUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	store := NewUserStore(path, zerolog.Nop())

	_, err := store.Get("nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
