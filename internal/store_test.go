package internal

import (
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rm-hull/quran-reader-client/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *SQLiteStore {
	tmpFile, err := os.CreateTemp("", "quran_reader_test-*.db")
	require.NoError(t, err)
	dbPath := tmpFile.Name()
	_ = tmpFile.Close()

	t.Cleanup(func() {
		_ = os.Remove(dbPath)
	})

	db, err := Connect(dbPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})

	err = Migrate(dbPath)
	require.NoError(t, err)
	return NewSQLiteStore(db)
}

func setupRedis(t *testing.T) *RedisStore {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return NewRedisStore(client, "quran:test:")
}

func TestTokenStores(t *testing.T) {
	stores := map[string]func(t *testing.T) TokenStore{
		"memory": func(t *testing.T) TokenStore { return NewMemoryStore() },
		"sqlite": func(t *testing.T) TokenStore { return setupTestDB(t) },
		"redis":  func(t *testing.T) TokenStore { return setupRedis(t) },
	}

	for name, factory := range stores {
		t.Run(name, func(t *testing.T) {
			t.Run("Round trip", func(t *testing.T) {
				store := factory(t)
				pair := models.TokenPair{AccessToken: "access", RefreshToken: "refresh"}
				require.NoError(t, SaveTokens(store, pair))

				loaded, found, err := LoadTokens(store)
				require.NoError(t, err)
				assert.True(t, found)
				assert.Equal(t, pair, loaded)
			})

			t.Run("Overwrite", func(t *testing.T) {
				store := factory(t)
				require.NoError(t, SaveTokens(store, models.TokenPair{AccessToken: "a1", RefreshToken: "r1"}))
				require.NoError(t, SaveTokens(store, models.TokenPair{AccessToken: "a2", RefreshToken: "r2"}))

				loaded, found, err := LoadTokens(store)
				require.NoError(t, err)
				assert.True(t, found)
				assert.Equal(t, "a2", loaded.AccessToken)
				assert.Equal(t, "r2", loaded.RefreshToken)
			})

			t.Run("Clear removes both keys", func(t *testing.T) {
				store := factory(t)
				require.NoError(t, SaveTokens(store, models.TokenPair{AccessToken: "access", RefreshToken: "refresh"}))
				require.NoError(t, store.Set(map[string]string{KeyTheme: "dark"}))
				require.NoError(t, ClearTokens(store))

				_, found, err := store.Get(KeyAccessToken)
				require.NoError(t, err)
				assert.False(t, found)

				_, found, err = store.Get(KeyRefreshToken)
				require.NoError(t, err)
				assert.False(t, found)

				_, found, err = LoadTokens(store)
				require.NoError(t, err)
				assert.False(t, found)

				theme, found, err := store.Get(KeyTheme)
				require.NoError(t, err)
				assert.True(t, found)
				assert.Equal(t, "dark", theme)
			})

			t.Run("Half a pair is not a pair", func(t *testing.T) {
				store := factory(t)
				require.NoError(t, store.Set(map[string]string{KeyAccessToken: "access"}))

				_, found, err := LoadTokens(store)
				require.NoError(t, err)
				assert.False(t, found)
			})

			t.Run("Missing key", func(t *testing.T) {
				store := factory(t)
				value, found, err := store.Get(KeyRememberedEmail)
				require.NoError(t, err)
				assert.False(t, found)
				assert.Empty(t, value)
			})
		})
	}
}

func TestSaveTokensRejectsIncompletePair(t *testing.T) {
	store := NewMemoryStore()
	err := SaveTokens(store, models.TokenPair{AccessToken: "access"})
	require.Error(t, err)

	_, found, err := store.Get(KeyAccessToken)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSQLiteStoreCheck(t *testing.T) {
	store := setupTestDB(t)
	check := store.Check()
	assert.True(t, check.Pass())
}
