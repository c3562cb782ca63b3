package internal

import (
	"fmt"
	"sync"

	"github.com/rm-hull/quran-reader-client/internal/models"
)

// Keys used in the persistent store. Values are flat strings.
const (
	KeyAccessToken     = "accessToken"
	KeyRefreshToken    = "refreshToken"
	KeyRememberedEmail = "rememberedEmail"
	KeyTheme           = "theme"
)

// TokenStore is the persistent key/value capability the client and session
// read credentials from. Set and Remove must apply all keys atomically, so a
// token pair is either fully written or fully removed.
type TokenStore interface {
	Get(key string) (value string, found bool, err error)
	Set(values map[string]string) error
	Remove(keys ...string) error
}

func AccessToken(store TokenStore) (string, error) {
	token, _, err := store.Get(KeyAccessToken)
	if err != nil {
		return "", fmt.Errorf("failed to read access token: %w", err)
	}
	return token, nil
}

func RefreshToken(store TokenStore) (string, error) {
	token, _, err := store.Get(KeyRefreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to read refresh token: %w", err)
	}
	return token, nil
}

// LoadTokens returns the stored pair. A pair with either half missing is
// reported as not found.
func LoadTokens(store TokenStore) (models.TokenPair, bool, error) {
	access, err := AccessToken(store)
	if err != nil {
		return models.TokenPair{}, false, err
	}
	refresh, err := RefreshToken(store)
	if err != nil {
		return models.TokenPair{}, false, err
	}

	pair := models.TokenPair{AccessToken: access, RefreshToken: refresh}
	if !pair.Valid() {
		return models.TokenPair{}, false, nil
	}
	return pair, true, nil
}

func SaveTokens(store TokenStore, pair models.TokenPair) error {
	if !pair.Valid() {
		return fmt.Errorf("refusing to store incomplete token pair")
	}
	if err := store.Set(map[string]string{
		KeyAccessToken:  pair.AccessToken,
		KeyRefreshToken: pair.RefreshToken,
	}); err != nil {
		return fmt.Errorf("failed to store tokens: %w", err)
	}
	return nil
}

func ClearTokens(store TokenStore) error {
	if err := store.Remove(KeyAccessToken, KeyRefreshToken); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	return nil
}

type memoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() TokenStore {
	return &memoryStore{
		values: make(map[string]string),
	}
}

func (s *memoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, found := s.values[key]
	return value, found, nil
}

func (s *memoryStore) Set(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, value := range values {
		s.values[key] = value
	}
	return nil
}

func (s *memoryStore) Remove(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}
