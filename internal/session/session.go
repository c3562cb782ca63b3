package session

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/rm-hull/quran-reader-client/internal"
	"github.com/rm-hull/quran-reader-client/internal/models"
	"github.com/rm-hull/quran-reader-client/internal/services"
)

// Session owns the signed-in identity. It is the only place that reacts to an
// expired session: the API client just reports AuthExpiredError.
type Session struct {
	store internal.TokenStore
	auth  services.AuthService

	mu      sync.RWMutex
	user    *models.User
	checked bool
}

func New(store internal.TokenStore, auth services.AuthService) *Session {
	return &Session{
		store: store,
		auth:  auth,
	}
}

func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) IsAdmin() bool {
	return s.User().IsAdmin()
}

func (s *Session) IsAuthenticated() bool {
	return s.User() != nil
}

// Checked reports whether Restore has run.
func (s *Session) Checked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checked
}

func (s *Session) setUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// Restore picks up a session left in the store by a previous run. Without an
// access token there is nothing to restore and no request is made.
func (s *Session) Restore(ctx context.Context) (*models.User, error) {
	defer func() {
		s.mu.Lock()
		s.checked = true
		s.mu.Unlock()
	}()

	token, err := internal.AccessToken(s.store)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}
	return s.fetchProfile(ctx)
}

// fetchProfile loads the identity for the stored tokens. Any failure leaves
// the session signed out with the tokens cleared.
func (s *Session) fetchProfile(ctx context.Context) (*models.User, error) {
	user, err := s.auth.Profile(ctx)
	if err != nil {
		log.Printf("Failed to fetch user profile: %v", err)
		s.clear()
		return nil, err
	}
	s.setUser(user)
	return user, nil
}

func (s *Session) Login(ctx context.Context, email, password string, remember bool) (*models.User, error) {
	pair, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := internal.SaveTokens(s.store, pair); err != nil {
		return nil, err
	}

	if remember {
		err = s.store.Set(map[string]string{internal.KeyRememberedEmail: email})
	} else {
		err = s.store.Remove(internal.KeyRememberedEmail)
	}
	if err != nil {
		log.Printf("failed to update remembered email: %v", err)
	}

	return s.fetchProfile(ctx)
}

func (s *Session) Register(ctx context.Context, req models.RegisterRequest) error {
	return s.auth.Register(ctx, req)
}

func (s *Session) Logout() error {
	s.setUser(nil)
	return internal.ClearTokens(s.store)
}

// RefreshUser reloads the profile of a signed-in user. When nobody is signed
// in it falls back to Restore, picking up tokens another process stored.
func (s *Session) RefreshUser(ctx context.Context) (*models.User, error) {
	if !s.IsAuthenticated() {
		return s.Restore(ctx)
	}
	return s.fetchProfile(ctx)
}

// KeepAlive exchanges the refresh token ahead of access token expiry.
func (s *Session) KeepAlive(ctx context.Context) error {
	token, err := internal.RefreshToken(s.store)
	if err != nil || token == "" {
		return err
	}
	_, err = s.auth.Refresh(ctx)
	return s.Guard(err)
}

// Guard passes err through, signing the session out first when err says the
// session expired.
func (s *Session) Guard(err error) error {
	if err != nil && internal.IsAuthExpired(err) {
		log.Printf("Session expired, signing out: %v", err)
		s.clear()
	}
	return err
}

func (s *Session) clear() {
	s.setUser(nil)
	if err := internal.ClearTokens(s.store); err != nil {
		log.Printf("failed to clear tokens: %v", err)
	}
}

func (s *Session) RememberedEmail() string {
	email, _, err := s.store.Get(internal.KeyRememberedEmail)
	if err != nil {
		log.Printf("failed to read remembered email: %v", err)
	}
	return email
}

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

func (s *Session) Theme() string {
	theme, found, err := s.store.Get(internal.KeyTheme)
	if err != nil || !found {
		return ThemeLight
	}
	return theme
}

func (s *Session) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return s.store.Set(map[string]string{internal.KeyTheme: theme})
}
