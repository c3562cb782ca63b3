package session

import (
	"context"
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/rm-hull/quran-reader-client/internal"
	"github.com/rm-hull/quran-reader-client/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAuth struct {
	loginFunc   func(email, password string) (models.TokenPair, error)
	profileFunc func() (*models.User, error)
	refreshFunc func() (models.TokenPair, error)

	profileCalls int
}

func (m *mockAuth) Login(_ context.Context, email, password string) (models.TokenPair, error) {
	return m.loginFunc(email, password)
}

func (m *mockAuth) Register(context.Context, models.RegisterRequest) error {
	return nil
}

func (m *mockAuth) Profile(context.Context) (*models.User, error) {
	m.profileCalls++
	return m.profileFunc()
}

func (m *mockAuth) Refresh(context.Context) (models.TokenPair, error) {
	return m.refreshFunc()
}

func (m *mockAuth) ForgotPassword(context.Context, string) error { return nil }
func (m *mockAuth) ResetPassword(context.Context, string, string) error { return nil }
func (m *mockAuth) VerifyEmail(context.Context, string) error { return nil }
func (m *mockAuth) ResendVerification(context.Context, string) error { return nil }

var admin = &models.User{Id: "u1", Email: "admin@example.com", Role: models.RoleAdmin}

func TestRestoreWithoutTokenMakesNoRequest(t *testing.T) {
	auth := &mockAuth{}
	s := New(internal.NewMemoryStore(), auth)

	user, err := s.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.True(t, s.Checked())
	assert.Equal(t, 0, auth.profileCalls)
}

func TestRestoreLoadsProfile(t *testing.T) {
	store := internal.NewMemoryStore()
	require.NoError(t, internal.SaveTokens(store, models.TokenPair{AccessToken: "a", RefreshToken: "r"}))

	s := New(store, &mockAuth{profileFunc: func() (*models.User, error) { return admin, nil }})
	user, err := s.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, admin, user)
	assert.True(t, s.IsAdmin())
	assert.True(t, s.IsAuthenticated())
}

func TestRestoreClearsTokensOnProfileFailure(t *testing.T) {
	store := internal.NewMemoryStore()
	require.NoError(t, internal.SaveTokens(store, models.TokenPair{AccessToken: "a", RefreshToken: "r"}))

	s := New(store, &mockAuth{profileFunc: func() (*models.User, error) {
		return nil, &internal.AuthExpiredError{Cause: errors.New("refresh rejected")}
	}})
	user, err := s.Restore(context.Background())
	require.Error(t, err)
	assert.Nil(t, user)
	assert.False(t, s.IsAuthenticated())

	_, found, err := internal.LoadTokens(store)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoginStoresTokensAndRemembersEmail(t *testing.T) {
	store := internal.NewMemoryStore()
	auth := &mockAuth{
		loginFunc: func(email, password string) (models.TokenPair, error) {
			return models.TokenPair{AccessToken: "a1", RefreshToken: "r1"}, nil
		},
		profileFunc: func() (*models.User, error) { return admin, nil },
	}
	s := New(store, auth)

	user, err := s.Login(context.Background(), "admin@example.com", "secret", true)
	require.NoError(t, err)
	assert.Equal(t, admin, user)
	assert.Equal(t, "admin@example.com", s.RememberedEmail())

	pair, found, err := internal.LoadTokens(store)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "a1", pair.AccessToken)

	_, err = s.Login(context.Background(), "admin@example.com", "secret", false)
	require.NoError(t, err)
	assert.Empty(t, s.RememberedEmail())
}

func TestLoginFailureLeavesStoreUntouched(t *testing.T) {
	store := internal.NewMemoryStore()
	s := New(store, &mockAuth{
		loginFunc: func(email, password string) (models.TokenPair, error) {
			return models.TokenPair{}, &internal.HTTPError{StatusCode: http.StatusUnauthorized}
		},
	})

	_, err := s.Login(context.Background(), "a@b.c", "wrong", true)
	require.Error(t, err)
	assert.Equal(t, MsgInvalidLogin, Describe(err))
	assert.Empty(t, s.RememberedEmail())
	assert.False(t, s.IsAuthenticated())
}

func TestLogout(t *testing.T) {
	store := internal.NewMemoryStore()
	require.NoError(t, internal.SaveTokens(store, models.TokenPair{AccessToken: "a", RefreshToken: "r"}))
	s := New(store, &mockAuth{profileFunc: func() (*models.User, error) { return admin, nil }})
	_, err := s.Restore(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Logout())
	assert.Nil(t, s.User())
	_, found, err := internal.LoadTokens(store)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGuard(t *testing.T) {
	store := internal.NewMemoryStore()
	require.NoError(t, internal.SaveTokens(store, models.TokenPair{AccessToken: "a", RefreshToken: "r"}))
	s := New(store, &mockAuth{profileFunc: func() (*models.User, error) { return admin, nil }})
	_, err := s.Restore(context.Background())
	require.NoError(t, err)

	notFound := &internal.HTTPError{StatusCode: http.StatusNotFound}
	assert.Equal(t, notFound, s.Guard(notFound))
	assert.True(t, s.IsAuthenticated())

	expired := &internal.AuthExpiredError{}
	assert.Equal(t, expired, s.Guard(expired))
	assert.False(t, s.IsAuthenticated())
	_, found, err := internal.LoadTokens(store)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKeepAlive(t *testing.T) {
	calls := 0
	store := internal.NewMemoryStore()
	s := New(store, &mockAuth{refreshFunc: func() (models.TokenPair, error) {
		calls++
		return models.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil
	}})

	require.NoError(t, s.KeepAlive(context.Background()))
	assert.Equal(t, 0, calls, "no refresh without a stored refresh token")

	require.NoError(t, internal.SaveTokens(store, models.TokenPair{AccessToken: "a", RefreshToken: "r"}))
	require.NoError(t, s.KeepAlive(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestRefreshUserPicksUpStoredSession(t *testing.T) {
	store := internal.NewMemoryStore()
	auth := &mockAuth{profileFunc: func() (*models.User, error) { return admin, nil }}
	s := New(store, auth)

	user, err := s.RefreshUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Equal(t, 0, auth.profileCalls)

	require.NoError(t, internal.SaveTokens(store, models.TokenPair{AccessToken: "a", RefreshToken: "r"}))
	user, err = s.RefreshUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, admin, user)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, 1, auth.profileCalls)
}

func TestTheme(t *testing.T) {
	s := New(internal.NewMemoryStore(), &mockAuth{})
	assert.Equal(t, ThemeLight, s.Theme())
	require.NoError(t, s.SetTheme(ThemeDark))
	assert.Equal(t, ThemeDark, s.Theme())
	assert.Error(t, s.SetTheme("sepia"))
	assert.Equal(t, ThemeDark, s.Theme())
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"transport", &internal.TransportError{Err: errors.New("connection refused")}, MsgServerUnavailable},
		{"expired", &internal.AuthExpiredError{}, MsgUnauthorized},
		{"expired wrapping 401", &internal.AuthExpiredError{Cause: &internal.HTTPError{StatusCode: 401}}, MsgUnauthorized},
		{"401 with message", &internal.HTTPError{StatusCode: 401, Body: []byte(`{"message":"Email not verified"}`)}, "Email not verified"},
		{"401 without message", &internal.HTTPError{StatusCode: 401}, MsgInvalidLogin},
		{"502", &internal.HTTPError{StatusCode: 502, Body: []byte(`{"message":"ignored"}`)}, MsgServerDown},
		{"503", &internal.HTTPError{StatusCode: 503}, MsgServerDown},
		{"403 without message", &internal.HTTPError{StatusCode: 403}, MsgForbidden},
		{"500", &internal.HTTPError{StatusCode: 500}, MsgServerError},
		{"409 with message", &internal.HTTPError{StatusCode: 409, Body: []byte(`{"message":"Already bookmarked"}`)}, "Already bookmarked"},
		{"400 with message list", &internal.HTTPError{StatusCode: 400, Body: []byte(`{"message":["email must be an email","password too short"]}`)}, "email must be an email; password too short"},
		{"400 without message", &internal.HTTPError{StatusCode: 400, Body: []byte(`not json`)}, MsgValidation},
		{"wrapped", errors.Wrap(&internal.HTTPError{StatusCode: 503}, "loading surahs"), MsgServerDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Describe(tt.err))
		})
	}
}
