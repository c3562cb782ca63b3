package services

import (
	"context"
	"net/http"

	"github.com/rm-hull/quran-reader-client/internal"
	"github.com/rm-hull/quran-reader-client/internal/models"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (models.TokenPair, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	Profile(ctx context.Context) (*models.User, error)
	Refresh(ctx context.Context) (models.TokenPair, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
}

type authService struct {
	client internal.ApiClient
}

func NewAuthService(client internal.ApiClient) AuthService {
	return &authService{client: client}
}

// Login exchanges credentials for a token pair. It is sent without any stored
// credentials, so a 401 here means bad credentials rather than an expired session.
func (svc *authService) Login(ctx context.Context, email, password string) (models.TokenPair, error) {
	pair, err := sendJSON[models.TokenPair](ctx, svc.client, http.MethodPost, "/auth/login",
		models.LoginRequest{Email: email, Password: password}, true)
	if err != nil {
		return models.TokenPair{}, err
	}
	if !pair.Valid() {
		return models.TokenPair{}, errIncompletePair
	}
	return pair, nil
}

func (svc *authService) Register(ctx context.Context, req models.RegisterRequest) error {
	return execJSON(ctx, svc.client, http.MethodPost, "/auth/register", req, true)
}

func (svc *authService) Profile(ctx context.Context) (*models.User, error) {
	user, err := get[models.User](ctx, svc.client, "/auth/me")
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Refresh goes through the client's shared refresh so an explicit refresh
// never races one triggered by a failing request.
func (svc *authService) Refresh(ctx context.Context) (models.TokenPair, error) {
	return svc.client.RefreshSession(ctx)
}

func (svc *authService) ForgotPassword(ctx context.Context, email string) error {
	return execJSON(ctx, svc.client, http.MethodPost, "/auth/forgot-password", models.EmailRequest{Email: email}, true)
}

func (svc *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return execJSON(ctx, svc.client, http.MethodPost, "/auth/reset-password",
		models.ResetPasswordRequest{Token: token, NewPassword: newPassword}, true)
}

func (svc *authService) VerifyEmail(ctx context.Context, token string) error {
	return execJSON(ctx, svc.client, http.MethodPost, "/auth/verify-email", models.TokenRequest{Token: token}, true)
}

func (svc *authService) ResendVerification(ctx context.Context, email string) error {
	return execJSON(ctx, svc.client, http.MethodPost, "/auth/send-verification", models.EmailRequest{Email: email}, true)
}
