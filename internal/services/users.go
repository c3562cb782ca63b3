package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rm-hull/quran-reader-client/internal"
	"github.com/rm-hull/quran-reader-client/internal/models"
)

// UserService covers self-service profile calls and the admin user endpoints.
// Admin access is enforced by the server; a non-admin gets a 403.
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, update models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id string) error

	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, update models.UserUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error
	DeleteAccount(ctx context.Context) error
}

type userService struct {
	client internal.ApiClient
}

func NewUserService(client internal.ApiClient) UserService {
	return &userService{client: client}
}

func (svc *userService) List(ctx context.Context) ([]models.User, error) {
	page, err := get[models.Paginated[models.User]](ctx, svc.client, "/users")
	if err != nil {
		return nil, err
	}
	if page.Data == nil {
		return []models.User{}, nil
	}
	return page.Data, nil
}

func (svc *userService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := get[models.User](ctx, svc.client, pathf("/users/%s", url.PathEscape(id)))
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (svc *userService) Update(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	user, err := sendJSON[models.User](ctx, svc.client, http.MethodPatch, pathf("/users/%s", url.PathEscape(id)), update, false)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (svc *userService) Delete(ctx context.Context, id string) error {
	return exec(ctx, svc.client, internal.NewRequest(http.MethodDelete, pathf("/users/%s", url.PathEscape(id))))
}

func (svc *userService) Profile(ctx context.Context) (*models.User, error) {
	user, err := get[models.User](ctx, svc.client, "/users/profile")
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (svc *userService) UpdateProfile(ctx context.Context, update models.UserUpdate) (*models.User, error) {
	user, err := sendJSON[models.User](ctx, svc.client, http.MethodPatch, "/users/profile", update, false)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (svc *userService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	return execJSON(ctx, svc.client, http.MethodPatch, "/users/change-password", req, false)
}

func (svc *userService) DeleteAccount(ctx context.Context) error {
	return exec(ctx, svc.client, internal.NewRequest(http.MethodDelete, "/users/account"))
}
