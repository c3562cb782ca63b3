package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/rm-hull/quran-reader-client/internal"
	"github.com/rm-hull/quran-reader-client/internal/models"
)

type UploadService interface {
	Image(ctx context.Context, filename string, content io.Reader) (*models.UploadResponse, error)
	Avatar(ctx context.Context, filename string, content io.Reader) (*models.UploadResponse, error)
	ProfilePicture(ctx context.Context, userId, filename string, content io.Reader) (*models.UploadResponse, error)
}

type uploadService struct {
	client internal.ApiClient
}

func NewUploadService(client internal.ApiClient) UploadService {
	return &uploadService{client: client}
}

func (svc *uploadService) Image(ctx context.Context, filename string, content io.Reader) (*models.UploadResponse, error) {
	return svc.upload(ctx, "/upload/image", filename, content)
}

func (svc *uploadService) Avatar(ctx context.Context, filename string, content io.Reader) (*models.UploadResponse, error) {
	return svc.upload(ctx, "/upload/avatar", filename, content)
}

func (svc *uploadService) ProfilePicture(ctx context.Context, userId, filename string, content io.Reader) (*models.UploadResponse, error) {
	return svc.upload(ctx, pathf("/upload/profile-picture/%s", url.PathEscape(userId)), filename, content)
}

// upload buffers the whole form so the request can be resubmitted after a
// token refresh.
func (svc *uploadService) upload(ctx context.Context, path, filename string, content io.Reader) (*models.UploadResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read upload content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalise form: %w", err)
	}

	req := internal.NewRequest(http.MethodPost, path)
	req.Body = buf.Bytes()
	req.ContentType = writer.FormDataContentType()

	resp, err := fetch[models.UploadResponse](ctx, svc.client, req)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
