package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rm-hull/quran-reader-client/internal"
)

func fetch[T any](ctx context.Context, client internal.ApiClient, req *internal.Request) (T, error) {
	var result T
	resp, err := client.Send(ctx, req)
	if err != nil {
		return result, err
	}
	if err := resp.Decode(&result); err != nil {
		return result, err
	}
	return result, nil
}

func get[T any](ctx context.Context, client internal.ApiClient, path string) (T, error) {
	return fetch[T](ctx, client, internal.NewRequest(http.MethodGet, path))
}

func sendJSON[T any](ctx context.Context, client internal.ApiClient, method, path string, payload any, anonymous bool) (T, error) {
	req, err := internal.NewJSONRequest(method, path, payload)
	if err != nil {
		var zero T
		return zero, err
	}
	req.Anonymous = anonymous
	return fetch[T](ctx, client, req)
}

// exec sends a request whose response body is not needed.
func exec(ctx context.Context, client internal.ApiClient, req *internal.Request) error {
	_, err := client.Send(ctx, req)
	return err
}

func execJSON(ctx context.Context, client internal.ApiClient, method, path string, payload any, anonymous bool) error {
	req, err := internal.NewJSONRequest(method, path, payload)
	if err != nil {
		return err
	}
	req.Anonymous = anonymous
	return exec(ctx, client, req)
}

func pathf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
