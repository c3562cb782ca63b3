package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rm-hull/quran-reader-client/internal"
	"github.com/rm-hull/quran-reader-client/internal/models"
)

type BookmarkService interface {
	List(ctx context.Context) ([]models.Bookmark, error)
	Create(ctx context.Context, verseId int, note string) (*models.Bookmark, error)
	UpdateNote(ctx context.Context, id, note string) (*models.Bookmark, error)
	Delete(ctx context.Context, id string) error
	VerseIds(ctx context.Context) ([]int, error)
	Progress(ctx context.Context) (*models.ReadingProgress, error)
	UpdateProgress(ctx context.Context, surahNumber, verseId int) (*models.ReadingProgress, error)
}

type bookmarkService struct {
	client internal.ApiClient
}

func NewBookmarkService(client internal.ApiClient) BookmarkService {
	return &bookmarkService{client: client}
}

func (svc *bookmarkService) List(ctx context.Context) ([]models.Bookmark, error) {
	page, err := get[models.Paginated[models.Bookmark]](ctx, svc.client, "/bookmarks")
	if err != nil {
		return nil, err
	}
	if page.Data == nil {
		return []models.Bookmark{}, nil
	}
	return page.Data, nil
}

// Create bookmarks a verse. The server answers 409 when the verse is already
// bookmarked.
func (svc *bookmarkService) Create(ctx context.Context, verseId int, note string) (*models.Bookmark, error) {
	bookmark, err := sendJSON[models.Bookmark](ctx, svc.client, http.MethodPost, "/bookmarks",
		models.CreateBookmarkRequest{VerseId: verseId, Note: note}, false)
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (svc *bookmarkService) UpdateNote(ctx context.Context, id, note string) (*models.Bookmark, error) {
	bookmark, err := sendJSON[models.Bookmark](ctx, svc.client, http.MethodPatch, pathf("/bookmarks/%s", url.PathEscape(id)),
		models.UpdateBookmarkRequest{Note: note}, false)
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (svc *bookmarkService) Delete(ctx context.Context, id string) error {
	return exec(ctx, svc.client, internal.NewRequest(http.MethodDelete, pathf("/bookmarks/%s", url.PathEscape(id))))
}

func (svc *bookmarkService) VerseIds(ctx context.Context) ([]int, error) {
	resp, err := get[models.BookmarkedVerses](ctx, svc.client, "/bookmarks/verse-ids")
	if err != nil {
		return nil, err
	}
	if resp.VerseIds == nil {
		return []int{}, nil
	}
	return resp.VerseIds, nil
}

func (svc *bookmarkService) Progress(ctx context.Context) (*models.ReadingProgress, error) {
	progress, err := get[models.ReadingProgress](ctx, svc.client, "/bookmarks/progress")
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (svc *bookmarkService) UpdateProgress(ctx context.Context, surahNumber, verseId int) (*models.ReadingProgress, error) {
	progress, err := sendJSON[models.ReadingProgress](ctx, svc.client, http.MethodPatch, "/bookmarks/progress",
		models.UpdateProgressRequest{SurahNumber: surahNumber, VerseId: verseId}, false)
	if err != nil {
		return nil, err
	}
	return &progress, nil
}
