package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kofalt/go-memoize"
	"github.com/rm-hull/quran-reader-client/internal"
	"github.com/rm-hull/quran-reader-client/internal/models"
)

const (
	NumSurahs = 114
	NumJuz    = 30

	catalogueExpiration = 24 * time.Hour
	catalogueCleanup    = time.Hour
)

// QuranService reads the Quran catalogue. The text never changes, so every
// read except search is memoized.
type QuranService interface {
	Surahs(ctx context.Context) ([]models.Surah, error)
	Surah(ctx context.Context, number int) (*models.Surah, error)
	Verses(ctx context.Context, surahNumber int) ([]models.Verse, error)
	SearchVerses(ctx context.Context, query string, limit int) (*models.VerseSearchResult, error)
	JuzList(ctx context.Context) ([]models.Juz, error)
	Juz(ctx context.Context, number int) (*models.Juz, error)
	Warm(ctx context.Context) (int, error)
}

type quranService struct {
	client internal.ApiClient
	cache  *memoize.Memoizer
}

func NewQuranService(client internal.ApiClient) QuranService {
	return &quranService{
		client: client,
		cache:  memoize.NewMemoizer(catalogueExpiration, catalogueCleanup),
	}
}

func memoized[T any](cache *memoize.Memoizer, key string, fn func() (T, error)) (T, error) {
	value, err, _ := cache.Memoize(key, func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return value.(T), nil
}

func validSurah(number int) error {
	if number < 1 || number > NumSurahs {
		return fmt.Errorf("surah number must be between 1 and %d, got %d", NumSurahs, number)
	}
	return nil
}

func validJuz(number int) error {
	if number < 1 || number > NumJuz {
		return fmt.Errorf("juz number must be between 1 and %d, got %d", NumJuz, number)
	}
	return nil
}

func (svc *quranService) Surahs(ctx context.Context) ([]models.Surah, error) {
	return memoized(svc.cache, "surahs", func() ([]models.Surah, error) {
		return get[[]models.Surah](ctx, svc.client, "/quran/surahs")
	})
}

func (svc *quranService) Surah(ctx context.Context, number int) (*models.Surah, error) {
	if err := validSurah(number); err != nil {
		return nil, err
	}
	return memoized(svc.cache, "surah:"+strconv.Itoa(number), func() (*models.Surah, error) {
		surah, err := get[models.Surah](ctx, svc.client, pathf("/quran/surahs/%d", number))
		if err != nil {
			return nil, err
		}
		return &surah, nil
	})
}

func (svc *quranService) Verses(ctx context.Context, surahNumber int) ([]models.Verse, error) {
	if err := validSurah(surahNumber); err != nil {
		return nil, err
	}
	return memoized(svc.cache, "verses:"+strconv.Itoa(surahNumber), func() ([]models.Verse, error) {
		resp, err := get[models.SurahVerses](ctx, svc.client, pathf("/quran/surahs/%d/verses", surahNumber))
		if err != nil {
			return nil, err
		}
		if resp.Verses == nil {
			return []models.Verse{}, nil
		}
		return resp.Verses, nil
	})
}

func (svc *quranService) SearchVerses(ctx context.Context, query string, limit int) (*models.VerseSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query must not be empty")
	}

	req := internal.NewRequest(http.MethodGet, "/quran/search/verses")
	req.Query = url.Values{"q": []string{query}}
	if limit > 0 {
		req.Query.Set("limit", strconv.Itoa(limit))
	}

	result, err := fetch[models.VerseSearchResult](ctx, svc.client, req)
	if err != nil {
		return nil, err
	}
	if result.Query == "" {
		result.Query = query
	}
	return &result, nil
}

func (svc *quranService) JuzList(ctx context.Context) ([]models.Juz, error) {
	return memoized(svc.cache, "juz", func() ([]models.Juz, error) {
		return get[[]models.Juz](ctx, svc.client, "/quran/juz")
	})
}

func (svc *quranService) Juz(ctx context.Context, number int) (*models.Juz, error) {
	if err := validJuz(number); err != nil {
		return nil, err
	}
	return memoized(svc.cache, "juz:"+strconv.Itoa(number), func() (*models.Juz, error) {
		juz, err := get[models.Juz](ctx, svc.client, pathf("/quran/juz/%d", number))
		if err != nil {
			return nil, err
		}
		return &juz, nil
	})
}

// Warm loads the surah and juz indexes into the cache and returns how many
// surahs are available.
func (svc *quranService) Warm(ctx context.Context) (int, error) {
	surahs, err := svc.Surahs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load surahs: %w", err)
	}
	if _, err := svc.JuzList(ctx); err != nil {
		return 0, fmt.Errorf("failed to load juz: %w", err)
	}
	return len(surahs), nil
}
