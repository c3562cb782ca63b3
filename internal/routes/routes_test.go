package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/rm-hull/quran-reader-client/internal"
	"github.com/rm-hull/quran-reader-client/internal/models"
	"github.com/rm-hull/quran-reader-client/internal/services"
	"github.com/rm-hull/quran-reader-client/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func upstream() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /quran/surahs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Surah{{Id: 1, SurahNumber: 1, NameEnglish: "Al-Fatihah"}, {Id: 2, SurahNumber: 2, NameEnglish: "Al-Baqarah"}})
	})
	mux.HandleFunc("GET /quran/surahs/{n}/verses", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.SurahVerses{Verses: []models.Verse{{Id: 1, VerseNumber: 1}}})
	})
	mux.HandleFunc("GET /quran/juz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"message": "maintenance"})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, models.User{Id: "u1", Role: models.RoleUser})
	})
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "refresh token revoked"})
	})
	mux.HandleFunc("GET /bookmarks", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": []models.Bookmark{{Id: "b1", VerseId: 1}}})
	})
	mux.HandleFunc("POST /bookmarks", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]any{"message": "Verse already bookmarked"})
	})
	return mux
}

func setupRouter(t *testing.T, tokens *models.TokenPair) (*gin.Engine, *session.Session, internal.TokenStore) {
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(upstream())
	t.Cleanup(server.Close)

	store := internal.NewMemoryStore()
	if tokens != nil {
		require.NoError(t, internal.SaveTokens(store, *tokens))
	}
	client := internal.NewApiClient(server.URL, store, nil, "")
	sess := session.New(store, services.NewAuthService(client))
	_, _ = sess.Restore(context.Background())

	quran := services.NewQuranService(client)
	bookmarks := services.NewBookmarkService(client)

	r := gin.New()
	v1 := r.Group("/v1")
	v1.GET("/quran/surahs", Surahs(quran, sess))
	v1.GET("/quran/surahs/:number/verses", Verses(quran, sess))
	v1.GET("/quran/search", Search(quran, sess))
	v1.GET("/quran/juz", JuzList(quran, sess))
	v1.GET("/bookmarks", Bookmarks(bookmarks, sess))
	v1.POST("/bookmarks", CreateBookmark(bookmarks, sess))
	v1.GET("/me", Me(sess))
	v1.GET("/session", Status(sess, client))
	return r, sess, store
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQuranRoutes(t *testing.T) {
	r, _, _ := setupRouter(t, nil)

	t.Run("Surahs", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/v1/quran/surahs", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Surahs []models.Surah `json:"surahs"`
			Count  int            `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
	})

	t.Run("Verses", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/v1/quran/surahs/1/verses", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid surah number", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/v1/quran/surahs/abc/verses", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = serve(r, http.MethodGet, "/v1/quran/surahs/200/verses", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid limit", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/v1/quran/search?q=mercy&limit=-1", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Upstream down", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/v1/quran/juz", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), session.MsgServerDown)
	})
}

func TestBookmarkRoutes(t *testing.T) {
	r, sess, _ := setupRouter(t, &models.TokenPair{AccessToken: "access", RefreshToken: "refresh"})
	require.True(t, sess.IsAuthenticated())

	w := serve(r, http.MethodGet, "/v1/bookmarks", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodPost, "/v1/bookmarks", `{"verseId": 1}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Verse already bookmarked")

	w = serve(r, http.MethodPost, "/v1/bookmarks", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodGet, "/v1/session", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}

func TestExpiredSessionSignsOut(t *testing.T) {
	r, sess, store := setupRouter(t, &models.TokenPair{AccessToken: "access", RefreshToken: "refresh"})
	require.True(t, sess.IsAuthenticated())

	require.NoError(t, internal.SaveTokens(store, models.TokenPair{AccessToken: "expired", RefreshToken: "revoked"}))

	w := serve(r, http.MethodGet, "/v1/bookmarks", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), session.MsgUnauthorized)
	assert.False(t, sess.IsAuthenticated())

	_, found, err := internal.LoadTokens(store)
	require.NoError(t, err)
	assert.False(t, found)

	w = serve(r, http.MethodGet, "/v1/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMePicksUpSessionStoredElsewhere(t *testing.T) {
	r, sess, store := setupRouter(t, nil)
	require.False(t, sess.IsAuthenticated())

	w := serve(r, http.MethodGet, "/v1/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	require.NoError(t, internal.SaveTokens(store, models.TokenPair{AccessToken: "access", RefreshToken: "refresh"}))

	w = serve(r, http.MethodGet, "/v1/me", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)
	assert.True(t, sess.IsAuthenticated())
}
