package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rm-hull/quran-reader-client/internal/models"
	"github.com/rm-hull/quran-reader-client/internal/services"
	"github.com/rm-hull/quran-reader-client/internal/session"
)

func Bookmarks(bookmarks services.BookmarkService, sess *session.Session) func(c *gin.Context) {
	return func(c *gin.Context) {
		list, err := bookmarks.List(c.Request.Context())
		if err != nil {
			respondError(c, sess, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": list})
	}
}

func CreateBookmark(bookmarks services.BookmarkService, sess *session.Session) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req models.CreateBookmarkRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.VerseId <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "verseId is required"})
			return
		}

		bookmark, err := bookmarks.Create(c.Request.Context(), req.VerseId, req.Note)
		if err != nil {
			respondError(c, sess, err)
			return
		}
		c.JSON(http.StatusCreated, bookmark)
	}
}

func DeleteBookmark(bookmarks services.BookmarkService, sess *session.Session) func(c *gin.Context) {
	return func(c *gin.Context) {
		if err := bookmarks.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, sess, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func ReadingProgress(bookmarks services.BookmarkService, sess *session.Session) func(c *gin.Context) {
	return func(c *gin.Context) {
		progress, err := bookmarks.Progress(c.Request.Context())
		if err != nil {
			respondError(c, sess, err)
			return
		}
		c.JSON(http.StatusOK, progress)
	}
}
