package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rm-hull/quran-reader-client/internal/services"
	"github.com/rm-hull/quran-reader-client/internal/session"
)

const DEFAULT_SEARCH_LIMIT = 20

func Surahs(quran services.QuranService, sess *session.Session) func(c *gin.Context) {
	return func(c *gin.Context) {
		surahs, err := quran.Surahs(c.Request.Context())
		if err != nil {
			respondError(c, sess, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"surahs": surahs, "count": len(surahs)})
	}
}

func Surah(quran services.QuranService, sess *session.Session) func(c *gin.Context) {
	return func(c *gin.Context) {
		number, err := strconv.Atoi(c.Param("number"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid surah number"})
			return
		}

		surah, err := quran.Surah(c.Request.Context(), number)
		if err != nil {
			respondError(c, sess, err)
			return
		}
		c.JSON(http.StatusOK, surah)
	}
}

func Verses(quran services.QuranService, sess *session.Session) func(c *gin.Context) {
	return func(c *gin.Context) {
		number, err := strconv.Atoi(c.Param("number"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid surah number"})
			return
		}

		verses, err := quran.Verses(c.Request.Context(), number)
		if err != nil {
			respondError(c, sess, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"verses": verses})
	}
}

func Search(quran services.QuranService, sess *session.Session) func(c *gin.Context) {
	return func(c *gin.Context) {
		limitStr := c.Query("limit")
		limit := DEFAULT_SEARCH_LIMIT
		if limitStr != "" {
			l, lerr := strconv.Atoi(limitStr)
			if lerr != nil || l < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
				return
			}
			limit = l
		}

		results, err := quran.SearchVerses(c.Request.Context(), c.Query("q"), limit)
		if err != nil {
			respondError(c, sess, err)
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

func JuzList(quran services.QuranService, sess *session.Session) func(c *gin.Context) {
	return func(c *gin.Context) {
		juz, err := quran.JuzList(c.Request.Context())
		if err != nil {
			respondError(c, sess, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"juz": juz})
	}
}

func Juz(quran services.QuranService, sess *session.Session) func(c *gin.Context) {
	return func(c *gin.Context) {
		number, err := strconv.Atoi(c.Param("number"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid juz number"})
			return
		}

		juz, err := quran.Juz(c.Request.Context(), number)
		if err != nil {
			respondError(c, sess, err)
			return
		}
		c.JSON(http.StatusOK, juz)
	}
}
