package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rm-hull/quran-reader-client/internal"
	"github.com/rm-hull/quran-reader-client/internal/models"
	"github.com/rm-hull/quran-reader-client/internal/session"
)

type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *models.User `json:"user,omitempty"`
	IsAdmin       bool         `json:"is_admin"`
	LastRefreshed *time.Time   `json:"last_refreshed,omitempty"`
}

func Me(sess *session.Session) func(c *gin.Context) {
	return func(c *gin.Context) {
		user, err := sess.RefreshUser(c.Request.Context())
		if err != nil {
			respondError(c, sess, err)
			return
		}
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": session.MsgUnauthorized})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func Status(sess *session.Session, client internal.ApiClient) func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, SessionResponse{
			Authenticated: sess.IsAuthenticated(),
			User:          sess.User(),
			IsAdmin:       sess.IsAdmin(),
			LastRefreshed: client.LastRefreshed(),
		})
	}
}
