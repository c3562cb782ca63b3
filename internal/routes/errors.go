package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rm-hull/quran-reader-client/internal"
	"github.com/rm-hull/quran-reader-client/internal/session"
)

func statusFor(err error) int {
	switch {
	case internal.IsAuthExpired(err):
		return http.StatusUnauthorized
	case internal.IsTransportError(err):
		return http.StatusBadGateway
	}
	if status := internal.StatusCode(err); status != 0 {
		return status
	}
	return http.StatusBadRequest
}

func respondError(c *gin.Context, sess *session.Session, err error) {
	err = sess.Guard(err)
	status := statusFor(err)
	if status >= 500 {
		log.Printf("error while calling upstream API: %v", err)
	}
	c.JSON(status, gin.H{"error": session.Describe(err)})
}
