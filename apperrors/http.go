package apperrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPStatus maps an error kind to a response code. Not-found and invalid-state
// failures of mutations stay 500; read handlers answer 404 themselves.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthenticated, KindUnauthorized:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage hides store causes from clients.
func PublicMessage(err error) string {
	if KindOf(err) == KindStore {
		return "internal server error"
	}
	return err.Error()
}

// Respond records err on the gin context for the request logger and writes the
// JSON error body.
func Respond(c *gin.Context, err error) {
	RespondWithStatus(c, HTTPStatus(err), err)
}

func RespondWithStatus(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": PublicMessage(err)})
}
