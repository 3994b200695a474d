package handler

import (
	"errors"
	"net/http"

	"github.com/careerladder/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// respondError maps service error kinds onto HTTP statuses. Anything
// unclassified is a 500 and the client is expected to offer a retry.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
