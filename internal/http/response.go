package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
)

// respondOK writes a success envelope with the payload merged in at the top
// level, e.g. {"success": true, "transactions": [...]}.
func respondOK(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// respondError writes {"success": false, "error": message}.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// respondDomainError maps a domain error to its HTTP status and message.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "Not authorized")
	case errors.Is(err, core.ErrNotFound):
		respondError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, core.ErrDuplicateKey):
		respondError(c, http.StatusBadRequest, "Duplicate field value entered")
	case errors.Is(err, core.ErrInsufficientData):
		respondError(c, http.StatusBadRequest, err.Error())
	case core.IsValidation(err):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrMisconfigured),
		errors.Is(err, core.ErrServiceUnavailable):
		respondError(c, http.StatusInternalServerError, "Failed to generate AI insights")
	default:
		respondError(c, http.StatusInternalServerError, "Server Error")
	}
}
