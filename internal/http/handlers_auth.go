package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/auth"
)

// handleLogin returns the account resolved by the auth middleware. First-time
// callers are provisioned there, so login is a read of the upserted record.
func (s *Server) handleLogin(c *gin.Context) {
	user, ok := auth.UserFrom(c)
	if !ok {
		respondError(c, http.StatusInternalServerError, "Server Error")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"user": user})
}

func (s *Server) handleProfile(c *gin.Context) {
	user, ok := auth.UserFrom(c)
	if !ok {
		respondError(c, http.StatusInternalServerError, "Server Error")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"user": user})
}
