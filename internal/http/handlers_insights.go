package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/auth"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/log"
)

func (s *Server) handleInsights(c *gin.Context) {
	user, ok := auth.UserFrom(c)
	if !ok {
		respondError(c, http.StatusInternalServerError, "Server Error")
		return
	}

	insights, err := s.insights.Insights(c.Request.Context(), user.FirebaseUID, user.Preferences.Currency)
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), "insight generation failed",
			log.FieldUserID, user.FirebaseUID, log.FieldError, err)
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"insights": insights})
}
