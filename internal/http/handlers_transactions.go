package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/auth"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/log"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/storage"
)

type createTransactionRequest struct {
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
	Type     string    `json:"type"`
	Date     time.Time `json:"date"`
}

type updateTransactionRequest struct {
	Category *string    `json:"category"`
	Amount   *float64   `json:"amount"`
	Type     *string    `json:"type"`
	Date     *time.Time `json:"date"`
}

func (s *Server) handleListTransactions(c *gin.Context) {
	uid := auth.UIDFrom(c)

	if body, ok := s.cacheGet(c.Request.Context(), listCacheKey(uid)); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	transactions, err := s.transactions.List(c.Request.Context(), uid)
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), "list transactions failed",
			log.FieldUserID, uid, log.FieldError, err)
		respondDomainError(c, err)
		return
	}

	body := gin.H{
		"success":      true,
		"count":        len(transactions),
		"transactions": transactions,
	}
	s.respondCached(c, listCacheKey(uid), body)
}

func (s *Server) handleCreateTransaction(c *gin.Context) {
	uid := auth.UIDFrom(c)

	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	tx := core.Transaction{
		Category: req.Category,
		Amount:   req.Amount,
		Type:     core.TransactionType(req.Type),
		Date:     req.Date,
	}

	created, err := s.transactions.Create(c.Request.Context(), uid, tx)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	s.invalidateUserCache(c.Request.Context(), uid)
	respondOK(c, http.StatusCreated, gin.H{"transaction": created})
}

func (s *Server) handleUpdateTransaction(c *gin.Context) {
	uid := auth.UIDFrom(c)
	id := c.Param("id")

	var req updateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := storage.TransactionUpdate{
		Category: req.Category,
		Amount:   req.Amount,
		Date:     req.Date,
	}
	if req.Type != nil {
		t := core.TransactionType(*req.Type)
		update.Type = &t
	}

	updated, err := s.transactions.Update(c.Request.Context(), uid, id, update)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	s.invalidateUserCache(c.Request.Context(), uid)
	respondOK(c, http.StatusOK, gin.H{"transaction": updated})
}

func (s *Server) handleDeleteTransaction(c *gin.Context) {
	uid := auth.UIDFrom(c)
	id := c.Param("id")

	if err := s.transactions.Delete(c.Request.Context(), uid, id); err != nil {
		respondDomainError(c, err)
		return
	}

	s.invalidateUserCache(c.Request.Context(), uid)
	respondOK(c, http.StatusOK, gin.H{"message": "Transaction removed"})
}

func (s *Server) handleStats(c *gin.Context) {
	uid := auth.UIDFrom(c)

	if body, ok := s.cacheGet(c.Request.Context(), statsCacheKey(uid)); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	stats, err := s.transactions.Stats(c.Request.Context(), uid)
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), "stats aggregation failed",
			log.FieldUserID, uid, log.FieldError, err)
		respondDomainError(c, err)
		return
	}

	body := gin.H{"success": true, "stats": stats}
	s.respondCached(c, statsCacheKey(uid), body)
}

func listCacheKey(uid string) string  { return "transactions:" + uid }
func statsCacheKey(uid string) string { return "stats:" + uid }

func (s *Server) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(ctx, key)
}

// respondCached writes body as JSON and stores the exact bytes for later hits.
func (s *Server) respondCached(c *gin.Context, key string, body gin.H) {
	payload, err := json.Marshal(body)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Server Error")
		return
	}
	if s.cache != nil {
		s.cache.Set(c.Request.Context(), key, payload)
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func (s *Server) invalidateUserCache(ctx context.Context, uid string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, listCacheKey(uid))
	s.cache.Delete(ctx, statsCacheKey(uid))
}
