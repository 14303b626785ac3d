package http

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/auth"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/log"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/reports"
)

const (
	excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType   = "application/pdf"
)

func (s *Server) handleExcelReport(c *gin.Context) {
	user, ok := auth.UserFrom(c)
	if !ok {
		respondError(c, http.StatusInternalServerError, "Server Error")
		return
	}

	transactions, err := s.transactions.List(c.Request.Context(), user.FirebaseUID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteExcel(&buf, transactions, user.Preferences.Currency); err != nil {
		s.logger.ErrorContext(c.Request.Context(), "excel export failed",
			log.FieldUserID, user.FirebaseUID, log.FieldError, err)
		respondError(c, http.StatusInternalServerError, "Failed to generate report")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transactions.xlsx"`)
	c.Data(http.StatusOK, excelContentType, buf.Bytes())
}

func (s *Server) handlePDFReport(c *gin.Context) {
	user, ok := auth.UserFrom(c)
	if !ok {
		respondError(c, http.StatusInternalServerError, "Server Error")
		return
	}

	transactions, err := s.transactions.List(c.Request.Context(), user.FirebaseUID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := reports.WritePDF(&buf, transactions, user.Preferences.Currency, time.Now()); err != nil {
		s.logger.ErrorContext(c.Request.Context(), "pdf export failed",
			log.FieldUserID, user.FirebaseUID, log.FieldError, err)
		respondError(c, http.StatusInternalServerError, "Failed to generate report")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transactions.pdf"`)
	c.Data(http.StatusOK, pdfContentType, buf.Bytes())
}
