package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/burg1337/expense-tracker/middleware"
	"github.com/burg1337/expense-tracker/models"
	"github.com/burg1337/expense-tracker/services"
)

type AnalyticsHandler struct {
	Service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{Service: service}
}

// GetSummary returns total income, expenses, balance and savings rate for
// the requested window (current month when no dates given).
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	summary, err := h.Service.Summary(c.Request.Context(), userID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *AnalyticsHandler) GetSpendingByCategory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	breakdown, err := h.Service.SpendingByCategory(c.Request.Context(), userID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute breakdown"})
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

func (h *AnalyticsHandler) GetIncomeByCategory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	breakdown, err := h.Service.IncomeByCategory(c.Request.Context(), userID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute breakdown"})
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

// GetMonthlyTrend returns per-month income/expense totals for the last
// `months` months (1-24, default 6).
func (h *AnalyticsHandler) GetMonthlyTrend(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	months := 6
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 24 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "months must be an integer between 1 and 24"})
			return
		}
		months = parsed
	}

	trend, err := h.Service.MonthlyTrend(c.Request.Context(), userID, months)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trend"})
		return
	}

	c.JSON(http.StatusOK, trend)
}

// parseDateRange reads optional start_date/end_date query params. On a
// malformed date it writes a 400 response and reports !ok.
func parseDateRange(c *gin.Context) (start, end models.Date, ok bool) {
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return start, end, false
		}
		start = parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return start, end, false
		}
		end = parsed
	}
	return start, end, true
}
