package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burg1337/expense-tracker/cache"
	"github.com/burg1337/expense-tracker/middleware"
	"github.com/burg1337/expense-tracker/models"
	"github.com/burg1337/expense-tracker/services"
	"github.com/burg1337/expense-tracker/utils"
)

type stubAnalyticsStore struct{}

func (stubAnalyticsStore) SumAmount(context.Context, string, models.TransactionType, models.Date, models.Date) (float64, error) {
	return 100, nil
}

func (stubAnalyticsStore) SumByCategory(context.Context, string, models.TransactionType, models.Date, models.Date) ([]services.CategoryTotal, error) {
	return []services.CategoryTotal{{CategoryID: "c1", CategoryName: "Groceries", Total: 42}}, nil
}

func (stubAnalyticsStore) SumByMonth(context.Context, string) ([]services.MonthlyTotal, error) {
	return []services.MonthlyTotal{{Year: 2025, Month: 1, Type: models.TypeIncome, Total: 100}}, nil
}

func newAnalyticsRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	token, err := utils.GenerateAccessToken("u1", "u1@example.com")
	require.NoError(t, err)

	h := NewAnalyticsHandler(services.NewAnalyticsService(stubAnalyticsStore{}, cache.Noop{}))

	router := gin.New()
	protected := router.Group("/", middleware.AuthMiddleware())
	protected.GET("/analytics/summary", h.GetSummary)
	protected.GET("/analytics/spending-by-category", h.GetSpendingByCategory)
	protected.GET("/analytics/monthly-trend", h.GetMonthlyTrend)

	return router, token
}

func doGet(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetSummaryOK(t *testing.T) {
	router, token := newAnalyticsRouter(t)

	w := doGet(router, "/analytics/summary?start_date=2025-01-01&end_date=2025-01-31", token)
	require.Equal(t, http.StatusOK, w.Code)

	var summary models.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, "2025-01-01", summary.StartDate.String())
	assert.Equal(t, "2025-01-31", summary.EndDate.String())
	assert.Equal(t, summary.TotalIncome-summary.TotalExpenses, summary.Balance)
}

func TestGetSummaryRejectsMalformedDate(t *testing.T) {
	router, token := newAnalyticsRouter(t)

	w := doGet(router, "/analytics/summary?start_date=01-31-2025", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSpendingByCategoryOK(t *testing.T) {
	router, token := newAnalyticsRouter(t)

	w := doGet(router, "/analytics/spending-by-category?start_date=2025-01-01&end_date=2025-01-31", token)
	require.Equal(t, http.StatusOK, w.Code)

	var breakdown models.CategoryBreakdown
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &breakdown))
	require.Len(t, breakdown.Data, 1)
	assert.Equal(t, "Groceries", breakdown.Data[0].CategoryName)
}

func TestGetMonthlyTrendBounds(t *testing.T) {
	router, token := newAnalyticsRouter(t)

	for _, months := range []string{"0", "25", "-1", "six"} {
		w := doGet(router, "/analytics/monthly-trend?months="+months, token)
		assert.Equal(t, http.StatusBadRequest, w.Code, "months=%s must be rejected", months)
	}

	w := doGet(router, "/analytics/monthly-trend", token)
	assert.Equal(t, http.StatusOK, w.Code, "missing months falls back to the default")
}

func TestAnalyticsRequiresAuth(t *testing.T) {
	router, _ := newAnalyticsRouter(t)

	w := doGet(router, "/analytics/summary", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doGet(router, "/analytics/summary", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
