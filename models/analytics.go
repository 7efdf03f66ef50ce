package models

// ============================================================================
// ANALYTICS VIEWS
// ============================================================================
// Read-only aggregates computed from a user's transactions. All monetary
// values are rounded to 2 decimals before they leave the service layer.

type Summary struct {
	StartDate     Date    `json:"start_date"`
	EndDate       Date    `json:"end_date"`
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	Balance       float64 `json:"balance"`
	SavingsRate   float64 `json:"savings_rate"`
}

type CategoryBreakdown struct {
	StartDate Date                     `json:"start_date"`
	EndDate   Date                     `json:"end_date"`
	Data      []CategoryBreakdownEntry `json:"data"`
}

type CategoryBreakdownEntry struct {
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Total        float64 `json:"total"`
}

type MonthlyTrend struct {
	Data []MonthlyTrendEntry `json:"data"`
}

type MonthlyTrendEntry struct {
	Month   string  `json:"month"` // "YYYY-MM"
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}
