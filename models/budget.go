package models

import "time"

type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

func (p BudgetPeriod) Valid() bool {
	return p == PeriodWeekly || p == PeriodMonthly || p == PeriodYearly
}

type Budget struct {
	ID         string       `json:"id"`
	UserID     string       `json:"user_id"`
	CategoryID string       `json:"category_id"`
	Amount     float64      `json:"amount"`
	Period     BudgetPeriod `json:"period"`
	StartDate  Date         `json:"start_date"`
	EndDate    Date         `json:"end_date"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

type CreateBudgetRequest struct {
	CategoryID string       `json:"category_id" binding:"required"`
	Amount     *float64     `json:"amount" binding:"required,gte=0"`
	Period     BudgetPeriod `json:"period" binding:"required,oneof=weekly monthly yearly"`
	StartDate  Date         `json:"start_date" binding:"required"`
	EndDate    Date         `json:"end_date" binding:"required"`
}

type UpdateBudgetRequest struct {
	CategoryID *string       `json:"category_id,omitempty"`
	Amount     *float64      `json:"amount,omitempty"`
	Period     *BudgetPeriod `json:"period,omitempty"`
	StartDate  *Date         `json:"start_date,omitempty"`
	EndDate    *Date         `json:"end_date,omitempty"`
}

// BudgetStatus reports how much of a budget's amount has been spent
// within its period.
type BudgetStatus struct {
	BudgetID       string       `json:"budget_id"`
	BudgetAmount   float64      `json:"budget_amount"`
	Spent          float64      `json:"spent"`
	Remaining      float64      `json:"remaining"`
	PercentageUsed float64      `json:"percentage_used"`
	Period         BudgetPeriod `json:"period"`
	StartDate      Date         `json:"start_date"`
	EndDate        Date         `json:"end_date"`
	IsExceeded     bool         `json:"is_exceeded"`
}
