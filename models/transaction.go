package models

import "time"

type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	CategoryID  string          `json:"category_id"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description,omitempty"`
	Type        TransactionType `json:"type"`
	Date        Date            `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

type CreateTransactionRequest struct {
	CategoryID  string          `json:"category_id" binding:"required"`
	Amount      *float64        `json:"amount" binding:"required,gte=0"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type" binding:"required,oneof=income expense"`
	Date        Date            `json:"date" binding:"required"`
}

type UpdateTransactionRequest struct {
	CategoryID  *string          `json:"category_id,omitempty"`
	Amount      *float64         `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	Type        *TransactionType `json:"type,omitempty"`
	Date        *Date            `json:"date,omitempty"`
}

// TransactionFilter narrows a transaction listing. Zero values mean
// "no filter"; Skip/Limit paginate the date-descending result.
type TransactionFilter struct {
	Type       TransactionType
	CategoryID string
	StartDate  Date
	EndDate    Date
	Skip       int
	Limit      int
}
