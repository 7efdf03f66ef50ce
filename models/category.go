package models

// TransactionType distinguishes money coming in from money going out.
// Categories carry one too: a category's type says which transactions
// belong under it.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

type Category struct {
	ID     string          `json:"id"`
	UserID string          `json:"user_id"`
	Name   string          `json:"name"`
	Type   TransactionType `json:"type"`
}

type CreateCategoryRequest struct {
	Name string          `json:"name" binding:"required"`
	Type TransactionType `json:"type" binding:"required,oneof=income expense"`
}

type UpdateCategoryRequest struct {
	Name *string          `json:"name,omitempty"`
	Type *TransactionType `json:"type,omitempty"`
}
