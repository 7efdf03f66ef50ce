package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/burg1337/expense-tracker/cache"
	"github.com/burg1337/expense-tracker/models"
)

type BudgetService struct {
	db    *sql.DB
	cache cache.Store
}

func NewBudgetService(db *sql.DB, cacheStore cache.Store) *BudgetService {
	return &BudgetService{db: db, cache: cacheStore}
}

// Create records a new budget. The category must belong to the user and
// the period must satisfy start < end.
func (s *BudgetService) Create(ctx context.Context, userID string, req models.CreateBudgetRequest) (*models.Budget, error) {
	if err := verifyCategoryOwner(ctx, s.db, req.CategoryID, userID); err != nil {
		return nil, err
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidPeriod
	}

	now := time.Now()
	budget := &models.Budget{
		ID:         uuid.New().String(),
		UserID:     userID,
		CategoryID: req.CategoryID,
		Amount:     *req.Amount,
		Period:     req.Period,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	query := `
		INSERT INTO budgets (id, user_id, category_id, amount, period, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		budget.ID, budget.UserID, budget.CategoryID, budget.Amount,
		budget.Period, budget.StartDate, budget.EndDate, budget.CreatedAt, budget.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	invalidateAfterWrite(s.cache, "budgets", userID)
	return budget, nil
}

// List returns all of the user's budgets, cached under the resource prefix.
func (s *BudgetService) List(ctx context.Context, userID string) ([]models.Budget, error) {
	key := resourceKey("budgets", userID, "list")

	return cache.Fetch(s.cache, key, listCacheTTL, func() ([]models.Budget, error) {
		query := `
			SELECT id, user_id, category_id, amount, period, start_date, end_date, created_at, updated_at
			FROM budgets
			WHERE user_id = $1
			ORDER BY start_date DESC
		`
		rows, err := s.db.QueryContext(ctx, query, userID)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		budgets := []models.Budget{}
		for rows.Next() {
			var budget models.Budget
			err := rows.Scan(
				&budget.ID, &budget.UserID, &budget.CategoryID, &budget.Amount,
				&budget.Period, &budget.StartDate, &budget.EndDate,
				&budget.CreatedAt, &budget.UpdatedAt,
			)
			if err != nil {
				return nil, err
			}
			budgets = append(budgets, budget)
		}

		return budgets, rows.Err()
	})
}

func (s *BudgetService) GetByID(ctx context.Context, userID, id string) (*models.Budget, error) {
	query := `
		SELECT id, user_id, category_id, amount, period, start_date, end_date, created_at, updated_at
		FROM budgets
		WHERE id = $1 AND user_id = $2
	`

	var budget models.Budget
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&budget.ID, &budget.UserID, &budget.CategoryID, &budget.Amount,
		&budget.Period, &budget.StartDate, &budget.EndDate,
		&budget.CreatedAt, &budget.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &budget, nil
}

// Update applies the non-nil fields of req to one of the user's budgets.
// The resulting period must still satisfy start < end.
func (s *BudgetService) Update(ctx context.Context, userID, id string, req models.UpdateBudgetRequest) (*models.Budget, error) {
	budget, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if err := verifyCategoryOwner(ctx, s.db, *req.CategoryID, userID); err != nil {
			return nil, err
		}
		budget.CategoryID = *req.CategoryID
	}
	if req.Amount != nil {
		budget.Amount = *req.Amount
	}
	if req.Period != nil {
		budget.Period = *req.Period
	}
	if req.StartDate != nil {
		budget.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		budget.EndDate = *req.EndDate
	}

	if !budget.EndDate.After(budget.StartDate) {
		return nil, ErrInvalidPeriod
	}

	budget.UpdatedAt = time.Now()

	query := `
		UPDATE budgets
		SET category_id = $1, amount = $2, period = $3, start_date = $4, end_date = $5, updated_at = $6
		WHERE id = $7 AND user_id = $8
	`
	_, err = s.db.ExecContext(ctx, query,
		budget.CategoryID, budget.Amount, budget.Period,
		budget.StartDate, budget.EndDate, budget.UpdatedAt, id, userID,
	)
	if err != nil {
		return nil, err
	}

	invalidateAfterWrite(s.cache, "budgets", userID)
	return budget, nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	invalidateAfterWrite(s.cache, "budgets", userID)
	return nil
}

// Status reports how much of the budget has been consumed by expenses in
// its category during its period.
func (s *BudgetService) Status(ctx context.Context, userID, id string) (*models.BudgetStatus, error) {
	budget, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND category_id = $2 AND type = $3 AND date >= $4 AND date <= $5
	`

	var spent float64
	err = s.db.QueryRowContext(ctx, query,
		userID, budget.CategoryID, models.TypeExpense, budget.StartDate, budget.EndDate,
	).Scan(&spent)
	if err != nil {
		return nil, err
	}

	percentageUsed := 0.0
	if budget.Amount > 0 {
		percentageUsed = spent / budget.Amount * 100
	}

	return &models.BudgetStatus{
		BudgetID:       budget.ID,
		BudgetAmount:   budget.Amount,
		Spent:          round2(spent),
		Remaining:      round2(budget.Amount - spent),
		PercentageUsed: round2(percentageUsed),
		Period:         budget.Period,
		StartDate:      budget.StartDate,
		EndDate:        budget.EndDate,
		IsExceeded:     spent > budget.Amount,
	}, nil
}
