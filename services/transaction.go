package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/burg1337/expense-tracker/cache"
	"github.com/burg1337/expense-tracker/models"
)

const listCacheTTL = time.Minute

type TransactionService struct {
	db    *sql.DB
	cache cache.Store
}

func NewTransactionService(db *sql.DB, cacheStore cache.Store) *TransactionService {
	return &TransactionService{db: db, cache: cacheStore}
}

// Create records a new transaction. The referenced category must belong to
// the user (sql.ErrNoRows otherwise).
func (s *TransactionService) Create(ctx context.Context, userID string, req models.CreateTransactionRequest) (*models.Transaction, error) {
	if err := verifyCategoryOwner(ctx, s.db, req.CategoryID, userID); err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Amount:      *req.Amount,
		Description: req.Description,
		Type:        req.Type,
		Date:        req.Date,
		CreatedAt:   time.Now(),
	}

	query := `
		INSERT INTO transactions (id, user_id, category_id, amount, description, type, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		txn.ID, txn.UserID, txn.CategoryID, txn.Amount,
		txn.Description, txn.Type, txn.Date, txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	invalidateAfterWrite(s.cache, "transactions", userID)
	return txn, nil
}

// List returns the user's transactions newest-date first, narrowed by the
// filter and paginated. Results are cached under the resource prefix.
func (s *TransactionService) List(ctx context.Context, userID string, filter models.TransactionFilter) ([]models.Transaction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}

	key := resourceKey("transactions", userID, "list",
		string(filter.Type), filter.CategoryID,
		filter.StartDate.String(), filter.EndDate.String(),
		fmt.Sprintf("%d", skip), fmt.Sprintf("%d", limit),
	)

	return cache.Fetch(s.cache, key, listCacheTTL, func() ([]models.Transaction, error) {
		query := `
			SELECT id, user_id, category_id, amount, COALESCE(description, ''), type, date, created_at
			FROM transactions
			WHERE user_id = $1
		`
		args := []interface{}{userID}

		if filter.Type != "" {
			args = append(args, filter.Type)
			query += fmt.Sprintf(" AND type = $%d", len(args))
		}
		if filter.CategoryID != "" {
			args = append(args, filter.CategoryID)
			query += fmt.Sprintf(" AND category_id = $%d", len(args))
		}
		if !filter.StartDate.IsZero() {
			args = append(args, filter.StartDate)
			query += fmt.Sprintf(" AND date >= $%d", len(args))
		}
		if !filter.EndDate.IsZero() {
			args = append(args, filter.EndDate)
			query += fmt.Sprintf(" AND date <= $%d", len(args))
		}

		args = append(args, limit, skip)
		query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		transactions := []models.Transaction{}
		for rows.Next() {
			var txn models.Transaction
			err := rows.Scan(
				&txn.ID, &txn.UserID, &txn.CategoryID, &txn.Amount,
				&txn.Description, &txn.Type, &txn.Date, &txn.CreatedAt,
			)
			if err != nil {
				return nil, err
			}
			transactions = append(transactions, txn)
		}

		return transactions, rows.Err()
	})
}

// GetByID returns one of the user's transactions.
func (s *TransactionService) GetByID(ctx context.Context, userID, id string) (*models.Transaction, error) {
	query := `
		SELECT id, user_id, category_id, amount, COALESCE(description, ''), type, date, created_at
		FROM transactions
		WHERE id = $1 AND user_id = $2
	`

	var txn models.Transaction
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&txn.ID, &txn.UserID, &txn.CategoryID, &txn.Amount,
		&txn.Description, &txn.Type, &txn.Date, &txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &txn, nil
}

// Update applies the non-nil fields of req to one of the user's
// transactions and returns the updated record.
func (s *TransactionService) Update(ctx context.Context, userID, id string, req models.UpdateTransactionRequest) (*models.Transaction, error) {
	txn, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if err := verifyCategoryOwner(ctx, s.db, *req.CategoryID, userID); err != nil {
			return nil, err
		}
		txn.CategoryID = *req.CategoryID
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Type != nil {
		txn.Type = *req.Type
	}
	if req.Date != nil {
		txn.Date = *req.Date
	}

	query := `
		UPDATE transactions
		SET category_id = $1, amount = $2, description = $3, type = $4, date = $5
		WHERE id = $6 AND user_id = $7
	`
	_, err = s.db.ExecContext(ctx, query,
		txn.CategoryID, txn.Amount, txn.Description, txn.Type, txn.Date, id, userID,
	)
	if err != nil {
		return nil, err
	}

	invalidateAfterWrite(s.cache, "transactions", userID)
	return txn, nil
}

// Delete removes one of the user's transactions.
func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
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

	invalidateAfterWrite(s.cache, "transactions", userID)
	return nil
}

// verifyCategoryOwner returns sql.ErrNoRows unless the category exists and
// belongs to the user.
func verifyCategoryOwner(ctx context.Context, db *sql.DB, categoryID, userID string) error {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND user_id = $2)`,
		categoryID, userID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return sql.ErrNoRows
	}
	return nil
}
