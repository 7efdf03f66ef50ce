package services

import (
	"context"
	"database/sql"

	"github.com/burg1337/expense-tracker/models"
)

// PostgresAnalyticsStore answers the aggregator's queries with raw SQL over
// the transactions table.
type PostgresAnalyticsStore struct {
	db *sql.DB
}

func NewPostgresAnalyticsStore(db *sql.DB) *PostgresAnalyticsStore {
	return &PostgresAnalyticsStore{db: db}
}

func (s *PostgresAnalyticsStore) SumAmount(ctx context.Context, userID string, txType models.TransactionType, start, end models.Date) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND type = $2 AND date >= $3 AND date <= $4
	`

	var total float64
	err := s.db.QueryRowContext(ctx, query, userID, txType, start, end).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *PostgresAnalyticsStore) SumByCategory(ctx context.Context, userID string, txType models.TransactionType, start, end models.Date) ([]CategoryTotal, error) {
	query := `
		SELECT c.id, c.name, SUM(t.amount) AS total
		FROM transactions t
		INNER JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND t.type = $2 AND t.date >= $3 AND t.date <= $4
		GROUP BY c.id, c.name
		ORDER BY total DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, txType, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var t CategoryTotal
		if err := rows.Scan(&t.CategoryID, &t.CategoryName, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

func (s *PostgresAnalyticsStore) SumByMonth(ctx context.Context, userID string) ([]MonthlyTotal, error) {
	query := `
		SELECT EXTRACT(YEAR FROM date)::int AS year,
		       EXTRACT(MONTH FROM date)::int AS month,
		       type,
		       SUM(amount) AS total
		FROM transactions
		WHERE user_id = $1
		GROUP BY year, month, type
		ORDER BY year, month
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []MonthlyTotal
	for rows.Next() {
		var t MonthlyTotal
		if err := rows.Scan(&t.Year, &t.Month, &t.Type, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}
