package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burg1337/expense-tracker/cache"
	"github.com/burg1337/expense-tracker/models"
)

const categoryExistsQuery = "SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND user_id = $2)"

func newBudgetServiceWithMock(t *testing.T) (*BudgetService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBudgetService(db, cache.Noop{}), mock
}

func TestCreateBudgetRejectsEqualStartAndEnd(t *testing.T) {
	svc, mock := newBudgetServiceWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(categoryExistsQuery)).
		WithArgs("c1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	amount := 100.0
	day := models.NewDate(2025, time.March, 1)
	_, err := svc.Create(context.Background(), "u1", models.CreateBudgetRequest{
		CategoryID: "c1",
		Amount:     &amount,
		Period:     models.PeriodMonthly,
		StartDate:  day,
		EndDate:    day,
	})

	assert.ErrorIs(t, err, ErrInvalidPeriod)
	// No INSERT was expected; the mock verifies none happened.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBudgetRejectsEndBeforeStart(t *testing.T) {
	svc, mock := newBudgetServiceWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(categoryExistsQuery)).
		WithArgs("c1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	amount := 100.0
	_, err := svc.Create(context.Background(), "u1", models.CreateBudgetRequest{
		CategoryID: "c1",
		Amount:     &amount,
		Period:     models.PeriodMonthly,
		StartDate:  models.NewDate(2025, time.March, 31),
		EndDate:    models.NewDate(2025, time.March, 1),
	})

	assert.ErrorIs(t, err, ErrInvalidPeriod)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBudgetRejectsCollapsedPeriod(t *testing.T) {
	svc, mock := newBudgetServiceWithMock(t)

	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, user_id, category_id, amount, period, start_date, end_date").
		WithArgs("b1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "category_id", "amount", "period",
			"start_date", "end_date", "created_at", "updated_at",
		}).AddRow("b1", "u1", "c1", 100.0, "monthly", start, end, time.Now(), time.Now()))

	// Moving end_date onto start_date must fail before any UPDATE runs.
	newEnd := models.NewDate(2025, time.March, 1)
	_, err := svc.Update(context.Background(), "u1", "b1", models.UpdateBudgetRequest{
		EndDate: &newEnd,
	})

	assert.ErrorIs(t, err, ErrInvalidPeriod)
	assert.NoError(t, mock.ExpectationsWereMet())
}
