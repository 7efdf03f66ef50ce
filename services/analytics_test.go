package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burg1337/expense-tracker/cache"
	"github.com/burg1337/expense-tracker/models"
)

// fakeAnalyticsStore serves canned aggregates and counts store round trips
// so tests can tell cache hits from recomputations.
type fakeAnalyticsStore struct {
	sums       map[models.TransactionType]float64
	categories []CategoryTotal
	months     []MonthlyTotal
	err        error
	calls      int
}

func (f *fakeAnalyticsStore) SumAmount(_ context.Context, _ string, txType models.TransactionType, _, _ models.Date) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.sums[txType], nil
}

func (f *fakeAnalyticsStore) SumByCategory(_ context.Context, _ string, _ models.TransactionType, _, _ models.Date) ([]CategoryTotal, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func (f *fakeAnalyticsStore) SumByMonth(_ context.Context, _ string) ([]MonthlyTotal, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.months, nil
}

func newTestAnalytics(store *fakeAnalyticsStore, cacheStore cache.Store) *AnalyticsService {
	svc := NewAnalyticsService(store, cacheStore)
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func window(startDay, endDay int) (models.Date, models.Date) {
	return models.NewDate(2025, time.March, startDay), models.NewDate(2025, time.March, endDay)
}

func TestSummaryScenario(t *testing.T) {
	// One $100 income and one $40 expense inside the window.
	store := &fakeAnalyticsStore{sums: map[models.TransactionType]float64{
		models.TypeIncome:  100,
		models.TypeExpense: 40,
	}}
	svc := newTestAnalytics(store, cache.Noop{})

	start, end := window(1, 31)
	summary, err := svc.Summary(context.Background(), "u1", start, end)
	require.NoError(t, err)

	assert.Equal(t, 100.00, summary.TotalIncome)
	assert.Equal(t, 40.00, summary.TotalExpenses)
	assert.Equal(t, 60.00, summary.Balance)
	assert.Equal(t, 60.00, summary.SavingsRate)
}

func TestSummaryBalanceIdentity(t *testing.T) {
	cases := []struct {
		name            string
		income, expense float64
	}{
		{"typical", 1234.56, 789.01},
		{"overspent", 50, 200},
		{"empty window", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeAnalyticsStore{sums: map[models.TransactionType]float64{
				models.TypeIncome:  tc.income,
				models.TypeExpense: tc.expense,
			}}
			svc := newTestAnalytics(store, cache.Noop{})

			start, end := window(1, 31)
			summary, err := svc.Summary(context.Background(), "u1", start, end)
			require.NoError(t, err)
			assert.Equal(t, summary.TotalIncome-summary.TotalExpenses, summary.Balance)
		})
	}
}

func TestSummarySavingsRateZeroWithoutIncome(t *testing.T) {
	store := &fakeAnalyticsStore{sums: map[models.TransactionType]float64{
		models.TypeExpense: 500,
	}}
	svc := newTestAnalytics(store, cache.Noop{})

	start, end := window(1, 31)
	summary, err := svc.Summary(context.Background(), "u1", start, end)
	require.NoError(t, err)

	assert.Equal(t, 0.0, summary.SavingsRate)
	assert.Equal(t, -500.00, summary.Balance)
}

func TestSummaryDefaultWindowIsCurrentMonth(t *testing.T) {
	store := &fakeAnalyticsStore{sums: map[models.TransactionType]float64{}}
	svc := newTestAnalytics(store, cache.Noop{})

	summary, err := svc.Summary(context.Background(), "u1", models.Date{}, models.Date{})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-01", summary.StartDate.String())
	assert.Equal(t, "2025-03-31", summary.EndDate.String())
}

func TestSummaryDefaultsBothBoundsWhenOneMissing(t *testing.T) {
	store := &fakeAnalyticsStore{sums: map[models.TransactionType]float64{}}
	svc := newTestAnalytics(store, cache.Noop{})

	// Only a start date: the given bound is ignored and the whole window
	// snaps to the current month.
	summary, err := svc.Summary(context.Background(), "u1", models.NewDate(2024, time.June, 5), models.Date{})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-01", summary.StartDate.String())
	assert.Equal(t, "2025-03-31", summary.EndDate.String())
}

func TestSummaryCachedReadIsIdempotent(t *testing.T) {
	store := &fakeAnalyticsStore{sums: map[models.TransactionType]float64{
		models.TypeIncome:  100,
		models.TypeExpense: 40,
	}}
	svc := newTestAnalytics(store, cache.NewMemory())

	start, end := window(1, 31)
	first, err := svc.Summary(context.Background(), "u1", start, end)
	require.NoError(t, err)
	storeCalls := store.calls

	second, err := svc.Summary(context.Background(), "u1", start, end)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, storeCalls, store.calls, "second read must not touch the store")
}

func TestSummaryStoreErrorPropagates(t *testing.T) {
	store := &fakeAnalyticsStore{err: errors.New("connection refused")}
	svc := newTestAnalytics(store, cache.NewMemory())

	start, end := window(1, 31)
	_, err := svc.Summary(context.Background(), "u1", start, end)
	assert.Error(t, err)
}

func TestBreakdownRoundsAndKeepsOnlyMatchingCategories(t *testing.T) {
	store := &fakeAnalyticsStore{categories: []CategoryTotal{
		{CategoryID: "c1", CategoryName: "Groceries", Total: 120.456},
		{CategoryID: "c2", CategoryName: "Rent", Total: 900},
	}}
	svc := newTestAnalytics(store, cache.Noop{})

	start, end := window(1, 31)
	breakdown, err := svc.SpendingByCategory(context.Background(), "u1", start, end)
	require.NoError(t, err)

	require.Len(t, breakdown.Data, 2)
	assert.Equal(t, 120.46, breakdown.Data[0].Total)
	assert.Equal(t, 900.00, breakdown.Data[1].Total)
	for _, entry := range breakdown.Data {
		assert.NotZero(t, entry.Total, "zero-total rows are never emitted")
	}
}

func TestBreakdownEmptyWindowYieldsEmptyData(t *testing.T) {
	store := &fakeAnalyticsStore{}
	svc := newTestAnalytics(store, cache.Noop{})

	start, end := window(1, 31)
	breakdown, err := svc.IncomeByCategory(context.Background(), "u1", start, end)
	require.NoError(t, err)

	assert.NotNil(t, breakdown.Data)
	assert.Empty(t, breakdown.Data)
}

func TestMonthlyTrendFewerMonthsThanRequested(t *testing.T) {
	store := &fakeAnalyticsStore{months: []MonthlyTotal{
		{Year: 2025, Month: 1, Type: models.TypeIncome, Total: 1000},
		{Year: 2025, Month: 1, Type: models.TypeExpense, Total: 400},
		{Year: 2025, Month: 2, Type: models.TypeExpense, Total: 250},
	}}
	svc := newTestAnalytics(store, cache.Noop{})

	trend, err := svc.MonthlyTrend(context.Background(), "u1", 3)
	require.NoError(t, err)

	// Only 2 distinct months exist: no empty month is synthesized.
	require.Len(t, trend.Data, 2)
	assert.Equal(t, "2025-01", trend.Data[0].Month)
	assert.Equal(t, "2025-02", trend.Data[1].Month)

	assert.Equal(t, 1000.00, trend.Data[0].Income)
	assert.Equal(t, 400.00, trend.Data[0].Expense)
	assert.Equal(t, 600.00, trend.Data[0].Balance)

	// February has no income rows: that side stays at zero.
	assert.Equal(t, 0.0, trend.Data[1].Income)
	assert.Equal(t, 250.00, trend.Data[1].Expense)
	assert.Equal(t, -250.00, trend.Data[1].Balance)
}

func TestMonthlyTrendKeepsMostRecentMonths(t *testing.T) {
	var months []MonthlyTotal
	for m := 1; m <= 8; m++ {
		months = append(months, MonthlyTotal{
			Year: 2024, Month: m, Type: models.TypeIncome, Total: float64(m * 100),
		})
	}
	store := &fakeAnalyticsStore{months: months}
	svc := newTestAnalytics(store, cache.Noop{})

	trend, err := svc.MonthlyTrend(context.Background(), "u1", 6)
	require.NoError(t, err)

	// The 2 oldest months fall off; output stays ascending.
	require.Len(t, trend.Data, 6)
	assert.Equal(t, "2024-03", trend.Data[0].Month)
	assert.Equal(t, "2024-08", trend.Data[5].Month)
}

func TestMonthlyTrendSpansYearBoundary(t *testing.T) {
	store := &fakeAnalyticsStore{months: []MonthlyTotal{
		{Year: 2024, Month: 12, Type: models.TypeIncome, Total: 100},
		{Year: 2025, Month: 1, Type: models.TypeIncome, Total: 200},
	}}
	svc := newTestAnalytics(store, cache.Noop{})

	trend, err := svc.MonthlyTrend(context.Background(), "u1", 6)
	require.NoError(t, err)

	require.Len(t, trend.Data, 2)
	assert.Equal(t, "2024-12", trend.Data[0].Month)
	assert.Equal(t, "2025-01", trend.Data[1].Month)
}

func TestInvalidationAfterWriteForcesRecompute(t *testing.T) {
	store := &fakeAnalyticsStore{sums: map[models.TransactionType]float64{
		models.TypeIncome: 100,
	}}
	mem := cache.NewMemory()
	svc := newTestAnalytics(store, mem)

	start, end := window(1, 31)
	first, err := svc.Summary(context.Background(), "u1", start, end)
	require.NoError(t, err)
	assert.Equal(t, 100.00, first.TotalIncome)

	// A write lands and its endpoint invalidates, then the store reflects
	// the new state.
	store.sums[models.TypeIncome] = 150
	invalidateAfterWrite(mem, "transactions", "u1")

	second, err := svc.Summary(context.Background(), "u1", start, end)
	require.NoError(t, err)
	assert.Equal(t, 150.00, second.TotalIncome, "read after write must not see the stale cache entry")
}

func TestInvalidationLeavesOtherUsersCached(t *testing.T) {
	store := &fakeAnalyticsStore{sums: map[models.TransactionType]float64{
		models.TypeIncome: 100,
	}}
	mem := cache.NewMemory()
	svc := newTestAnalytics(store, mem)

	start, end := window(1, 31)
	_, err := svc.Summary(context.Background(), "u1", start, end)
	require.NoError(t, err)
	_, err = svc.Summary(context.Background(), "u2", start, end)
	require.NoError(t, err)
	callsBefore := store.calls

	invalidateAfterWrite(mem, "transactions", "u1")

	_, err = svc.Summary(context.Background(), "u2", start, end)
	require.NoError(t, err)
	assert.Equal(t, callsBefore, store.calls, "u2 stays cached across u1's write")
}
