package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/burg1337/expense-tracker/cache"
	"github.com/burg1337/expense-tracker/models"
)

const (
	summaryCacheTTL = 5 * time.Minute
	trendCacheTTL   = 10 * time.Minute
)

// CategoryTotal is one group-by-category row from the store.
type CategoryTotal struct {
	CategoryID   string
	CategoryName string
	Total        float64
}

// MonthlyTotal is one group-by-(year, month, type) row from the store.
type MonthlyTotal struct {
	Year  int
	Month int
	Type  models.TransactionType
	Total float64
}

// AnalyticsStore is the aggregate query surface the aggregator needs from
// the transaction store.
type AnalyticsStore interface {
	// SumAmount sums transaction amounts of the given type inside
	// [start, end], 0 when nothing matches.
	SumAmount(ctx context.Context, userID string, txType models.TransactionType, start, end models.Date) (float64, error)

	// SumByCategory groups matching transactions by category. Categories
	// without matching transactions yield no row.
	SumByCategory(ctx context.Context, userID string, txType models.TransactionType, start, end models.Date) ([]CategoryTotal, error)

	// SumByMonth groups ALL of the user's transactions by year, month
	// and type, with no date filter.
	SumByMonth(ctx context.Context, userID string) ([]MonthlyTotal, error)
}

// AnalyticsService computes cache-accelerated aggregate views over a single
// user's transactions.
type AnalyticsService struct {
	store AnalyticsStore
	cache cache.Store
	now   func() time.Time
}

func NewAnalyticsService(store AnalyticsStore, cacheStore cache.Store) *AnalyticsService {
	return &AnalyticsService{
		store: store,
		cache: cacheStore,
		now:   time.Now,
	}
}

// Summary returns total income, total expenses, balance and savings rate
// for [start, end]. When either bound is missing, both default to the
// current calendar month.
func (s *AnalyticsService) Summary(ctx context.Context, userID string, start, end models.Date) (models.Summary, error) {
	start, end = s.resolveWindow(start, end)

	key := analyticsKey(userID, "summary", start.String(), end.String())
	return cache.Fetch(s.cache, key, summaryCacheTTL, func() (models.Summary, error) {
		totalIncome, err := s.store.SumAmount(ctx, userID, models.TypeIncome, start, end)
		if err != nil {
			return models.Summary{}, err
		}

		totalExpenses, err := s.store.SumAmount(ctx, userID, models.TypeExpense, start, end)
		if err != nil {
			return models.Summary{}, err
		}

		balance := totalIncome - totalExpenses

		// Avoid division by zero on income-free windows.
		savingsRate := 0.0
		if totalIncome > 0 {
			savingsRate = balance / totalIncome * 100
		}

		return models.Summary{
			StartDate:     start,
			EndDate:       end,
			TotalIncome:   round2(totalIncome),
			TotalExpenses: round2(totalExpenses),
			Balance:       round2(balance),
			SavingsRate:   round2(savingsRate),
		}, nil
	})
}

// SpendingByCategory breaks expenses in [start, end] down by category.
func (s *AnalyticsService) SpendingByCategory(ctx context.Context, userID string, start, end models.Date) (models.CategoryBreakdown, error) {
	return s.breakdown(ctx, userID, models.TypeExpense, "spending_by_category", start, end)
}

// IncomeByCategory breaks income in [start, end] down by category.
func (s *AnalyticsService) IncomeByCategory(ctx context.Context, userID string, start, end models.Date) (models.CategoryBreakdown, error) {
	return s.breakdown(ctx, userID, models.TypeIncome, "income_by_category", start, end)
}

func (s *AnalyticsService) breakdown(ctx context.Context, userID string, txType models.TransactionType, view string, start, end models.Date) (models.CategoryBreakdown, error) {
	start, end = s.resolveWindow(start, end)

	key := analyticsKey(userID, view, start.String(), end.String())
	return cache.Fetch(s.cache, key, summaryCacheTTL, func() (models.CategoryBreakdown, error) {
		totals, err := s.store.SumByCategory(ctx, userID, txType, start, end)
		if err != nil {
			return models.CategoryBreakdown{}, err
		}

		data := make([]models.CategoryBreakdownEntry, 0, len(totals))
		for _, t := range totals {
			data = append(data, models.CategoryBreakdownEntry{
				CategoryID:   t.CategoryID,
				CategoryName: t.CategoryName,
				Total:        round2(t.Total),
			})
		}

		return models.CategoryBreakdown{StartDate: start, EndDate: end, Data: data}, nil
	})
}

// MonthlyTrend returns per-month income, expense and balance for the most
// recent `months` months that have at least one transaction, oldest first.
// Months without any transactions are never synthesized.
func (s *AnalyticsService) MonthlyTrend(ctx context.Context, userID string, months int) (models.MonthlyTrend, error) {
	key := analyticsKey(userID, "monthly_trend", fmt.Sprintf("%d", months))
	return cache.Fetch(s.cache, key, trendCacheTTL, func() (models.MonthlyTrend, error) {
		rows, err := s.store.SumByMonth(ctx, userID)
		if err != nil {
			return models.MonthlyTrend{}, err
		}

		type monthTotals struct {
			income  float64
			expense float64
		}
		byMonth := make(map[string]*monthTotals)
		for _, row := range rows {
			monthKey := fmt.Sprintf("%04d-%02d", row.Year, row.Month)
			totals, ok := byMonth[monthKey]
			if !ok {
				totals = &monthTotals{}
				byMonth[monthKey] = totals
			}
			if row.Type == models.TypeIncome {
				totals.income = round2(row.Total)
			} else {
				totals.expense = round2(row.Total)
			}
		}

		// Newest months first, keep the requested count, then flip back
		// to chronological order.
		keys := make([]string, 0, len(byMonth))
		for monthKey := range byMonth {
			keys = append(keys, monthKey)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(keys)))
		if len(keys) > months {
			keys = keys[:months]
		}

		data := make([]models.MonthlyTrendEntry, 0, len(keys))
		for i := len(keys) - 1; i >= 0; i-- {
			totals := byMonth[keys[i]]
			data = append(data, models.MonthlyTrendEntry{
				Month:   keys[i],
				Income:  totals.income,
				Expense: totals.expense,
				Balance: round2(totals.income - totals.expense),
			})
		}

		return models.MonthlyTrend{Data: data}, nil
	})
}

// resolveWindow fills in the default window: if either bound is missing,
// both snap to the first and last day of the current calendar month.
func (s *AnalyticsService) resolveWindow(start, end models.Date) (models.Date, models.Date) {
	if !start.IsZero() && !end.IsZero() {
		return start, end
	}

	today := s.now()
	first := models.NewDate(today.Year(), today.Month(), 1)
	last := models.Date{Time: first.AddDate(0, 1, -1)}
	return first, last
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
