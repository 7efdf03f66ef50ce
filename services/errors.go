package services

import (
	"errors"

	"github.com/lib/pq"

	"github.com/burg1337/expense-tracker/cache"
)

var (
	// ErrInvalidPeriod means a budget's end date is not after its start date.
	ErrInvalidPeriod = errors.New("end date must be after start date")

	// ErrCategoryInUse means a category still has transactions or budgets
	// referencing it and cannot be deleted.
	ErrCategoryInUse = errors.New("category is referenced by existing transactions or budgets")
)

// isForeignKeyViolation reports whether err is a Postgres foreign key
// constraint failure (class 23503).
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

// invalidateAfterWrite drops the resource's own cached entries and every
// cached analytics view for the user, in that order. Called only after the
// write has committed; any concurrent write can change any aggregate, so
// invalidation is deliberately coarse.
func invalidateAfterWrite(c cache.Store, resource, userID string) {
	c.Invalidate(userPrefix(resource, userID))
	c.Invalidate(userPrefix("analytics", userID))
}
