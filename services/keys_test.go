package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyticsKeyIsDeterministic(t *testing.T) {
	a := analyticsKey("u1", "summary", "2025-03-01", "2025-03-31")
	b := analyticsKey("u1", "summary", "2025-03-01", "2025-03-31")

	assert.Equal(t, a, b)
	assert.Equal(t, "analytics:u1:summary:2025-03-01:2025-03-31", a)
}

func TestKeysFallUnderUserPrefix(t *testing.T) {
	prefix := userPrefix("analytics", "u1")

	assert.Equal(t, "analytics:u1:", prefix)
	assert.Contains(t, analyticsKey("u1", "monthly_trend", "6"), prefix)
	assert.NotContains(t, analyticsKey("u12", "monthly_trend", "6"), prefix)
}

func TestResourceKey(t *testing.T) {
	key := resourceKey("transactions", "u1", "list", "expense", "", "0001-01-01", "0001-01-01", "0", "50")
	assert.Equal(t, "transactions:u1:list:expense::0001-01-01:0001-01-01:0:50", key)
}
