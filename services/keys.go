package services

import "strings"

// Cache keys are "{domain}:{userID}:{view}:{param}:{param}..." with every
// parameter already resolved (dates concrete, never empty). Invalidation
// works on the "{domain}:{userID}:" prefix.

func analyticsKey(userID, view string, params ...string) string {
	parts := append([]string{"analytics", userID, view}, params...)
	return strings.Join(parts, ":")
}

func resourceKey(resource, userID string, params ...string) string {
	parts := append([]string{resource, userID}, params...)
	return strings.Join(parts, ":")
}

func userPrefix(domain, userID string) string {
	return domain + ":" + userID + ":"
}
