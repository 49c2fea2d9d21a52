// Package expiry maps account categories to subscription lengths and computes
// expiry deadlines in epoch milliseconds. It is pure and has no side effects.
package expiry

import "acc-panel/internal/models"

const dayMillis = 24 * 60 * 60 * 1000

// Days returns the subscription length in days for a category.
// Unrecognized categories fall back to the ChatGPT window.
func Days(category string) int {
	switch category {
	case models.CategoryVeo3:
		return 14
	case models.CategoryCapCut:
		return 28
	default:
		return 30
	}
}

// Compute returns the expiry deadline for a subscription starting at nowMillis.
func Compute(nowMillis int64, category string) int64 {
	return nowMillis + int64(Days(category))*dayMillis
}
