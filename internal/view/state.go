// Package view models the presentation state of the account list: the four
// AND-combined filter predicates and fixed-size pagination windows. State is
// an explicit value object; every filter change resets pagination to page 1.
package view

import (
	"strings"

	"acc-panel/internal/models"
)

// PageSize is the fixed number of accounts per page.
const PageSize = 20

// State is the current list view: filter predicates plus the active page.
// The zero value shows everything, page 1 implied.
type State struct {
	Category       string
	SoldStatus     string
	WarrantyStatus string
	Search         string
	Page           int
}

// WithCategory returns the state filtered to a category, back on page 1.
func (s State) WithCategory(category string) State {
	s.Category = category
	s.Page = 1
	return s
}

// WithSoldStatus returns the state filtered to a sold status, back on page 1.
func (s State) WithSoldStatus(status string) State {
	s.SoldStatus = status
	s.Page = 1
	return s
}

// WithWarrantyStatus returns the state filtered to a warranty status, back on
// page 1.
func (s State) WithWarrantyStatus(status string) State {
	s.WarrantyStatus = status
	s.Page = 1
	return s
}

// WithSearch returns the state filtered by a search term, back on page 1.
func (s State) WithSearch(term string) State {
	s.Search = term
	s.Page = 1
	return s
}

// Matches reports whether an account passes every active predicate. The
// search term is a case-insensitive substring match over code, username,
// customerName and warrantyAccount.
func (s State) Matches(acc models.Account) bool {
	if s.Category != "" && s.Category != "all" && acc.Category != s.Category {
		return false
	}
	if s.SoldStatus != "" && s.SoldStatus != "all" && acc.SoldStatus != s.SoldStatus {
		return false
	}
	if s.WarrantyStatus != "" && s.WarrantyStatus != "all" && acc.WarrantyStatus != s.WarrantyStatus {
		return false
	}

	term := strings.ToLower(strings.TrimSpace(s.Search))
	if term == "" {
		return true
	}
	for _, field := range []string{acc.Code, acc.Username, acc.CustomerName, acc.WarrantyAccount} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Filter returns the accounts passing every active predicate, preserving
// order. The predicates are independent, so they commute.
func (s State) Filter(accounts []models.Account) []models.Account {
	filtered := make([]models.Account, 0, len(accounts))
	for _, acc := range accounts {
		if s.Matches(acc) {
			filtered = append(filtered, acc)
		}
	}
	return filtered
}

// TotalPages returns the number of pages needed for total accounts.
func TotalPages(total int) int {
	return (total + PageSize - 1) / PageSize
}

// Window returns the half-open index range [start, end) of the state's page
// over total accounts.
func (s State) Window(total int) (start, end int) {
	page := s.Page
	if page < 1 {
		page = 1
	}
	start = (page - 1) * PageSize
	if start > total {
		start = total
	}
	end = start + PageSize
	if end > total {
		end = total
	}
	return start, end
}

// GoToPage returns the state moved to page. Out-of-range targets are a
// no-op: navigation disables at the first and last page boundary.
func (s State) GoToPage(page, total int) State {
	if page < 1 || page > TotalPages(total) {
		return s
	}
	s.Page = page
	return s
}

// Paginate returns the state's page window of accounts.
func (s State) Paginate(accounts []models.Account) []models.Account {
	start, end := s.Window(len(accounts))
	return accounts[start:end]
}
