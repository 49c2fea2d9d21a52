package view

import (
	"fmt"
	"testing"

	"acc-panel/internal/models"

	"github.com/stretchr/testify/assert"
)

func sampleAccounts() []models.Account {
	return []models.Account{
		{ID: "1", Category: models.CategoryChatGPT, Username: "alice@x.com", SoldStatus: "sold", WarrantyStatus: "no"},
		{ID: "2", Category: models.CategoryVeo3, Username: "bob@x.com", SoldStatus: "unsold", WarrantyStatus: "yes", CustomerName: "Alice Corp"},
		{ID: "3", Category: models.CategoryVeo3, Username: "carol@x.com", SoldStatus: "sold", WarrantyStatus: "no", Code: "AL-9"},
		{ID: "4", Category: models.CategoryCapCut, Username: "dave@x.com", SoldStatus: "unsold", WarrantyStatus: "no", WarrantyAccount: "alias@x.com"},
	}
}

func ids(accounts []models.Account) []string {
	out := make([]string, len(accounts))
	for i, acc := range accounts {
		out[i] = acc.ID
	}
	return out
}

func TestFilterPredicates(t *testing.T) {
	accounts := sampleAccounts()

	t.Run("category", func(t *testing.T) {
		got := State{Category: models.CategoryVeo3}.Filter(accounts)
		assert.Equal(t, []string{"2", "3"}, ids(got))
	})

	t.Run("all and empty are no filter", func(t *testing.T) {
		assert.Len(t, State{Category: "all"}.Filter(accounts), 4)
		assert.Len(t, State{}.Filter(accounts), 4)
	})

	t.Run("sold and warranty status", func(t *testing.T) {
		got := State{SoldStatus: "sold"}.Filter(accounts)
		assert.Equal(t, []string{"1", "3"}, ids(got))

		got = State{WarrantyStatus: "yes"}.Filter(accounts)
		assert.Equal(t, []string{"2"}, ids(got))
	})

	t.Run("search spans code, username, customer and warranty account", func(t *testing.T) {
		got := State{Search: "AL"}.Filter(accounts)
		assert.Equal(t, []string{"1", "2", "3", "4"}, ids(got))

		got = State{Search: "alice"}.Filter(accounts)
		assert.Equal(t, []string{"1", "2"}, ids(got))
	})

	t.Run("predicates commute", func(t *testing.T) {
		// category-then-search equals search-then-category
		step1 := State{Category: models.CategoryVeo3}.Filter(accounts)
		catThenSearch := State{Search: "al"}.Filter(step1)

		step2 := State{Search: "al"}.Filter(accounts)
		searchThenCat := State{Category: models.CategoryVeo3}.Filter(step2)

		combined := State{Category: models.CategoryVeo3, Search: "al"}.Filter(accounts)

		assert.Equal(t, ids(catThenSearch), ids(searchThenCat))
		assert.Equal(t, ids(combined), ids(catThenSearch))
	})
}

func TestFilterChangesResetPage(t *testing.T) {
	s := State{Page: 7}

	assert.Equal(t, 1, s.WithCategory(models.CategoryVeo3).Page)
	assert.Equal(t, 1, s.WithSoldStatus("sold").Page)
	assert.Equal(t, 1, s.WithWarrantyStatus("yes").Page)
	assert.Equal(t, 1, s.WithSearch("alice").Page)
}

func TestWindow(t *testing.T) {
	t.Run("window math", func(t *testing.T) {
		s := State{Page: 1}
		start, end := s.Window(45)
		assert.Equal(t, 0, start)
		assert.Equal(t, 20, end)

		s.Page = 3
		start, end = s.Window(45)
		assert.Equal(t, 40, start)
		assert.Equal(t, 45, end)
	})

	t.Run("empty set", func(t *testing.T) {
		start, end := State{Page: 1}.Window(0)
		assert.Equal(t, 0, start)
		assert.Equal(t, 0, end)
	})

	t.Run("total pages", func(t *testing.T) {
		assert.Equal(t, 0, TotalPages(0))
		assert.Equal(t, 1, TotalPages(1))
		assert.Equal(t, 1, TotalPages(20))
		assert.Equal(t, 2, TotalPages(21))
		assert.Equal(t, 3, TotalPages(45))
	})
}

func TestGoToPage(t *testing.T) {
	s := State{Page: 2}

	// Out-of-range navigation is a no-op
	assert.Equal(t, 2, s.GoToPage(0, 45).Page)
	assert.Equal(t, 2, s.GoToPage(4, 45).Page)

	// In-range navigation moves
	assert.Equal(t, 3, s.GoToPage(3, 45).Page)
	assert.Equal(t, 1, s.GoToPage(1, 45).Page)
}

func TestPaginate(t *testing.T) {
	accounts := make([]models.Account, 25)
	for i := range accounts {
		accounts[i] = models.Account{ID: fmt.Sprint(i)}
	}

	page1 := State{Page: 1}.Paginate(accounts)
	assert.Len(t, page1, 20)
	assert.Equal(t, "0", page1[0].ID)

	page2 := State{Page: 2}.Paginate(accounts)
	assert.Len(t, page2, 5)
	assert.Equal(t, "20", page2[0].ID)
}
