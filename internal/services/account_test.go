package services

import (
	"testing"
	"time"

	"acc-panel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountCreate(t *testing.T) {
	cfg := setupTestDB(t)
	svc := NewAccountService(cfg)

	t.Run("computes expiry from category at creation", func(t *testing.T) {
		before := time.Now().UnixMilli()
		acc := models.Account{Category: models.CategoryVeo3, Username: "new@x.com", Password: "pw"}
		require.NoError(t, svc.Create(&acc))
		after := time.Now().UnixMilli()

		assert.NotEmpty(t, acc.ID)
		assert.Equal(t, models.SoldStatusUnsold, acc.SoldStatus)
		assert.Equal(t, models.WarrantyStatusNo, acc.WarrantyStatus)

		const day = int64(24 * 60 * 60 * 1000)
		assert.GreaterOrEqual(t, acc.ExpiryDate, before+14*day)
		assert.LessOrEqual(t, acc.ExpiryDate, after+14*day)
		assert.Equal(t, acc.CreatedAt+14*day, acc.ExpiryDate)
	})

	t.Run("rejects missing username", func(t *testing.T) {
		err := svc.Create(&models.Account{Category: models.CategoryVeo3, Username: "  "})
		assert.ErrorIs(t, err, ErrUsernameMissing)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		err := svc.Create(&models.Account{Category: "spotify", Username: "u@x.com"})
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("keeps a caller-supplied id", func(t *testing.T) {
		acc := models.Account{ID: "my-id-1", Category: models.CategoryCapCut, Username: "mine@x.com"}
		require.NoError(t, svc.Create(&acc))
		assert.Equal(t, "my-id-1", acc.ID)
	})

	t.Run("rejects status values outside the enumerations", func(t *testing.T) {
		err := svc.Create(&models.Account{Category: models.CategoryVeo3, Username: "s1@x.com", SoldStatus: "maybe"})
		assert.ErrorIs(t, err, ErrInvalidValue)

		err = svc.Create(&models.Account{Category: models.CategoryVeo3, Username: "s2@x.com", WarrantyStatus: "pending"})
		assert.ErrorIs(t, err, ErrInvalidValue)

		var count int64
		require.NoError(t, models.DB.Model(&models.Account{}).
			Where("username IN ?", []string{"s1@x.com", "s2@x.com"}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})
}

func TestAccountReplacePreservesExpiry(t *testing.T) {
	cfg := setupTestDB(t)
	svc := NewAccountService(cfg)

	acc := models.Account{Category: models.CategoryChatGPT, Username: "edit@x.com", Password: "pw"}
	require.NoError(t, svc.Create(&acc))
	originalExpiry := acc.ExpiryDate

	// A generic edit carries expiryDate verbatim and never recomputes it,
	// even when the category changes.
	updated := acc
	updated.Category = models.CategoryVeo3
	updated.Note = "moved"
	require.NoError(t, svc.Replace(acc.ID, &updated))

	var got models.Account
	require.NoError(t, models.DB.First(&got, "id = ?", acc.ID).Error)
	assert.Equal(t, originalExpiry, got.ExpiryDate)
	assert.Equal(t, models.CategoryVeo3, got.Category)
	assert.Equal(t, "moved", got.Note)
	assert.Equal(t, acc.CreatedAt, got.CreatedAt)
}

func TestAccountReplaceStatusEnums(t *testing.T) {
	cfg := setupTestDB(t)
	svc := NewAccountService(cfg)

	acc := models.Account{Category: models.CategoryVeo3, Username: "enum@x.com", SoldStatus: models.SoldStatusSold}
	require.NoError(t, svc.Create(&acc))

	t.Run("omitted statuses default instead of storing empty strings", func(t *testing.T) {
		updated := acc
		updated.SoldStatus = ""
		updated.WarrantyStatus = ""
		require.NoError(t, svc.Replace(acc.ID, &updated))

		var got models.Account
		require.NoError(t, models.DB.First(&got, "id = ?", acc.ID).Error)
		assert.Equal(t, models.SoldStatusUnsold, got.SoldStatus)
		assert.Equal(t, models.WarrantyStatusNo, got.WarrantyStatus)
	})

	t.Run("third values are rejected and nothing is written", func(t *testing.T) {
		updated := acc
		updated.SoldStatus = "maybe"
		err := svc.Replace(acc.ID, &updated)
		assert.ErrorIs(t, err, ErrInvalidValue)

		updated = acc
		updated.WarrantyStatus = "expired"
		err = svc.Replace(acc.ID, &updated)
		assert.ErrorIs(t, err, ErrInvalidValue)

		var got models.Account
		require.NoError(t, models.DB.First(&got, "id = ?", acc.ID).Error)
		assert.Equal(t, models.SoldStatusUnsold, got.SoldStatus)
		assert.Equal(t, models.WarrantyStatusNo, got.WarrantyStatus)
	})
}

func TestAccountReplaceNotFound(t *testing.T) {
	cfg := setupTestDB(t)
	svc := NewAccountService(cfg)

	err := svc.Replace("ghost", &models.Account{Category: models.CategoryVeo3, Username: "g@x.com"})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestUpdateStatusField(t *testing.T) {
	cfg := setupTestDB(t)
	svc := NewAccountService(cfg)

	acc := seedAccount(t, models.Account{ID: "st-1", Category: models.CategoryVeo3, Username: "st@x.com"})

	t.Run("toggles sold status", func(t *testing.T) {
		require.NoError(t, svc.UpdateStatusField(acc.ID, "soldStatus", models.SoldStatusSold))
		var got models.Account
		require.NoError(t, models.DB.First(&got, "id = ?", acc.ID).Error)
		assert.Equal(t, models.SoldStatusSold, got.SoldStatus)
	})

	t.Run("toggles warranty status without clearing warranty fields", func(t *testing.T) {
		require.NoError(t, models.DB.Model(&models.Account{}).Where("id = ?", acc.ID).
			Updates(map[string]interface{}{"warranty_account": "w@x.com", "warranty_password": "wp"}).Error)

		require.NoError(t, svc.UpdateStatusField(acc.ID, "warrantyStatus", models.WarrantyStatusYes))
		require.NoError(t, svc.UpdateStatusField(acc.ID, "warrantyStatus", models.WarrantyStatusNo))

		var got models.Account
		require.NoError(t, models.DB.First(&got, "id = ?", acc.ID).Error)
		assert.Equal(t, models.WarrantyStatusNo, got.WarrantyStatus)
		assert.Equal(t, "w@x.com", got.WarrantyAccount)
		assert.Equal(t, "wp", got.WarrantyPassword)
	})

	t.Run("rejects field names outside the closed set", func(t *testing.T) {
		err := svc.UpdateStatusField(acc.ID, "password", "hacked")
		assert.ErrorIs(t, err, ErrInvalidField)

		err = svc.UpdateStatusField(acc.ID, "soldStatus; DROP TABLE accounts", "sold")
		assert.ErrorIs(t, err, ErrInvalidField)
	})

	t.Run("rejects values outside the enumeration", func(t *testing.T) {
		err := svc.UpdateStatusField(acc.ID, "soldStatus", "maybe")
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("not found", func(t *testing.T) {
		err := svc.UpdateStatusField("ghost", "soldStatus", models.SoldStatusSold)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestAccountDelete(t *testing.T) {
	cfg := setupTestDB(t)
	svc := NewAccountService(cfg)

	acc := seedAccount(t, models.Account{ID: "del-1", Category: models.CategoryVeo3, Username: "del@x.com"})

	t.Run("deleting a missing id is not found and changes nothing", func(t *testing.T) {
		before := countAccounts(t)
		err := svc.Delete("does-not-exist")
		assert.ErrorIs(t, err, ErrAccountNotFound)
		assert.Equal(t, before, countAccounts(t))
	})

	t.Run("deletes an existing row", func(t *testing.T) {
		require.NoError(t, svc.Delete(acc.ID))
		_, err := svc.Get(acc.ID)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestAccountList(t *testing.T) {
	cfg := setupTestDB(t)
	svc := NewAccountService(cfg)

	seedAccount(t, models.Account{ID: "l-1", Category: models.CategoryVeo3, Username: "alpha@x.com", Code: "V1", SoldStatus: models.SoldStatusSold})
	seedAccount(t, models.Account{ID: "l-2", Category: models.CategoryVeo3, Username: "beta@x.com", CustomerName: "Alpha Trading"})
	seedAccount(t, models.Account{ID: "l-3", Category: models.CategoryChatGPT, Username: "gamma@x.com", WarrantyAccount: "alphaw@x.com"})

	t.Run("category filter", func(t *testing.T) {
		accounts, err := svc.List(AccountFilter{Category: models.CategoryVeo3})
		require.NoError(t, err)
		assert.Len(t, accounts, 2)
	})

	t.Run("all means no filter", func(t *testing.T) {
		accounts, err := svc.List(AccountFilter{Category: "all"})
		require.NoError(t, err)
		assert.Len(t, accounts, 3)
	})

	t.Run("sold status filter", func(t *testing.T) {
		accounts, err := svc.List(AccountFilter{SoldStatus: models.SoldStatusSold})
		require.NoError(t, err)
		require.Len(t, accounts, 1)
		assert.Equal(t, "l-1", accounts[0].ID)
	})

	t.Run("search is case-insensitive across the four columns", func(t *testing.T) {
		accounts, err := svc.List(AccountFilter{Search: "ALPHA"})
		require.NoError(t, err)
		// l-1 by username, l-2 by customer name, l-3 by warranty account
		assert.Len(t, accounts, 3)
	})

	t.Run("predicates combine with AND", func(t *testing.T) {
		accounts, err := svc.List(AccountFilter{Category: models.CategoryVeo3, Search: "alpha"})
		require.NoError(t, err)
		assert.Len(t, accounts, 2)
	})
}

func TestAccountImportIdempotent(t *testing.T) {
	cfg := setupTestDB(t)
	svc := NewAccountService(cfg)

	rows := []models.Account{
		{ID: "imp-1", Category: models.CategoryVeo3, Username: "i1@x.com"},
		{ID: "imp-2", Category: models.CategoryVeo3, Username: "i2@x.com"},
	}

	imported, err := svc.Import(rows)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	// Re-importing the same ids inserts nothing and fails nothing
	imported, err = svc.Import(rows)
	require.NoError(t, err)
	assert.Equal(t, 0, imported)
	assert.Equal(t, int64(2), countAccounts(t))

	// Rows without id or username, or with a status outside its
	// enumeration, are skipped
	imported, err = svc.Import([]models.Account{
		{Category: models.CategoryVeo3, Username: "no-id@x.com"},
		{ID: "imp-3", Category: models.CategoryVeo3, Username: " "},
		{ID: "imp-4", Category: models.CategoryVeo3, Username: "i4@x.com"},
		{ID: "imp-5", Category: models.CategoryVeo3, Username: "i5@x.com", SoldStatus: "maybe"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
}
