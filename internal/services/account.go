package services

import (
	"errors"
	"strings"
	"time"

	"acc-panel/internal/config"
	"acc-panel/internal/expiry"
	"acc-panel/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidField    = errors.New("invalid status field")
	ErrInvalidValue    = errors.New("invalid status value")
	ErrUsernameMissing = errors.New("username is required")
)

// AccountFilter describes the AND-combined predicates of a list query.
// Empty or "all" values leave the corresponding predicate off.
type AccountFilter struct {
	Category       string
	SoldStatus     string
	WarrantyStatus string
	Search         string
}

type AccountService struct {
	cfg *config.Config
}

// normalizeStatuses defaults empty status fields and rejects anything outside
// the two-value enumerations. Both fields are exactly one of their enumerated
// values at all times, on every write path.
func normalizeStatuses(account *models.Account) error {
	if account.SoldStatus == "" {
		account.SoldStatus = models.SoldStatusUnsold
	}
	if account.WarrantyStatus == "" {
		account.WarrantyStatus = models.WarrantyStatusNo
	}
	if !models.ValidSoldStatus(account.SoldStatus) {
		return ErrInvalidValue
	}
	if !models.ValidWarrantyStatus(account.WarrantyStatus) {
		return ErrInvalidValue
	}
	return nil
}

func NewAccountService(cfg *config.Config) *AccountService {
	return &AccountService{cfg: cfg}
}

// List returns accounts matching the filter, newest first. The search term
// is a case-insensitive substring match over code, username, customerName
// and warrantyAccount.
func (s *AccountService) List(filter AccountFilter) ([]models.Account, error) {
	query := models.DB.Model(&models.Account{})

	if filter.Category != "" && filter.Category != "all" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.SoldStatus != "" && filter.SoldStatus != "all" {
		query = query.Where("sold_status = ?", filter.SoldStatus)
	}
	if filter.WarrantyStatus != "" && filter.WarrantyStatus != "all" {
		query = query.Where("warranty_status = ?", filter.WarrantyStatus)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where(
			"LOWER(code) LIKE ? OR LOWER(username) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(warranty_account) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var accounts []models.Account
	if err := query.Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Get returns one account by id
func (s *AccountService) Get(id string) (*models.Account, error) {
	var account models.Account
	if err := models.DB.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// Create inserts a new account. The server assigns an id when none is
// supplied, stamps createdAt/updatedAt and computes expiryDate from the
// category policy at creation time.
func (s *AccountService) Create(account *models.Account) error {
	if !models.ValidCategory(account.Category) {
		return ErrInvalidCategory
	}
	if strings.TrimSpace(account.Username) == "" {
		return ErrUsernameMissing
	}

	if err := normalizeStatuses(account); err != nil {
		return err
	}

	if account.ID == "" {
		account.ID = uuid.NewString()
	}

	now := time.Now().UnixMilli()
	account.CreatedAt = now
	account.UpdatedAt = now
	account.ExpiryDate = expiry.Compute(now, account.Category)

	return models.DB.Create(account).Error
}

// Replace overwrites every mutable field of an existing account.
// expiryDate and warrantyExpiryDate are carried verbatim from the caller,
// never recomputed here; a generic edit must not silently refresh them.
func (s *AccountService) Replace(id string, account *models.Account) error {
	existing, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := normalizeStatuses(account); err != nil {
		return err
	}

	account.ID = existing.ID
	account.CreatedAt = existing.CreatedAt
	account.UpdatedAt = time.Now().UnixMilli()

	return models.DB.Save(account).Error
}

// statusFields is the closed set of patchable fields, mapped to their column
// names. The request field name is never interpolated into a query.
var statusFields = map[string]string{
	"soldStatus":     "sold_status",
	"warrantyStatus": "warranty_status",
}

// UpdateStatusField applies a single-field status toggle. The field name is
// validated against the closed set before any query is built.
func (s *AccountService) UpdateStatusField(id, field, value string) error {
	column, ok := statusFields[field]
	if !ok {
		return ErrInvalidField
	}

	switch field {
	case "soldStatus":
		if !models.ValidSoldStatus(value) {
			return ErrInvalidValue
		}
	case "warrantyStatus":
		if !models.ValidWarrantyStatus(value) {
			return ErrInvalidValue
		}
	}

	res := models.DB.Model(&models.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			column:       value,
			"updated_at": time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// Delete removes one account
func (s *AccountService) Delete(id string) error {
	res := models.DB.Where("id = ?", id).Delete(&models.Account{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// DeleteBatch removes an operator-selected set of accounts, one delete per
// id, continuing past failures.
func (s *AccountService) DeleteBatch(ids []string) BatchResult {
	return runBatch(len(ids), func(i int) string { return ids[i] }, func(i int) error {
		return s.Delete(ids[i])
	})
}

// Import inserts a batch of exported accounts. Rows whose id already exists
// are skipped, making the operation idempotent on id; rows missing an id or
// username, or carrying a status outside its enumeration, are skipped too.
// Returns the number of rows actually inserted.
func (s *AccountService) Import(accounts []models.Account) (int, error) {
	imported := 0
	now := time.Now().UnixMilli()

	for i := range accounts {
		acc := accounts[i]
		if acc.ID == "" || strings.TrimSpace(acc.Username) == "" {
			continue
		}
		if err := normalizeStatuses(&acc); err != nil {
			continue
		}
		if acc.CreatedAt == 0 {
			acc.CreatedAt = now
		}
		if acc.UpdatedAt == 0 {
			acc.UpdatedAt = now
		}

		res := models.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&acc)
		if res.Error != nil {
			continue
		}
		if res.RowsAffected > 0 {
			imported++
		}
	}

	return imported, nil
}

// Export returns every account, newest first, in a form suitable for Import.
func (s *AccountService) Export() ([]models.Account, error) {
	return s.List(AccountFilter{})
}
