package services

import (
	"errors"
	"strings"
	"time"

	"acc-panel/internal/config"
	"acc-panel/internal/models"

	"go.uber.org/zap"
)

var (
	ErrUnscopedCategory = errors.New("bulk update requires a specific category")
	ErrEmptyPassword    = errors.New("new password must not be empty")
	ErrEmptyScope       = errors.New("no accounts in scope")
)

// BulkUpdateService applies one new value to a single field across every
// account of a category. Two instances of the same shape: the primary
// password and the warranty password.
type BulkUpdateService struct {
	cfg      *config.Config
	accounts *AccountService
	log      *zap.Logger
}

func NewBulkUpdateService(cfg *config.Config, log *zap.Logger) *BulkUpdateService {
	return &BulkUpdateService{
		cfg:      cfg,
		accounts: NewAccountService(cfg),
		log:      log,
	}
}

// Scope resolves the accounts a bulk update would touch. Refused outright on
// the unscoped "all" view: a blanket overwrite across categories is never
// allowed.
func (s *BulkUpdateService) Scope(category string) ([]models.Account, error) {
	if category == "" || category == "all" {
		return nil, ErrUnscopedCategory
	}
	if !models.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	accounts, err := s.accounts.List(AccountFilter{Category: category})
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, ErrEmptyScope
	}
	return accounts, nil
}

// ApplyPassword sets the primary password on every account in the category.
func (s *BulkUpdateService) ApplyPassword(category, password string) (*BatchResult, error) {
	return s.apply(category, password, "password", func(acc *models.Account, value string) {
		acc.Password = value
	})
}

// ApplyWarrantyPassword sets the warranty password on every account in the
// category.
func (s *BulkUpdateService) ApplyWarrantyPassword(category, password string) (*BatchResult, error) {
	return s.apply(category, password, "warrantyPassword", func(acc *models.Account, value string) {
		acc.WarrantyPassword = value
	})
}

func (s *BulkUpdateService) apply(category, password, field string, set func(*models.Account, string)) (*BatchResult, error) {
	password = strings.TrimSpace(password)
	if password == "" {
		return nil, ErrEmptyPassword
	}

	accounts, err := s.Scope(category)
	if err != nil {
		return nil, err
	}

	result := runBatch(len(accounts), func(i int) string { return accounts[i].ID }, func(i int) error {
		acc := accounts[i]
		set(&acc, password)
		acc.UpdatedAt = time.Now().UnixMilli()
		if err := models.DB.Save(&acc).Error; err != nil {
			s.log.Error("bulk update: save failed",
				zap.String("id", acc.ID),
				zap.String("field", field),
				zap.Error(err))
			return err
		}
		return nil
	})

	s.log.Info("bulk update finished",
		zap.String("category", category),
		zap.String("field", field),
		zap.Int("success", result.SuccessCount),
		zap.Int("errors", result.ErrorCount))

	return &result, nil
}
