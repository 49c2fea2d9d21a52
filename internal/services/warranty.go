package services

import (
	"errors"
	"strings"
	"time"

	"acc-panel/internal/config"
	"acc-panel/internal/expiry"
	"acc-panel/internal/models"

	"go.uber.org/zap"
)

var (
	ErrEmptyWarrantyFile  = errors.New("warranty file is empty")
	ErrNoCategoryAccounts = errors.New("no accounts exist in this category")
	ErrSelectionMismatch  = errors.New("selected account count must equal the number of warranty lines")
)

// WarrantyIntake is the phase-1 result of a reconciliation: the parsed
// replacement lines, every candidate account of the category, and a default
// preselection of the first len(Lines) candidates when enough exist. Nothing
// is persisted at intake; the caller holds this state and either commits or
// walks away.
type WarrantyIntake struct {
	Category    string           `json:"category"`
	Lines       []string         `json:"lines"`
	Accounts    []models.Account `json:"accounts"`
	Preselected []string         `json:"preselected"`
}

// WarrantyService applies batches of replacement credentials to existing
// accounts in two phases: intake, then an order-sensitive commit.
type WarrantyService struct {
	cfg      *config.Config
	accounts *AccountService
	log      *zap.Logger
}

func NewWarrantyService(cfg *config.Config, log *zap.Logger) *WarrantyService {
	return &WarrantyService{
		cfg:      cfg,
		accounts: NewAccountService(cfg),
		log:      log,
	}
}

// Intake parses raw warranty-replacement text against a category. Rejected
// when the text holds no non-blank lines or the category holds no accounts.
func (s *WarrantyService) Intake(category, content string) (*WarrantyIntake, error) {
	if !models.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	lines := splitLines(content)
	if len(lines) == 0 {
		return nil, ErrEmptyWarrantyFile
	}

	candidates, err := s.accounts.List(AccountFilter{Category: category})
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoCategoryAccounts
	}

	intake := &WarrantyIntake{
		Category: category,
		Lines:    lines,
		Accounts: candidates,
	}

	// Convenience default: preselect the first N candidates in list order.
	if len(lines) <= len(candidates) {
		for _, acc := range candidates[:len(lines)] {
			intake.Preselected = append(intake.Preselected, acc.ID)
		}
	}

	return intake, nil
}

// Commit pairs lines[i] with selectedIDs[i] in selection order, not list
// order, and writes the replacement credentials. The count match is a hard
// precondition; on mismatch nothing is written. Each account is updated by a
// full-row replace carrying all other fields through; failures are counted,
// logged and skipped.
func (s *WarrantyService) Commit(lines []string, selectedIDs []string) (*BatchResult, error) {
	if len(selectedIDs) != len(lines) {
		return nil, ErrSelectionMismatch
	}

	result := runBatch(len(selectedIDs), func(i int) string { return selectedIDs[i] }, func(i int) error {
		account, err := s.accounts.Get(selectedIDs[i])
		if err != nil {
			s.log.Error("warranty commit: account lookup failed",
				zap.String("id", selectedIDs[i]), zap.Error(err))
			return err
		}

		line := strings.TrimSpace(lines[i])
		if strings.Contains(line, "|") {
			parts := strings.Split(line, "|")
			for j := range parts {
				parts[j] = strings.TrimSpace(parts[j])
			}
			account.WarrantyAccount = parts[0]
			if len(parts) > 1 {
				account.WarrantyPassword = parts[1]
			} else {
				account.WarrantyPassword = ""
			}
		} else {
			// Account only; the existing warranty password stays as-is.
			account.WarrantyAccount = line
		}

		now := time.Now().UnixMilli()
		warrantyExpiry := expiry.Compute(now, account.Category)
		account.WarrantyExpiryDate = &warrantyExpiry
		account.UpdatedAt = now

		if err := models.DB.Save(account).Error; err != nil {
			s.log.Error("warranty commit: save failed",
				zap.String("id", account.ID), zap.Error(err))
			return err
		}
		return nil
	})

	s.log.Info("warranty reconciliation finished",
		zap.Int("success", result.SuccessCount),
		zap.Int("errors", result.ErrorCount))

	return &result, nil
}
