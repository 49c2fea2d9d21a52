package services

import (
	"strings"
	"time"

	"acc-panel/internal/config"
	"acc-panel/internal/expiry"
	"acc-panel/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// credentialLine is one parsed row of import text: username|password|code,
// missing trailing fields empty.
type credentialLine struct {
	Username string
	Password string
	Code     string
}

// parseCredentialLine splits a pipe-delimited line into its fields. A line
// without a separator is a bare username. Returns ok=false when the trimmed
// username is empty; such lines are skipped entirely.
func parseCredentialLine(line string) (credentialLine, bool) {
	var parsed credentialLine

	if strings.Contains(line, "|") {
		parts := strings.Split(line, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		parsed.Username = parts[0]
		if len(parts) > 1 {
			parsed.Password = parts[1]
		}
		if len(parts) > 2 {
			parsed.Code = parts[2]
		}
	} else {
		parsed.Username = strings.TrimSpace(line)
	}

	return parsed, parsed.Username != ""
}

// splitLines returns the non-blank lines of raw import text.
func splitLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ImportResult is the outcome of a text import: per-line accounting plus the
// refreshed full account list.
type ImportResult struct {
	BatchResult
	Accounts []models.Account `json:"accounts"`
}

// ImportService turns newline-delimited credential text into account records.
type ImportService struct {
	cfg      *config.Config
	accounts *AccountService
	log      *zap.Logger
}

func NewImportService(cfg *config.Config, log *zap.Logger) *ImportService {
	return &ImportService{
		cfg:      cfg,
		accounts: NewAccountService(cfg),
		log:      log,
	}
}

// ImportText creates one account per accepted line of content, all in the
// given category. Submission is sequential, one insert per line; a failing
// line is logged and counted but never halts the rest. Lines with an empty
// username are skipped and count as neither success nor failure.
func (s *ImportService) ImportText(category, content string) (*ImportResult, error) {
	if !models.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	lines := splitLines(content)

	accepted := make([]credentialLine, 0, len(lines))
	for _, line := range lines {
		if parsed, ok := parseCredentialLine(line); ok {
			accepted = append(accepted, parsed)
		}
	}

	result := runBatch(len(accepted), func(i int) string { return accepted[i].Username }, func(i int) error {
		// Each line gets its own processing timestamp, not one batch-wide
		// instant.
		now := time.Now().UnixMilli()
		account := models.Account{
			ID:                 uuid.NewString(),
			Category:           category,
			Code:               accepted[i].Code,
			Username:           accepted[i].Username,
			Password:           accepted[i].Password,
			SoldStatus:         models.SoldStatusUnsold,
			WarrantyStatus:     models.WarrantyStatusNo,
			CreatedAt:          now,
			UpdatedAt:          now,
			ExpiryDate:         expiry.Compute(now, category),
			WarrantyExpiryDate: nil,
		}
		if err := models.DB.Create(&account).Error; err != nil {
			s.log.Error("import: failed to create account",
				zap.String("username", accepted[i].Username),
				zap.String("category", category),
				zap.Error(err))
			return err
		}
		return nil
	})

	refreshed, err := s.accounts.List(AccountFilter{})
	if err != nil {
		return nil, err
	}

	s.log.Info("import finished",
		zap.String("category", category),
		zap.Int("success", result.SuccessCount),
		zap.Int("errors", result.ErrorCount))

	return &ImportResult{BatchResult: result, Accounts: refreshed}, nil
}
