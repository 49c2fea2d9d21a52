package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"acc-panel/internal/config"
	"acc-panel/internal/models"

	"github.com/stretchr/testify/require"
)

// setupTestDB initializes a throwaway sqlite database
func setupTestDB(t *testing.T) *config.Config {
	tmpDir := os.TempDir()
	testDBPath := fmt.Sprintf("%s/accpanel_test_%d.db", tmpDir, time.Now().UnixNano())

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Type: "sqlite",
			SQLite: config.SQLiteConfig{
				Path: testDBPath,
			},
		},
		JWT: config.JWTConfig{
			Secret:    "test-secret-key-for-testing-only",
			ExpiresIn: "24h",
			Issuer:    "acc-panel-test",
		},
		Security: config.SecurityConfig{
			BcryptCost: 4,
		},
		DefaultUser: config.DefaultUserConfig{
			Username: "admin",
			Password: "admin123",
			FullName: "Administrator",
		},
	}

	err := models.InitDB(cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		if models.DB != nil {
			sqlDB, err := models.DB.DB()
			if err == nil {
				sqlDB.Close()
			}
			os.Remove(testDBPath)
		}
		models.DB = nil
	})

	return cfg
}

// seedAccount inserts a ready-made account row for tests
func seedAccount(t *testing.T, acc models.Account) models.Account {
	if acc.SoldStatus == "" {
		acc.SoldStatus = models.SoldStatusUnsold
	}
	if acc.WarrantyStatus == "" {
		acc.WarrantyStatus = models.WarrantyStatusNo
	}
	require.NoError(t, models.DB.Create(&acc).Error)
	return acc
}

func countAccounts(t *testing.T) int64 {
	var count int64
	require.NoError(t, models.DB.Model(&models.Account{}).Count(&count).Error)
	return count
}
