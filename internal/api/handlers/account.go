package handlers

import (
	"errors"
	"strconv"

	"acc-panel/internal/config"
	"acc-panel/internal/models"
	"acc-panel/internal/services"
	"acc-panel/internal/view"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountService *services.AccountService
}

func NewAccountHandler(cfg *config.Config) *AccountHandler {
	return &AccountHandler{
		accountService: services.NewAccountService(cfg),
	}
}

// GetAccounts returns the filtered account list. With a page query parameter
// the response is a 20-row window plus paging metadata; without it, the full
// filtered list.
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	filter := services.AccountFilter{
		Category:       c.Query("category"),
		SoldStatus:     c.Query("soldStatus"),
		WarrantyStatus: c.Query("warrantyStatus"),
		Search:         c.Query("search"),
	}

	accounts, err := h.accountService.List(filter)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get accounts", "details": err.Error()})
		return
	}

	pageParam := c.Query("page")
	if pageParam == "" {
		c.JSON(200, accounts)
		return
	}

	page, err := strconv.Atoi(pageParam)
	if err != nil || page < 1 {
		page = 1
	}

	state := view.State{Page: page}
	c.JSON(200, gin.H{
		"accounts":   state.Paginate(accounts),
		"page":       page,
		"totalPages": view.TotalPages(len(accounts)),
		"total":      len(accounts),
	})
}

// GetAccount returns a single account
func (h *AccountHandler) GetAccount(c *gin.Context) {
	account, err := h.accountService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, account)
}

// CreateAccount creates a single account
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var account models.Account
	if err := c.ShouldBindJSON(&account); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := h.accountService.Create(&account); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("user_id")
	logAudit(userID.(uint), "create", "account", account.ID, c)

	c.JSON(201, account)
}

// UpdateAccount replaces every mutable field of an account
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	var account models.Account
	if err := c.ShouldBindJSON(&account); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := h.accountService.Replace(c.Param("id"), &account); err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, account)
}

type UpdateStatusRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// UpdateStatus toggles a single status field
func (h *AccountHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := h.accountService.UpdateStatusField(c.Param("id"), req.Field, req.Value); err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			c.JSON(404, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidField), errors.Is(err, services.ErrInvalidValue):
			c.JSON(400, gin.H{"error": err.Error()})
		default:
			c.JSON(500, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(200, gin.H{"message": "Status updated successfully"})
}

// DeleteAccount deletes one account
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	if err := h.accountService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("user_id")
	logAudit(userID.(uint), "delete", "account", c.Param("id"), c)

	c.JSON(200, gin.H{"message": "Account deleted successfully"})
}

type DeleteBatchRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// DeleteBatch deletes an operator-selected set of accounts
func (h *AccountHandler) DeleteBatch(c *gin.Context) {
	var req DeleteBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result := h.accountService.DeleteBatch(req.IDs)

	userID, _ := c.Get("user_id")
	logAudit(userID.(uint), "delete", "account", "batch", c)

	c.JSON(200, result)
}

// ImportAccounts bulk-inserts exported account rows, skipping ids that
// already exist.
func (h *AccountHandler) ImportAccounts(c *gin.Context) {
	var accounts []models.Account
	if err := c.ShouldBindJSON(&accounts); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	imported, err := h.accountService.Import(accounts)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("user_id")
	logAudit(userID.(uint), "import", "account", "", c)

	c.JSON(200, gin.H{
		"imported": imported,
		"total":    len(accounts),
	})
}

// ExportAccounts returns every account as a JSON dump suitable for re-import
func (h *AccountHandler) ExportAccounts(c *gin.Context) {
	accounts, err := h.accountService.Export()
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=accounts.json")
	c.JSON(200, accounts)
}
