package handlers

import (
	"errors"

	"acc-panel/internal/config"
	"acc-panel/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BulkHandler exposes the three bulk flows: text import, warranty
// reconciliation and scoped field updates.
type BulkHandler struct {
	importService *services.ImportService
	warranty      *services.WarrantyService
	bulkUpdate    *services.BulkUpdateService
}

func NewBulkHandler(cfg *config.Config, log *zap.Logger) *BulkHandler {
	return &BulkHandler{
		importService: services.NewImportService(cfg, log),
		warranty:      services.NewWarrantyService(cfg, log),
		bulkUpdate:    services.NewBulkUpdateService(cfg, log),
	}
}

type ImportTextRequest struct {
	Category string `json:"category" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// ImportText parses newline-delimited credential text into new accounts
func (h *BulkHandler) ImportText(c *gin.Context) {
	var req ImportTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, err := h.importService.ImportText(req.Category, req.Content)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("user_id")
	logAudit(userID.(uint), "import", "account", req.Category, c)

	c.JSON(200, result)
}

type WarrantyPreviewRequest struct {
	Category string `json:"category" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// WarrantyPreview is phase 1 of the reconciliation: parse the replacement
// lines and list the selectable accounts of the category. Nothing is written.
func (h *BulkHandler) WarrantyPreview(c *gin.Context) {
	var req WarrantyPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	intake, err := h.warranty.Intake(req.Category, req.Content)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, intake)
}

type WarrantyCommitRequest struct {
	Lines      []string `json:"lines" binding:"required"`
	AccountIDs []string `json:"accountIds" binding:"required"`
}

// WarrantyCommit is phase 2: pair lines with selected accounts in selection
// order and write the replacement credentials.
func (h *BulkHandler) WarrantyCommit(c *gin.Context) {
	var req WarrantyCommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, err := h.warranty.Commit(req.Lines, req.AccountIDs)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("user_id")
	logAudit(userID.(uint), "bulk_update", "account", "warranty", c)

	c.JSON(200, result)
}

type BulkPasswordRequest struct {
	Category string `json:"category" binding:"required"`
	Password string `json:"password" binding:"required"`
	Confirm  bool   `json:"confirm"`
}

// BulkPassword resets the primary password across a category
func (h *BulkHandler) BulkPassword(c *gin.Context) {
	h.applyBulk(c, h.bulkUpdate.ApplyPassword)
}

// BulkWarrantyPassword resets the warranty password across a category
func (h *BulkHandler) BulkWarrantyPassword(c *gin.Context) {
	h.applyBulk(c, h.bulkUpdate.ApplyWarrantyPassword)
}

func (h *BulkHandler) applyBulk(c *gin.Context, apply func(category, password string) (*services.BatchResult, error)) {
	var req BulkPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	// Without explicit confirmation, resolve the scope and echo the exact
	// target count and literal value back to the operator; no writes happen.
	if !req.Confirm {
		accounts, err := h.bulkUpdate.Scope(req.Category)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{
			"requiresConfirmation": true,
			"count":                len(accounts),
			"category":             req.Category,
			"password":             req.Password,
		})
		return
	}

	result, err := apply(req.Category, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnscopedCategory),
			errors.Is(err, services.ErrEmptyPassword),
			errors.Is(err, services.ErrEmptyScope),
			errors.Is(err, services.ErrInvalidCategory):
			c.JSON(400, gin.H{"error": err.Error()})
		default:
			c.JSON(500, gin.H{"error": err.Error()})
		}
		return
	}

	userID, _ := c.Get("user_id")
	logAudit(userID.(uint), "bulk_update", "account", req.Category, c)

	c.JSON(200, result)
}
