package handlers

import (
	"time"

	"acc-panel/internal/config"
	"acc-panel/internal/models"
	"acc-panel/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := h.authService.Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid credentials"})
		return
	}

	token, expiresAt, err := h.generateToken(user)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to generate token"})
		return
	}

	if err := h.authService.CreateSession(user.ID, token, expiresAt); err != nil {
		c.JSON(500, gin.H{"error": "Failed to create session"})
		return
	}

	logAudit(user.ID, "login", "user", "", c)

	c.JSON(200, LoginResponse{
		Token: token,
		User:  user,
	})
}

// Logout handles user logout
func (h *AuthHandler) Logout(c *gin.Context) {
	session, exists := c.Get("session")
	if !exists {
		c.JSON(401, gin.H{"error": "session expired"})
		return
	}

	sess := session.(*models.Session)
	if err := h.authService.DeleteSession(sess.Token); err != nil {
		c.JSON(500, gin.H{"error": "Failed to logout"})
		return
	}

	logAudit(sess.UserID, "logout", "user", "", c)

	c.JSON(200, gin.H{"message": "Logged out successfully"})
}

// GetMe returns current user information
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(401, gin.H{"error": "session expired"})
		return
	}

	c.JSON(200, user.(*models.User))
}

// generateToken generates a JWT token for the user
func (h *AuthHandler) generateToken(user *models.User) (string, time.Time, error) {
	expiresIn, err := time.ParseDuration(h.cfg.JWT.ExpiresIn)
	if err != nil {
		expiresIn = 24 * time.Hour
	}

	expiresAt := time.Now().Add(expiresIn)

	secret := h.cfg.JWT.Secret
	if secret == "" {
		secret = "acc-panel-default-secret-change-in-production"
	}

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      expiresAt.Unix(),
		"iat":      time.Now().Unix(),
		"iss":      h.cfg.JWT.Issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// logAudit records an audit entry for the request
func logAudit(userID uint, action, resource, resourceID string, c *gin.Context) {
	auditLog := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
	}
	models.DB.Create(auditLog)
}
