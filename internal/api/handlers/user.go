package handlers

import (
	"errors"
	"strconv"

	"acc-panel/internal/config"
	"acc-panel/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(cfg *config.Config) *UserHandler {
	return &UserHandler{
		userService: services.NewUserService(cfg),
	}
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// GetUsers returns all users
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetUsers()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get users", "details": err.Error()})
		return
	}

	c.JSON(200, gin.H{"users": users})
}

// CreateUser creates a new user
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := h.userService.CreateUser(req.Username, req.Password, req.FullName, req.Role)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("user_id")
	logAudit(userID.(uint), "create", "user", user.Username, c)

	c.JSON(201, user)
}

// DeleteUser deletes a user
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.userService.DeleteUser(uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(404, gin.H{"error": err.Error()})
		default:
			c.JSON(400, gin.H{"error": err.Error()})
		}
		return
	}

	userID, _ := c.Get("user_id")
	logAudit(userID.(uint), "delete", "user", c.Param("id"), c)

	c.JSON(200, gin.H{"message": "User deleted successfully"})
}
