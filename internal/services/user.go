package services

import (
	"errors"

	"acc-panel/internal/config"
	"acc-panel/internal/models"

	"gorm.io/gorm"
)

var ErrSeedAdminProtected = errors.New("the seed admin user cannot be deleted")

type UserService struct {
	cfg         *config.Config
	authService *AuthService
}

func NewUserService(cfg *config.Config) *UserService {
	return &UserService{
		cfg:         cfg,
		authService: NewAuthService(cfg),
	}
}

// GetUsers returns all users, newest first
func (s *UserService) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := models.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns a specific user by ID
func (s *UserService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a new user
func (s *UserService) CreateUser(username, password, fullName, role string) (*models.User, error) {
	return s.authService.CreateUser(username, password, fullName, role)
}

// DeleteUser deletes a user. The seed admin and the last remaining admin
// are protected.
func (s *UserService) DeleteUser(id uint) error {
	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.Username == s.cfg.DefaultUser.Username {
		return ErrSeedAdminProtected
	}

	var adminCount int64
	models.DB.Model(&models.User{}).Where("role = ?", "admin").Count(&adminCount)
	if user.Role == "admin" && adminCount <= 1 {
		return errors.New("cannot delete the last admin user")
	}

	return models.DB.Delete(&user).Error
}
