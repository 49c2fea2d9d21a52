package services

import (
	"errors"
	"time"

	"acc-panel/internal/config"
	"acc-panel/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)

type AuthService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.Security.BcryptCost)
	return string(bytes), err
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// CreateUser creates a new user
func (s *AuthService) CreateUser(username, password, fullName, role string) (*models.User, error) {
	var existingUser models.User
	if err := models.DB.Where("username = ?", username).First(&existingUser).Error; err == nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = "user"
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hashedPassword,
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
	}

	if err := models.DB.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies credentials and returns the user.
// Inactive users cannot log in.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := models.DB.Where("username = ? AND is_active = ?", username, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// EnsureSeedAdmin creates the seed admin user on first boot if it is missing.
// The seed admin always exists and is exempt from deletion.
func (s *AuthService) EnsureSeedAdmin() error {
	var existing models.User
	err := models.DB.Where("username = ?", s.cfg.DefaultUser.Username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	_, err = s.CreateUser(
		s.cfg.DefaultUser.Username,
		s.cfg.DefaultUser.Password,
		s.cfg.DefaultUser.FullName,
		"admin",
	)
	return err
}

// CreateSession creates a new session record
func (s *AuthService) CreateSession(userID uint, token string, expiresAt time.Time) error {
	session := &models.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	return models.DB.Create(session).Error
}

// GetSession retrieves a non-expired session by token
func (s *AuthService) GetSession(token string) (*models.Session, error) {
	var session models.Session
	if err := models.DB.Where("token = ? AND expires_at > ?", token, time.Now()).Preload("User").First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession deletes a session
func (s *AuthService) DeleteSession(token string) error {
	return models.DB.Where("token = ?", token).Delete(&models.Session{}).Error
}

// DeleteExpiredSessions removes expired sessions
func (s *AuthService) DeleteExpiredSessions() error {
	return models.DB.Where("expires_at < ?", time.Now()).Delete(&models.Session{}).Error
}
