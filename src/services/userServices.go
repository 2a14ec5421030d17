package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/museum-catalog/museum-backend/src/models"
)

// TokenTTL is the lifetime of a curator token.
const TokenTTL = 12 * time.Hour

type UserService struct {
	db        *gorm.DB
	secretKey []byte
	now       func() time.Time
}

// NewUserService creates a new instance of UserService signing tokens with secretKey
func NewUserService(db *gorm.DB, secretKey string) *UserService {
	return &UserService{db: db, secretKey: []byte(secretKey), now: time.Now}
}

// GetAllUsers retrieves all curator accounts
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.UserModel, error) {
	var users []models.UserModel
	if err := s.db.WithContext(ctx).Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser hashes the password and stores a new curator account
func (s *UserService) CreateUser(ctx context.Context, username, password string) (*models.UserModel, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.UserModel{}).Where("username = ?", username).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.UserModel{Username: username, Password: string(hashedPassword)}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureUser creates the account when it does not exist yet. It reports
// whether an account was created.
func (s *UserService) EnsureUser(ctx context.Context, username, password string) (bool, error) {
	_, err := s.CreateUser(ctx, username, password)
	if errors.Is(err, ErrUsernameTaken) {
		return false, nil
	}
	return err == nil, err
}

// DeleteUser deletes a curator account by ID
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.UserModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AuthenticateUser checks user credentials and returns a signed JWT if valid
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (string, error) {
	var user models.UserModel
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"id":  user.ID,
		"sub": user.Username,
		"exp": s.now().Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}
