// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/games-api/internal/config"
	"github.com/javajoker/games-api/internal/database"
	"github.com/javajoker/games-api/internal/models"
	"github.com/javajoker/games-api/internal/utils"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenInvalid       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
	now func() time.Time
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,username"`
	Email    string `json:"email" form:"email" validate:"required,email,max=255"`
	Password string `json:"password" form:"password" validate:"required,strong_password"`
}

type SessionResponse struct {
	User         *models.User `json:"user"`
	SessionToken string       `json:"session_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"` // in seconds
}

type APITokenResponse struct {
	APIKey    string    `json:"api_key"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
		now: time.Now,
	}
}

// Register creates an account. Email and username must both be unused;
// the unique indexes settle concurrent registrations.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	db := s.db.WithContext(ctx)

	taken, err := s.exists(db, "email = ?", req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	taken, err = s.exists(db, "username = ?", req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
	}

	// Set password
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent registration
			return nil, s.conflictFor(db, req.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logrus.WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

func (s *AuthService) exists(db *gorm.DB, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}

func (s *AuthService) conflictFor(db *gorm.DB, email string) error {
	if taken, err := s.exists(db, "email = ?", email); err == nil && taken {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

// Login checks the credentials and opens a new session. Unknown email and
// wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*SessionResponse, error) {
	req.Email = strings.TrimSpace(req.Email)

	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	token, err := utils.GenerateSessionJWT(user.ID, user.Username, sessionID, s.cfg.JWT.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	return &SessionResponse{
		User:         &user,
		SessionToken: token,
		TokenType:    "Bearer",
		ExpiresIn:    s.cfg.JWT.SessionTTL * 3600, // Convert hours to seconds
	}, nil
}

// IssueAccessToken creates an API key for the session, replacing any key
// the session already holds. Only the key's hash is stored.
func (s *AuthService) IssueAccessToken(ctx context.Context, userID uint, sessionID string) (*APITokenResponse, error) {
	key, err := utils.GenerateAPIKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}

	token := &models.AccessToken{
		UserID:    userID,
		SessionID: sessionID,
		TokenHash: utils.HashString(key),
		ExpiresAt: s.now().Add(time.Duration(s.cfg.API.TokenTTLMinutes) * time.Minute),
	}

	err = database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&models.AccessToken{}).Error; err != nil {
			return fmt.Errorf("failed to replace API key: %w", err)
		}
		if err := tx.Create(token).Error; err != nil {
			return fmt.Errorf("failed to store API key: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &APITokenResponse{APIKey: key, ExpiresAt: token.ExpiresAt}, nil
}

// ValidateAccessToken resolves a presented API key to its stored record.
func (s *AuthService) ValidateAccessToken(ctx context.Context, key string) (*models.AccessToken, error) {
	if !utils.LooksLikeAPIKey(key) {
		return nil, ErrTokenInvalid
	}

	var token models.AccessToken
	if err := s.db.WithContext(ctx).Where("token_hash = ?", utils.HashString(key)).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if token.Expired(s.now()) {
		return nil, ErrTokenInvalid
	}
	return &token, nil
}

// RevokeSession deletes every API key issued to the user's session.
func (s *AuthService) RevokeSession(ctx context.Context, userID uint, sessionID string) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Delete(&models.AccessToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to revoke session: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// PurgeExpiredTokens removes API keys past their expiry.
func (s *AuthService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at <= ?", s.now()).Delete(&models.AccessToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge expired API keys: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}
