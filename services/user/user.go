package user

import (
	"context"
	"fmt"
	"time"

	"medivault/models"
	"medivault/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 7 * 24 * time.Hour

// Register creates an account and opens a session.
func (s *DefaultUserService) Register(req RegisterRequest) (*AuthResponse, error) {
	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with email %s already exists", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	language := req.Language
	if language == "" {
		language = "en"
	}

	u := &models.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   string(hash),
		Language:       language,
		EmailReminders: true,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}
	return s.openSession(u)
}

// Authenticate checks credentials and opens a session.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	return s.openSession(u)
}

// openSession issues a JWT and caches its hash so it can be revoked.
func (s *DefaultUserService) openSession(u *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	ctx := context.Background()
	key := fmt.Sprintf("session:%s", u.ID)
	if err := utils.GetAuthCacheClient().Set(ctx, key, utils.HashToken(token), tokenTTL).Err(); err != nil {
		utils.GetLogger().Error("Failed to cache session", zap.String("userId", u.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to open session")
	}

	return &AuthResponse{
		ID:    u.ID,
		Token: token,
		Name:  u.Name,
		Email: u.Email,
	}, nil
}

// RevokeToken drops the cached session, invalidating the current token.
func (s *DefaultUserService) RevokeToken(userID string) error {
	ctx := context.Background()
	key := fmt.Sprintf("session:%s", userID)
	if err := utils.GetAuthCacheClient().Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to revoke session for user %s: %w", userID, err)
	}
	return nil
}

// GetUserByID retrieves a user.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	return s.Repo.GetByID(userID)
}

// UpdateUser applies a partial profile update.
func (s *DefaultUserService) UpdateUser(req UpdateUserRequest) (*models.User, error) {
	u, err := s.Repo.GetByID(req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil && *req.Email != u.Email {
		other, err := s.Repo.GetByEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, fmt.Errorf("an account with email %s already exists", *req.Email)
		}
		u.Email = *req.Email
	}
	if req.Language != nil {
		u.Language = *req.Language
	}
	if req.EmailReminders != nil {
		u.EmailReminders = *req.EmailReminders
	}

	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes the account and its session.
func (s *DefaultUserService) DeleteUser(userID string) error {
	if err := s.RevokeToken(userID); err != nil {
		utils.GetLogger().Warn("Failed to revoke session on delete", zap.String("userId", userID), zap.Error(err))
	}
	return s.Repo.Delete(userID)
}

// RegisterPushSubscription stores a browser push destination for the user.
func (s *DefaultUserService) RegisterPushSubscription(userID, endpoint, p256dh, auth, userAgent string) (*models.PushSubscription, error) {
	if endpoint == "" || p256dh == "" || auth == "" {
		return nil, fmt.Errorf("push subscription requires endpoint, p256dh and auth")
	}
	sub := models.PushSubscription{
		ID:        uuid.NewString(),
		UserID:    userID,
		Endpoint:  endpoint,
		P256dh:    p256dh,
		Auth:      auth,
		UserAgent: userAgent,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.AddPushSubscription(userID, sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// RemovePushSubscription drops a push destination. Idempotent.
func (s *DefaultUserService) RemovePushSubscription(userID, endpoint string) error {
	return s.Repo.RemovePushSubscription(userID, endpoint)
}

// GetPushSubscriptions lists the user's push destinations.
func (s *DefaultUserService) GetPushSubscriptions(userID string) ([]models.PushSubscription, error) {
	return s.Repo.GetPushSubscriptions(userID)
}
