package user

import (
	userRepo "medivault/database/repository/user"
	"medivault/models"
)

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Language string `json:"language"`
}

// UpdateUserRequest carries a partial profile update.
type UpdateUserRequest struct {
	ID             string  `json:"id"`
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Language       *string `json:"language,omitempty"`
	EmailReminders *bool   `json:"emailReminders,omitempty"`
}

// AuthResponse contains the user's ID and session token.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UserService manages accounts, sessions and push destinations.
type UserService interface {
	Register(req RegisterRequest) (*AuthResponse, error)
	Authenticate(email, password string) (*AuthResponse, error)
	RevokeToken(userID string) error

	GetUserByID(userID string) (*models.User, error)
	UpdateUser(req UpdateUserRequest) (*models.User, error)
	DeleteUser(userID string) error

	RegisterPushSubscription(userID, endpoint, p256dh, auth, userAgent string) (*models.PushSubscription, error)
	RemovePushSubscription(userID, endpoint string) error
	GetPushSubscriptions(userID string) ([]models.PushSubscription, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
