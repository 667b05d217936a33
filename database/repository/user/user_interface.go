package userRepo

import (
	"medivault/models"
)

// UserRepository defines persistence for users and their push subscriptions.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id string) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)

	// Push subscription management. RemovePushSubscription is idempotent:
	// removing an endpoint that is already gone is not an error, so
	// concurrent invalidations of the same destination are safe.
	AddPushSubscription(userID string, sub models.PushSubscription) error
	RemovePushSubscription(userID, endpoint string) error
	GetPushSubscriptions(userID string) ([]models.PushSubscription, error)
}
