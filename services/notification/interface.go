package notification

import (
	"context"

	medicationRepo "medivault/database/repository/medication"
	userRepo "medivault/database/repository/user"
	"medivault/models"
)

// DispatchResult is the aggregate outcome of one reminder's delivery across
// all of the owner's destinations.
type DispatchResult int

const (
	// ResultDelivered: at least one channel succeeded.
	ResultDelivered DispatchResult = iota
	// ResultRetry: no success, but at least one transient failure remains.
	ResultRetry
	// ResultSkipped: every destination failed permanently (or none exist).
	ResultSkipped
)

// NotificationService routes a due reminder's delivery across the owning
// user's destinations.
type NotificationService interface {
	DispatchReminder(ctx context.Context, rem models.Reminder) (DispatchResult, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users       userRepo.UserRepository
	Medications medicationRepo.MedicationRepository
	Push        PushChannel
	Email       EmailChannel
}
