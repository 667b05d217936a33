package reminderRepo

import (
	"errors"
	"time"

	"medivault/models"
)

// ErrNotPending is returned by SetStatus when the reminder does not exist or
// has already reached a terminal status. Transitions are one-directional:
// once a reminder is sent or skipped it never changes again.
var ErrNotPending = errors.New("reminder is not pending")

// ReminderRepository defines persistence for reminder instances.
type ReminderRepository interface {
	Create(rem *models.Reminder) error
	GetByMedication(medicationID string) ([]models.Reminder, error)

	// ListDue returns all pending reminders with scheduledTime <= now,
	// ordered ascending by scheduledTime.
	ListDue(now time.Time) ([]models.Reminder, error)

	// SetStatus transitions a pending reminder to sent or skipped. Returns
	// ErrNotPending when the reminder is missing or already terminal.
	SetStatus(id, status string, sentAt *time.Time) error

	// ReplacePending discards the medication's still-pending reminders and
	// inserts the freshly generated set. Sent and skipped rows are history
	// and stay untouched.
	ReplacePending(medicationID string, fresh []models.Reminder) error

	// DeleteByMedication removes all of a medication's reminders, history
	// included. Only called when the owning medication is deleted.
	DeleteByMedication(medicationID string) error
}
