package medication

import (
	"time"

	medicationRepo "medivault/database/repository/medication"
	reminderRepo "medivault/database/repository/reminder"
	"medivault/models"
)

// CreateMedicationRequest carries the fields a client may set on creation.
// Times is optional; when absent or malformed the timing set is derived from
// Frequency.
type CreateMedicationRequest struct {
	UserID       string     `json:"userId"`
	Name         string     `json:"name" binding:"required"`
	Dosage       string     `json:"dosage"`
	Frequency    string     `json:"frequency" binding:"required"`
	Times        []string   `json:"times,omitempty"`
	StartDate    time.Time  `json:"startDate" binding:"required"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	Instructions string     `json:"instructions,omitempty"`
	Source       string     `json:"source,omitempty"`
	DocumentID   string     `json:"documentId,omitempty"`
}

// UpdateMedicationRequest carries a partial update. Nil fields are left
// unchanged. Changing any schedule-affecting field (frequency, times,
// startDate, endDate, status) triggers reminder regeneration.
type UpdateMedicationRequest struct {
	ID           string     `json:"id"`
	Name         *string    `json:"name,omitempty"`
	Dosage       *string    `json:"dosage,omitempty"`
	Frequency    *string    `json:"frequency,omitempty"`
	Times        []string   `json:"times,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	ClearEndDate bool       `json:"clearEndDate,omitempty"`
	Status       *string    `json:"status,omitempty"`
	Instructions *string    `json:"instructions,omitempty"`
}

// MedicationService manages medications and drives reminder regeneration.
type MedicationService interface {
	CreateMedication(req CreateMedicationRequest) (*models.Medication, error)
	UpdateMedication(req UpdateMedicationRequest) (*models.Medication, error)
	GetMedicationByID(id string) (*models.Medication, error)
	GetMedicationsByUser(userID string) ([]models.Medication, error)
	DeleteMedication(id string) error

	// RegenerateReminders recomputes the medication's pending reminder set.
	// This is the sole mutation path into the reminder pipeline from
	// outside the poller.
	RegenerateReminders(medicationID string) error

	ListReminders(medicationID string) ([]models.Reminder, error)
	ListDueReminders(now time.Time) ([]models.Reminder, error)
}

// DefaultMedicationService is the production implementation.
type DefaultMedicationService struct {
	Repo       medicationRepo.MedicationRepository
	Reminders  reminderRepo.ReminderRepository
	WindowDays int
}
