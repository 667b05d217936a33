package medicationRepo

import (
	"medivault/models"
)

// MedicationRepository defines persistence for medications.
type MedicationRepository interface {
	Create(med *models.Medication) error
	Update(med *models.Medication) error
	Delete(id string) error
	GetByID(id string) (*models.Medication, error)
	GetByUserID(userID string) ([]models.Medication, error)
}
