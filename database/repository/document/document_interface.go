package documentRepo

import (
	"medivault/models"
)

// DocumentRepository defines persistence for health-document metadata.
type DocumentRepository interface {
	Create(doc *models.HealthDocument) error
	Update(doc *models.HealthDocument) error
	Delete(id string) error
	GetByID(id string) (*models.HealthDocument, error)
	GetByUserID(userID string) ([]models.HealthDocument, error)
}
