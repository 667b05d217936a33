// models/document.go
package models

import "time"

// HealthDocument is the metadata record for an uploaded file (lab report,
// prescription, discharge letter). The file itself lives in Cloudinary under
// PublicID.
type HealthDocument struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	Title       string    `bson:"title" json:"title"`
	FileName    string    `bson:"fileName" json:"fileName"`
	PublicID    string    `bson:"publicId" json:"publicId"`
	ContentType string    `bson:"contentType" json:"contentType"`
	Size        int64     `bson:"size" json:"size"`
	Extracted   bool      `bson:"extracted" json:"extracted"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
