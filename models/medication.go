// models/medication.go
package models

import "time"

// Medication status values.
const (
	MedicationStatusActive    = "active"
	MedicationStatusStopped   = "stopped"
	MedicationStatusCompleted = "completed"
)

// Medication provenance values.
const (
	MedicationSourceManual    = "manual"
	MedicationSourceExtracted = "extracted"
)

// Medication is a dosing schedule for one drug. Times holds the resolved
// times-of-day ("HH:MM", sorted, unique); it is derived from Frequency unless
// the client supplied explicit times, and is empty only for as-needed
// frequencies.
type Medication struct {
	ID           string     `bson:"id" json:"id"`
	UserID       string     `bson:"userId" json:"userId"`
	Name         string     `bson:"name" json:"name"`
	Dosage       string     `bson:"dosage" json:"dosage"`
	Frequency    string     `bson:"frequency" json:"frequency"`
	Times        []string   `bson:"times" json:"times"`
	StartDate    time.Time  `bson:"startDate" json:"startDate"`
	EndDate      *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Status       string     `bson:"status" json:"status"`
	Instructions string     `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Source       string     `bson:"source" json:"source"`
	DocumentID   string     `bson:"documentId,omitempty" json:"documentId,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// MedicationDraft is what document extraction produces before the user
// confirms it. Times may be empty or malformed; timing resolution falls back
// to frequency defaults in that case.
type MedicationDraft struct {
	Name         string   `json:"name"`
	Dosage       string   `json:"dosage"`
	Frequency    string   `json:"frequency"`
	Times        []string `json:"times,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
}
