// models/reminder.go
package models

import "time"

// Reminder status values. A reminder starts pending and moves exactly once
// to sent or skipped, never back.
const (
	ReminderStatusPending = "pending"
	ReminderStatusSent    = "sent"
	ReminderStatusSkipped = "skipped"
)

// Reminder is one concrete future notification for a medication dose.
// UserID is denormalized from the medication so dispatch does not need a
// medication lookup to find the destinations.
type Reminder struct {
	ID            string     `bson:"id" json:"id"`
	MedicationID  string     `bson:"medicationId" json:"medicationId"`
	UserID        string     `bson:"userId" json:"userId"`
	ScheduledTime time.Time  `bson:"scheduledTime" json:"scheduledTime"`
	Status        string     `bson:"status" json:"status"`
	SentAt        *time.Time `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
}
