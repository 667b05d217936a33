// models/user.go
package models

import "time"

// User represents an account holder. All records in the system hang off a
// single user; there are no shared or family accounts.
type User struct {
	ID             string             `bson:"id" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	PasswordHash   string             `bson:"passwordHash" json:"-"`
	Language       string             `bson:"language" json:"language"` // "en" or "de"
	EmailReminders bool               `bson:"emailReminders" json:"emailReminders"`
	Subscriptions  []PushSubscription `bson:"subscriptions" json:"subscriptions,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PushSubscription stores a browser Web Push subscription. A subscription is
// owned by exactly one user and is deleted when the push service reports it
// gone.
type PushSubscription struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Endpoint  string    `bson:"endpoint" json:"endpoint"`
	P256dh    string    `bson:"p256dh" json:"p256dh"` // key-exchange public key
	Auth      string    `bson:"auth" json:"auth"`     // auth secret
	UserAgent string    `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
