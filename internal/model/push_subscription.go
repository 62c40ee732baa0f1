package model

import "time"

// PushSubscription holds the delivery details of one browser push
// subscription together with the rooms it wants fault reports from.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Rooms []*Room `gorm:"many2many:subscription_room_mapping;constraint:OnDelete:CASCADE"`
}
