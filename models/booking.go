package models

import "time"

// Booking reserves one car for one user. ProviderID is copied from the car
// at creation time and rewritten whenever the booking moves to another car,
// so provider-level queries never need the join.
type Booking struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Date       time.Time `gorm:"not null" json:"date"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	CarID      uint      `gorm:"index;not null" json:"car_id"`
	Car        *Car      `gorm:"foreignKey:CarID" json:"car,omitempty"`
	ProviderID uint      `gorm:"index;not null" json:"provider_id"`
	CreatedAt  time.Time `json:"created_at"`
}
