package models

import "time"

// Provider is a rental company owning a fleet of cars.
type Provider struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Address    string    `gorm:"not null" json:"address"`
	District   string    `gorm:"not null" json:"district"`
	Province   string    `gorm:"not null" json:"province"`
	PostalCode string    `gorm:"size:5;not null" json:"postalcode"`
	Tel        string    `gorm:"size:20" json:"tel,omitempty"`
	Region     string    `gorm:"not null" json:"region"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Bookings   []Booking `gorm:"foreignKey:ProviderID" json:"bookings,omitempty"`
}
