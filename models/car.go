package models

import "time"

type Transmission string

const (
	TransmissionAutomatic Transmission = "Automatic"
	TransmissionManual    Transmission = "Manual"
)

type FuelType string

const (
	FuelGasoline FuelType = "Gasoline"
	FuelDiesel   FuelType = "Diesel"
	FuelElectric FuelType = "Electric"
	FuelHybrid   FuelType = "Hybrid"
)

// MinCarYear bounds the manufacturing year together with currentYear+1.
const MinCarYear = 1980

type Car struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	LicensePlate string       `gorm:"size:15;uniqueIndex;not null" json:"licensePlate"` // stored uppercase
	Brand        string       `gorm:"not null" json:"brand"`
	Model        string       `gorm:"not null" json:"model"`
	Year         int          `gorm:"not null" json:"year"`
	Color        string       `gorm:"not null" json:"color"`
	Transmission Transmission `gorm:"type:varchar(10);not null" json:"transmission"`
	FuelType     FuelType     `gorm:"type:varchar(10);default:'Gasoline';not null" json:"fuelType"`
	Available    bool         `gorm:"not null;default:true" json:"available"`
	ProviderID   uint         `gorm:"index;not null" json:"provider_id"`
	Provider     *Provider    `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Bookings     []Booking    `gorm:"foreignKey:CarID" json:"bookings,omitempty"`
}
