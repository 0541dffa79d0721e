package models

import "time"

// Role is the closed set of account roles. Authorization sites switch on
// these constants rather than comparing raw strings.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleRenter Role = "car-renter"
	RoleOwner  Role = "car-owner"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleRenter, RoleOwner:
		return true
	}
	return false
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Telephone string    `gorm:"size:20" json:"telephone"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	Role      Role      `gorm:"type:varchar(20);default:'car-renter';not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Bookings  []Booking `gorm:"foreignKey:UserID" json:"bookings,omitempty"`
}
