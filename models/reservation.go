package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation is a forward booking. Created PENDING; transitions to ARRIVED
// on check-in (binding a table) or CANCELLED. Terminal states are never
// mutated again, only archived or purged by retention cleanup.
type Reservation struct {
	ID           string            `gorm:"type:varchar(64);primaryKey" json:"id"`
	CustomerName string            `gorm:"type:varchar(255);not null" json:"customer_name"`
	Phone        string            `gorm:"type:varchar(30);not null" json:"phone"`
	Time         string            `gorm:"type:varchar(40);not null" json:"time"`
	GuestCount   int               `gorm:"not null" json:"guest_count"`
	TableID      *string           `gorm:"type:varchar(64)" json:"table_id,omitempty"`
	Status       ReservationStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Note         string            `gorm:"type:text" json:"note,omitempty"`
	Archived     bool              `gorm:"not null;default:false;index" json:"archived"`
	CreatedAt    time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null" json:"updated_at"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
