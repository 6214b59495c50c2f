package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is a staff credential record used for audit attribution.
// The PIN is stored as entered; uniqueness is best effort via the
// generator's existence check, not a database constraint.
type Employee struct {
	ID        string         `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Role      Role           `gorm:"type:varchar(20);not null" json:"role"`
	PinCode   string         `gorm:"type:varchar(20);not null;index" json:"pin_code"`
	Status    EmployeeStatus `gorm:"type:varchar(10);not null;default:'ACTIVE'" json:"status"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
