package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Position is the table's spot on the floor map.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p *Position) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *Position) Scan(src interface{}) error {
	if src == nil {
		return nil
	}
	*p = decodeJSONColumn[Position](src)
	return nil
}

// Table is a physical seating unit.
//
// Status OCCUPIED implies CurrentOrderID references the table's single
// unpaid order; EMPTY implies no current order and no guest count.
// Lifecycle: EMPTY -> OCCUPIED -> DIRTY -> EMPTY, or
// EMPTY -> RESERVED -> OCCUPIED via reservation check-in.
type Table struct {
	ID             string      `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name           string      `gorm:"type:varchar(100);not null" json:"name"`
	Status         TableStatus `gorm:"type:varchar(20);not null;default:'EMPTY'" json:"status"`
	GuestCount     *int        `json:"guest_count,omitempty"`
	BillRequested  bool        `gorm:"not null;default:false" json:"bill_requested"`
	CurrentOrderID *string     `gorm:"type:varchar(64)" json:"current_order_id,omitempty"`
	ReservationID  *string     `gorm:"type:varchar(64)" json:"reservation_id,omitempty"`
	Position       *Position   `gorm:"type:text" json:"position,omitempty"`
	Section        string      `gorm:"type:varchar(100)" json:"section,omitempty"`
	CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"not null" json:"updated_at"`
}

func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
