package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ComboOption is one selectable option inside a combo group. Price is an
// optional surcharge added on top of the combo base price.
type ComboOption struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// ComboGroup is a named choice group with selection cardinality bounds.
// A selection set for the group is valid iff its size is within [Min, Max].
type ComboGroup struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Min     int           `json:"min"`
	Max     int           `json:"max"`
	Options []ComboOption `json:"options"`
}

// ComboGroups is stored as a JSON column on the menu row.
type ComboGroups []ComboGroup

func (g ComboGroups) Value() (driver.Value, error) {
	if g == nil {
		g = ComboGroups{}
	}
	return json.Marshal(g)
}

func (g *ComboGroups) Scan(src interface{}) error {
	*g = decodeJSONColumn[ComboGroups](src)
	return nil
}

// StringList is a JSON-encoded array of strings (ingredients, option labels).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	*l = decodeJSONColumn[StringList](src)
	return nil
}

// MenuItem is a sellable product. Orders snapshot name and price at order
// time, so editing a menu row never retroactively changes placed orders.
type MenuItem struct {
	ID            string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Category      ProductCategory `gorm:"type:varchar(20);not null" json:"category"`
	Image         string          `gorm:"type:varchar(512)" json:"image"`
	Description   string          `gorm:"type:text" json:"description,omitempty"`
	Available     bool            `gorm:"not null" json:"available"`
	Type          ItemType        `gorm:"type:varchar(10);not null;default:'SINGLE'" json:"type"`
	ComboGroups   ComboGroups     `gorm:"type:text" json:"combo_groups"`
	IsRecommended bool            `gorm:"not null;default:false" json:"is_recommended"`
	Ingredients   StringList      `gorm:"type:text" json:"ingredients"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}

func (MenuItem) TableName() string { return "menu" }

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// OptionByName resolves a combo option across all groups by its display
// name, the key order items carry in selected_options.
func (m *MenuItem) OptionByName(name string) (ComboOption, bool) {
	for _, group := range m.ComboGroups {
		for _, opt := range group.Options {
			if opt.Name == name {
				return opt, true
			}
		}
	}
	return ComboOption{}, false
}

// decodeJSONColumn parses a stored JSON column defensively: NULL, empty or
// malformed values degrade to the zero value rather than failing the read.
func decodeJSONColumn[T any](src interface{}) T {
	var out T
	if src == nil {
		return out
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return out
	}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		var zero T
		return zero
	}
	return out
}
