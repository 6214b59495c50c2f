package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is one ordered line. It lives inside the order's JSON-encoded
// items column, not in its own table: every item mutation rewrites the whole
// collection inside a transaction, keeping total_amount in sync with it.
//
// Name and Price are snapshots taken at order time (combo surcharge
// included), so later menu edits never change a placed order.
type OrderItem struct {
	ID              string          `json:"id"`
	MenuItemID      string          `json:"menu_item_id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	Note            string          `json:"note,omitempty"`
	KitchenNote     string          `json:"kitchen_note,omitempty"`
	SelectedOptions StringList      `json:"selected_options,omitempty"`
	Status          OrderItemStatus `json:"status"`
	Timestamp       int64           `json:"timestamp"`
	PrepStartTime   int64           `json:"prep_start_time,omitempty"`
}

// OrderItems is the nested collection persisted as JSON text on the order
// row. A malformed stored value degrades to an empty list on read.
type OrderItems []OrderItem

func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		items = OrderItems{}
	}
	return json.Marshal(items)
}

func (items *OrderItems) Scan(src interface{}) error {
	*items = decodeJSONColumn[OrderItems](src)
	return nil
}

// Discount is a tagged value applied to the order subtotal:
// PERCENT (0-100) or FIXED (absolute amount). Stored as a JSON object via
// the gorm serializer; it cannot implement driver.Valuer itself because the
// field name Value would collide with the interface method.
type Discount struct {
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// Order is one dining session's running tab. Exactly one unpaid, unarchived
// order exists per table while a session is open. TotalAmount always equals
// the subtotal over non-cancelled items; every write that touches Items
// recomputes it in the same transaction.
type Order struct {
	ID            string           `gorm:"type:varchar(64);primaryKey" json:"id"`
	TableID       string           `gorm:"type:varchar(64);not null;index" json:"table_id"`
	Items         OrderItems       `gorm:"type:text" json:"items"`
	StartTime     int64            `gorm:"not null" json:"start_time"`
	TotalAmount   decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	IsPaid        bool             `gorm:"not null;default:false;index" json:"is_paid"`
	PaymentMethod PaymentMethod    `gorm:"type:varchar(10)" json:"payment_method,omitempty"`
	Discount      *Discount        `gorm:"type:text;serializer:json" json:"discount,omitempty"`
	FinalAmount   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"final_amount,omitempty"`
	TaxAmount     *decimal.Decimal `gorm:"type:decimal(12,2)" json:"tax_amount,omitempty"`
	GrandTotal    *decimal.Decimal `gorm:"type:decimal(12,2)" json:"grand_total,omitempty"`
	Archived      bool             `gorm:"not null;default:false;index" json:"archived"`
	CreatedAt     time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"not null" json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// ItemByID returns a pointer into Items for in-place mutation.
func (o *Order) ItemByID(itemID string) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}
