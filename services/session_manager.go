package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/haiminh/hotpot-pos/billing"
	"github.com/haiminh/hotpot-pos/combo"
	"github.com/haiminh/hotpot-pos/models"
	"github.com/haiminh/hotpot-pos/statemachine"
	"github.com/haiminh/hotpot-pos/utils"
)

// SessionManager orchestrates table sessions: opening a table, growing the
// order, checkout and the end-of-day reset. Every multi-step mutation runs
// inside a single transaction so a concurrent writer can never observe (or
// clobber) a half-applied session change.
type SessionManager struct {
	DB *gorm.DB
}

func NewSessionManager(db *gorm.DB) *SessionManager {
	return &SessionManager{DB: db}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// activeOrder loads the single unpaid, unarchived order for a table, newest
// first to tolerate historical duplicates from table moves.
func activeOrder(tx *gorm.DB, tableID string) (*models.Order, error) {
	var order models.Order
	err := tx.Where("table_id = ? AND is_paid = ? AND archived = ?", tableID, false, false).
		Order("created_at desc").
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveOrder
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func loadTable(tx *gorm.DB, tableID string) (*models.Table, error) {
	var table models.Table
	if err := tx.First(&table, "id = ?", tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return &table, nil
}

// StartTableSession opens a dining session: creates an empty unpaid order
// and marks the table occupied, atomically. Fails with ErrTableOccupied if
// the table already has an active order.
func (sm *SessionManager) StartTableSession(tableID string, guestCount int) (*models.Order, error) {
	if guestCount < 1 {
		return nil, ErrInvalidQuantity
	}

	var created models.Order
	err := sm.DB.Transaction(func(tx *gorm.DB) error {
		table, err := loadTable(tx, tableID)
		if err != nil {
			return err
		}

		var open int64
		if err := tx.Model(&models.Order{}).
			Where("table_id = ? AND is_paid = ? AND archived = ?", tableID, false, false).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 || table.CurrentOrderID != nil {
			return ErrTableOccupied
		}

		created = models.Order{
			TableID:     tableID,
			Items:       models.OrderItems{},
			StartTime:   nowMillis(),
			TotalAmount: decimal.Zero,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		return tx.Model(&models.Table{}).Where("id = ?", tableID).
			Updates(map[string]interface{}{
				"status":           models.TableOccupied,
				"guest_count":      guestCount,
				"current_order_id": created.ID,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Session started on table %s (guests=%d, order=%s)", tableID, guestCount, created.ID)
	return &created, nil
}

// AddItemParams describes one line to append to a table's active order.
// VariantUnitPrice overrides the menu price when a combo picker has already
// priced the variant; otherwise the price is derived from the menu row plus
// any selected option surcharges.
type AddItemParams struct {
	MenuItemID       string
	Quantity         int
	Note             string
	SelectedOptions  []string
	VariantUnitPrice *decimal.Decimal
}

// AddItemToOrder appends a new line to the table's active order and
// recomputes the running total in the same write. Every add is a new line;
// identical lines are never merged here.
func (sm *SessionManager) AddItemToOrder(tableID string, params AddItemParams) (*models.Order, error) {
	if params.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var updated models.Order
	err := sm.DB.Transaction(func(tx *gorm.DB) error {
		var menuItem models.MenuItem
		if err := tx.First(&menuItem, "id = ?", params.MenuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMenuItemNotFound
			}
			return err
		}
		if !menuItem.Available {
			return ErrMenuUnavailable
		}

		price := menuItem.Price
		if menuItem.Type == models.TypeCombo {
			for _, name := range params.SelectedOptions {
				if _, ok := menuItem.OptionByName(name); !ok {
					return ErrComboSelection
				}
			}
			if !combo.IsComboValid(menuItem.ComboGroups, groupSelections(menuItem.ComboGroups, params.SelectedOptions)) {
				return ErrComboSelection
			}
			price = combo.VariantPrice(menuItem.Price, params.SelectedOptions, combo.CatalogOf(menuItem.ComboGroups))
		}
		if params.VariantUnitPrice != nil {
			price = *params.VariantUnitPrice
		}

		order, err := activeOrder(tx, tableID)
		if err != nil {
			return err
		}

		order.Items = append(order.Items, models.OrderItem{
			ID:              uuid.NewString(),
			MenuItemID:      menuItem.ID,
			Name:            menuItem.Name,
			Price:           price,
			Quantity:        params.Quantity,
			Note:            params.Note,
			SelectedOptions: params.SelectedOptions,
			Status:          models.ItemPending,
			Timestamp:       nowMillis(),
		})
		order.TotalAmount = billing.CalculateSubtotal(order.Items)

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"items":        order.Items,
				"total_amount": order.TotalAmount,
			}).Error; err != nil {
			return err
		}
		updated = *order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// groupSelections buckets flat option names back into their combo groups so
// per-group cardinality can be checked.
func groupSelections(groups models.ComboGroups, selected []string) map[string][]string {
	byGroup := make(map[string][]string)
	for _, group := range groups {
		for _, opt := range group.Options {
			for _, name := range selected {
				if name == opt.Name {
					byGroup[group.ID] = append(byGroup[group.ID], name)
				}
			}
		}
	}
	return byGroup
}

// UpdateOrderItemStatus transitions one item through the preparation state
// machine, stamping the prep start on PENDING -> PREPARING, and keeps the
// order total in sync (a cancellation removes the line from totals).
func (sm *SessionManager) UpdateOrderItemStatus(orderID, itemID string, newStatus models.OrderItemStatus) (*models.Order, *models.OrderItem, error) {
	var (
		updated models.Order
		changed models.OrderItem
	)
	err := sm.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		item := order.ItemByID(itemID)
		if item == nil {
			return ErrItemNotFound
		}
		if err := statemachine.Apply(item, newStatus, nowMillis()); err != nil {
			return err
		}
		order.TotalAmount = billing.CalculateSubtotal(order.Items)

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"items":        order.Items,
				"total_amount": order.TotalAmount,
			}).Error; err != nil {
			return err
		}
		updated = order
		changed = *item
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &updated, &changed, nil
}

// UpdateOrderItemKitchenNote rewrites the kitchen-internal note on one item.
func (sm *SessionManager) UpdateOrderItemKitchenNote(orderID, itemID, note string) (*models.Order, error) {
	var updated models.Order
	err := sm.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		item := order.ItemByID(itemID)
		if item == nil {
			return ErrItemNotFound
		}
		item.KitchenNote = note

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("items", order.Items).Error; err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RequestBill flags the table for checkout. Idempotent.
func (sm *SessionManager) RequestBill(tableID string) (*models.Table, error) {
	table, err := loadTable(sm.DB, tableID)
	if err != nil {
		return nil, err
	}
	if err := sm.DB.Model(&models.Table{}).Where("id = ?", tableID).
		Update("bill_requested", true).Error; err != nil {
		return nil, err
	}
	table.BillRequested = true
	return table, nil
}

// CheckoutResult is the settled bill for a table session.
type CheckoutResult struct {
	Orders      []models.Order  `json:"orders"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// CheckoutTable settles every unpaid order on the table: VAT is computed on
// the combined total, all orders are marked paid and the table goes DIRTY
// with its session links cleared. When table moves left more than one unpaid
// order behind, tax/final/grand are divided evenly by order count — a
// deliberate simplification, not a per-order VAT split.
func (sm *SessionManager) CheckoutTable(tableID string, method models.PaymentMethod) (*CheckoutResult, error) {
	if !models.IsValidPaymentMethod(method) {
		return nil, ErrInvalidPayment
	}

	var result CheckoutResult
	err := sm.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := loadTable(tx, tableID); err != nil {
			return err
		}

		var open []models.Order
		if err := tx.Where("table_id = ? AND is_paid = ? AND archived = ?", tableID, false, false).
			Find(&open).Error; err != nil {
			return err
		}
		if len(open) == 0 {
			return ErrNoActiveOrder
		}

		total := decimal.Zero
		for _, order := range open {
			total = total.Add(order.TotalAmount)
		}
		total = total.Round(2)
		tax := billing.CalculateVAT(total, billing.DefaultVATRate)
		grand := total.Add(tax).Round(2)

		count := decimal.NewFromInt(int64(len(open)))
		perFinal := total.Div(count).Round(2)
		perTax := tax.Div(count).Round(2)
		perGrand := grand.Div(count).Round(2)

		for i := range open {
			if err := tx.Model(&models.Order{}).Where("id = ?", open[i].ID).
				Updates(map[string]interface{}{
					"is_paid":        true,
					"payment_method": method,
					"final_amount":   perFinal,
					"tax_amount":     perTax,
					"grand_total":    perGrand,
				}).Error; err != nil {
				return err
			}
			open[i].IsPaid = true
			open[i].PaymentMethod = method
			open[i].FinalAmount = &perFinal
			open[i].TaxAmount = &perTax
			open[i].GrandTotal = &perGrand
		}

		if err := tx.Model(&models.Table{}).Where("id = ?", tableID).
			Updates(map[string]interface{}{
				"status":           models.TableDirty,
				"current_order_id": nil,
				"guest_count":      nil,
				"bill_requested":   false,
			}).Error; err != nil {
			return err
		}

		result = CheckoutResult{
			Orders:      open,
			TotalAmount: total,
			TaxAmount:   tax,
			GrandTotal:  grand,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Table %s checked out (%s, total=%s, grand=%s)",
		tableID, method, result.TotalAmount, result.GrandTotal)
	return &result, nil
}

// CloseTable marks a cleaned DIRTY table EMPTY again.
func (sm *SessionManager) CloseTable(tableID string) (*models.Table, error) {
	var closed models.Table
	err := sm.DB.Transaction(func(tx *gorm.DB) error {
		table, err := loadTable(tx, tableID)
		if err != nil {
			return err
		}
		if table.Status != models.TableDirty {
			return ErrTableNotDirty
		}
		if err := tx.Model(&models.Table{}).Where("id = ?", tableID).
			Updates(map[string]interface{}{
				"status":      models.TableEmpty,
				"guest_count": nil,
			}).Error; err != nil {
			return err
		}
		table.Status = models.TableEmpty
		table.GuestCount = nil
		closed = *table
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &closed, nil
}

// MoveTable relocates the source table's active order to the destination:
// the order is rebound, the source reset to EMPTY and the destination
// occupied, all in one transaction so two tables can never reference the
// same order. The guest count is not carried over; staff re-enter it at the
// destination. A source with no active order is a no-op returning nil.
func (sm *SessionManager) MoveTable(fromTableID, toTableID string) (*models.Order, error) {
	if fromTableID == toTableID {
		return nil, ErrSameTable
	}

	var moved *models.Order
	err := sm.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := loadTable(tx, fromTableID); err != nil {
			return err
		}
		dest, err := loadTable(tx, toTableID)
		if err != nil {
			return err
		}
		if dest.CurrentOrderID != nil {
			return ErrTableOccupied
		}

		order, err := activeOrder(tx, fromTableID)
		if errors.Is(err, ErrNoActiveOrder) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("table_id", toTableID).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Table{}).Where("id = ?", fromTableID).
			Updates(map[string]interface{}{
				"status":           models.TableEmpty,
				"current_order_id": nil,
				"guest_count":      nil,
			}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Table{}).Where("id = ?", toTableID).
			Updates(map[string]interface{}{
				"status":           models.TableOccupied,
				"current_order_id": order.ID,
			}).Error; err != nil {
			return err
		}
		order.TableID = toTableID
		moved = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	if moved != nil {
		utils.InfoLogger.Printf("Order %s moved from table %s to %s", moved.ID, fromTableID, toTableID)
	}
	return moved, nil
}

// ApplyDiscount stores the discount and the resulting final amount on the
// order. Applying one to an already-paid order is permitted but has no
// effect on the settled bill.
func (sm *SessionManager) ApplyDiscount(orderID string, discount models.Discount) (*models.Order, error) {
	if !billing.ValidDiscount(discount) {
		return nil, ErrInvalidDiscount
	}

	var updated models.Order
	err := sm.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		final := billing.ApplyDiscount(order.TotalAmount, &discount)
		// Struct update so the discount passes through the JSON serializer.
		if err := tx.Model(&models.Order{}).Where("id = ?", orderID).
			Select("discount", "final_amount").
			Updates(models.Order{Discount: &discount, FinalAmount: &final}).Error; err != nil {
			return err
		}
		order.Discount = &discount
		order.FinalAmount = &final
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// MarkItemOutOfStock flips the menu item's availability off. Items already
// sitting in open orders are not retracted.
func (sm *SessionManager) MarkItemOutOfStock(menuItemID string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := sm.DB.First(&item, "id = ?", menuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	if err := sm.DB.Model(&models.MenuItem{}).Where("id = ?", menuItemID).
		Update("available", false).Error; err != nil {
		return nil, err
	}
	item.Available = false
	return &item, nil
}

// CloseDayResult reports what the end-of-day reset touched.
type CloseDayResult struct {
	TablesReset          int64  `json:"tables_reset"`
	OrdersArchived       int64  `json:"orders_archived"`
	ReservationsArchived int64  `json:"reservations_archived"`
	Message              string `json:"message"`
}

// CloseDay resets every table to EMPTY, archives all still-unpaid orders
// and all non-pending reservations, in one all-or-nothing transaction. A
// half-applied day close would leave the floor inconsistent, so nothing
// commits unless everything does.
func (sm *SessionManager) CloseDay() (*CloseDayResult, error) {
	var result CloseDayResult
	err := sm.DB.Transaction(func(tx *gorm.DB) error {
		reset := tx.Model(&models.Table{}).
			Where("status <> ? OR current_order_id IS NOT NULL OR bill_requested = ?", models.TableEmpty, true).
			Updates(map[string]interface{}{
				"status":           models.TableEmpty,
				"current_order_id": nil,
				"reservation_id":   nil,
				"guest_count":      nil,
				"bill_requested":   false,
			})
		if reset.Error != nil {
			return reset.Error
		}
		result.TablesReset = reset.RowsAffected

		orders := tx.Model(&models.Order{}).
			Where("is_paid = ? AND archived = ?", false, false).
			Update("archived", true)
		if orders.Error != nil {
			return orders.Error
		}
		result.OrdersArchived = orders.RowsAffected

		reservations := tx.Model(&models.Reservation{}).
			Where("status <> ? AND archived = ?", models.ReservationPending, false).
			Update("archived", true)
		if reservations.Error != nil {
			return reservations.Error
		}
		result.ReservationsArchived = reservations.RowsAffected

		result.Message = fmt.Sprintf("Day closed: %d tables reset, %d orders archived, %d reservations archived",
			result.TablesReset, result.OrdersArchived, result.ReservationsArchived)
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Println(result.Message)
	return &result, nil
}

// CleanupResult reports what a retention sweep deleted.
type CleanupResult struct {
	OrdersDeleted       int64 `json:"orders_deleted"`
	ReservationsDeleted int64 `json:"reservations_deleted"`
	Total               int64 `json:"total"`
}

// DeleteOldData permanently removes paid orders and cancelled reservations
// older than the cutoff. Irreversible.
func (sm *SessionManager) DeleteOldData(daysOld int) (*CleanupResult, error) {
	if daysOld < 1 {
		daysOld = 1
	}
	cutoff := time.Now().AddDate(0, 0, -daysOld)

	var result CleanupResult
	err := sm.DB.Transaction(func(tx *gorm.DB) error {
		orders := tx.Where("is_paid = ? AND created_at < ?", true, cutoff).
			Delete(&models.Order{})
		if orders.Error != nil {
			return orders.Error
		}
		result.OrdersDeleted = orders.RowsAffected

		reservations := tx.Where("status = ? AND created_at < ?", models.ReservationCancelled, cutoff).
			Delete(&models.Reservation{})
		if reservations.Error != nil {
			return reservations.Error
		}
		result.ReservationsDeleted = reservations.RowsAffected
		result.Total = result.OrdersDeleted + result.ReservationsDeleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Retention cleanup removed %d records older than %d day(s)", result.Total, daysOld)
	return &result, nil
}

// RevenueClearResult reports the outcome of wiping today's orders.
type RevenueClearResult struct {
	OrdersDeleted  int64           `json:"orders_deleted"`
	RevenueCleared decimal.Decimal `json:"revenue_cleared"`
}

// ClearTodayRevenue deletes every order created today outright and reports
// the revenue removed. Irreversible.
func (sm *SessionManager) ClearTodayRevenue() (*RevenueClearResult, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	result := RevenueClearResult{RevenueCleared: decimal.Zero}
	err := sm.DB.Transaction(func(tx *gorm.DB) error {
		var todays []models.Order
		if err := tx.Where("created_at >= ?", todayStart).Find(&todays).Error; err != nil {
			return err
		}
		for _, order := range todays {
			result.RevenueCleared = result.RevenueCleared.Add(order.TotalAmount)
		}

		deleted := tx.Where("created_at >= ?", todayStart).Delete(&models.Order{})
		if deleted.Error != nil {
			return deleted.Error
		}
		result.OrdersDeleted = deleted.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Cleared today's revenue: %d orders (%s)", result.OrdersDeleted, result.RevenueCleared)
	return &result, nil
}
