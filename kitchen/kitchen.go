// Package kitchen computes the derived read-only projections behind the
// kitchen display: per-dish demand, status queues and delivery indicators.
// Everything here is recomputed from live order/table state on each read.
package kitchen

import (
	"sort"

	"github.com/haiminh/hotpot-pos/models"
	"github.com/haiminh/hotpot-pos/statemachine"
)

// DishSource is one table's contribution to an aggregated dish.
type DishSource struct {
	OrderID   string `json:"order_id"`
	TableID   string `json:"table_id"`
	TableName string `json:"table_name"`
	Quantity  int    `json:"quantity"`
	Timestamp int64  `json:"timestamp"`
}

// AggregatedDish is the total demand for one menu item across all open
// sessions.
type AggregatedDish struct {
	MenuItemID    string       `json:"menu_item_id"`
	Name          string       `json:"name"`
	TotalQuantity int          `json:"total_quantity"`
	Sources       []DishSource `json:"sources"`
}

// TicketItem is an order item decorated with its table and order for the
// kitchen queue.
type TicketItem struct {
	models.OrderItem
	OrderID    string                  `json:"order_id"`
	TableID    string                  `json:"table_id"`
	TableName  string                  `json:"table_name"`
	BurnStatus statemachine.BurnStatus `json:"burn_status"`
}

func tableIndex(tables []models.Table) map[string]models.Table {
	byID := make(map[string]models.Table, len(tables))
	for _, t := range tables {
		byID[t.ID] = t
	}
	return byID
}

// AggregateByDish groups every unpaid order's items by menu item, summing
// quantities with a per-table breakdown, sorted by descending demand. The
// aggregation is status-agnostic; callers wanting a "still needed" view
// pre-filter to PENDING/PREPARING before aggregating.
func AggregateByDish(orders []models.Order, tables []models.Table) []AggregatedDish {
	byTable := tableIndex(tables)
	byDish := make(map[string]*AggregatedDish)

	for _, order := range orders {
		if order.IsPaid {
			continue
		}
		table, ok := byTable[order.TableID]
		if !ok {
			continue
		}
		for _, item := range order.Items {
			dish, ok := byDish[item.MenuItemID]
			if !ok {
				dish = &AggregatedDish{MenuItemID: item.MenuItemID, Name: item.Name}
				byDish[item.MenuItemID] = dish
			}
			dish.TotalQuantity += item.Quantity
			dish.Sources = append(dish.Sources, DishSource{
				OrderID:   order.ID,
				TableID:   order.TableID,
				TableName: table.Name,
				Quantity:  item.Quantity,
				Timestamp: item.Timestamp,
			})
		}
	}

	dishes := make([]AggregatedDish, 0, len(byDish))
	for _, dish := range byDish {
		dishes = append(dishes, *dish)
	}
	sort.SliceStable(dishes, func(i, j int) bool {
		return dishes[i].TotalQuantity > dishes[j].TotalQuantity
	})
	return dishes
}

// ItemsByStatus flattens items across unpaid orders matching any of the
// given statuses, oldest first (FIFO kitchen queue). nowMillis feeds the
// burn classification stamped on each ticket.
func ItemsByStatus(orders []models.Order, tables []models.Table, statuses []models.OrderItemStatus, nowMillis int64) []TicketItem {
	byTable := tableIndex(tables)
	wanted := make(map[models.OrderItemStatus]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}

	var tickets []TicketItem
	for _, order := range orders {
		if order.IsPaid {
			continue
		}
		table, ok := byTable[order.TableID]
		if !ok {
			continue
		}
		for _, item := range order.Items {
			if !wanted[item.Status] {
				continue
			}
			tickets = append(tickets, TicketItem{
				OrderItem:  item,
				OrderID:    order.ID,
				TableID:    order.TableID,
				TableName:  table.Name,
				BurnStatus: statemachine.ItemBurnStatus(item, nowMillis),
			})
		}
	}

	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].Timestamp < tickets[j].Timestamp
	})
	return tickets
}

// ReadyCountByTable sums READY quantities per table for the staff
// "needs delivery" badge.
func ReadyCountByTable(orders []models.Order) map[string]int {
	counts := make(map[string]int)
	for _, order := range orders {
		if order.IsPaid {
			continue
		}
		ready := 0
		for _, item := range order.Items {
			if item.Status == models.ItemReady {
				ready += item.Quantity
			}
		}
		if ready > 0 {
			counts[order.TableID] += ready
		}
	}
	return counts
}

// PendingItemCount is the number of not-yet-started lines across all open
// sessions, the kitchen's quick backlog figure.
func PendingItemCount(orders []models.Order) int {
	count := 0
	for _, order := range orders {
		if order.IsPaid {
			continue
		}
		for _, item := range order.Items {
			if item.Status == models.ItemPending {
				count++
			}
		}
	}
	return count
}
