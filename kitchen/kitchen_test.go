package kitchen

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/haiminh/hotpot-pos/models"
	"github.com/haiminh/hotpot-pos/statemachine"
)

func fixtureTables() []models.Table {
	return []models.Table{
		{ID: "t1", Name: "Table 1"},
		{ID: "t2", Name: "Table 2"},
	}
}

func fixtureOrders() []models.Order {
	price := decimal.NewFromInt(50000)
	return []models.Order{
		{
			ID:      "o1",
			TableID: "t1",
			Items: models.OrderItems{
				{ID: "i1", MenuItemID: "beef", Name: "Beef Brisket", Price: price, Quantity: 2, Status: models.ItemPending, Timestamp: 100},
				{ID: "i2", MenuItemID: "tofu", Name: "Fried Tofu", Price: price, Quantity: 1, Status: models.ItemReady, Timestamp: 200},
			},
		},
		{
			ID:      "o2",
			TableID: "t2",
			Items: models.OrderItems{
				{ID: "i3", MenuItemID: "beef", Name: "Beef Brisket", Price: price, Quantity: 3, Status: models.ItemPreparing, Timestamp: 50},
			},
		},
	}
}

func TestAggregateByDishSumsAcrossTables(t *testing.T) {
	dishes := AggregateByDish(fixtureOrders(), fixtureTables())

	assert.Len(t, dishes, 2)
	// Busiest dish first.
	assert.Equal(t, "beef", dishes[0].MenuItemID)
	assert.Equal(t, 5, dishes[0].TotalQuantity)
	assert.Len(t, dishes[0].Sources, 2)
	assert.Equal(t, "tofu", dishes[1].MenuItemID)
	assert.Equal(t, 1, dishes[1].TotalQuantity)
}

func TestAggregateByDishSkipsPaidOrders(t *testing.T) {
	orders := fixtureOrders()
	orders[1].IsPaid = true

	dishes := AggregateByDish(orders, fixtureTables())

	assert.Equal(t, 2, dishes[0].TotalQuantity)
	assert.Len(t, dishes[0].Sources, 1)
}

func TestAggregateByDishSkipsUnknownTables(t *testing.T) {
	orders := fixtureOrders()
	orders[0].TableID = "ghost"

	dishes := AggregateByDish(orders, fixtureTables())

	assert.Len(t, dishes, 1)
	assert.Equal(t, "beef", dishes[0].MenuItemID)
	assert.Equal(t, 3, dishes[0].TotalQuantity)
}

func TestItemsByStatusFIFO(t *testing.T) {
	tickets := ItemsByStatus(fixtureOrders(), fixtureTables(),
		[]models.OrderItemStatus{models.ItemPending, models.ItemPreparing}, 0)

	assert.Len(t, tickets, 2)
	// Oldest timestamp first across orders.
	assert.Equal(t, "i3", tickets[0].ID)
	assert.Equal(t, "Table 2", tickets[0].TableName)
	assert.Equal(t, "i1", tickets[1].ID)
}

func TestItemsByStatusDecoratesBurn(t *testing.T) {
	const minute = int64(60000)
	orders := []models.Order{{
		ID:      "o1",
		TableID: "t1",
		Items: models.OrderItems{
			{ID: "slow", Status: models.ItemPreparing, Timestamp: 0, PrepStartTime: 0, Quantity: 1},
		},
	}}

	tickets := ItemsByStatus(orders, fixtureTables(),
		[]models.OrderItemStatus{models.ItemPreparing}, 16*minute)

	assert.Len(t, tickets, 1)
	assert.Equal(t, statemachine.BurnRed, tickets[0].BurnStatus)
}

func TestReadyCountByTable(t *testing.T) {
	counts := ReadyCountByTable(fixtureOrders())

	assert.Equal(t, 1, counts["t1"])
	_, exists := counts["t2"]
	assert.False(t, exists, "tables with nothing ready are omitted")
}

func TestPendingItemCount(t *testing.T) {
	assert.Equal(t, 1, PendingItemCount(fixtureOrders()))
}
