package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haiminh/hotpot-pos/models"
)

func TestHappyPathTransitions(t *testing.T) {
	assert.NoError(t, CanTransition(models.ItemPending, models.ItemPreparing))
	assert.NoError(t, CanTransition(models.ItemPreparing, models.ItemReady))
	assert.NoError(t, CanTransition(models.ItemReady, models.ItemServed))
}

func TestCancellableStates(t *testing.T) {
	assert.NoError(t, CanTransition(models.ItemPending, models.ItemCancelled))
	assert.NoError(t, CanTransition(models.ItemPreparing, models.ItemCancelled))
	assert.NoError(t, CanTransition(models.ItemReady, models.ItemCancelled))
}

func TestTerminalStates(t *testing.T) {
	for _, to := range []models.OrderItemStatus{
		models.ItemPending, models.ItemPreparing, models.ItemReady, models.ItemCancelled,
	} {
		assert.ErrorIs(t, CanTransition(models.ItemServed, to), ErrInvalidTransition)
		assert.ErrorIs(t, CanTransition(models.ItemCancelled, to), ErrInvalidTransition)
	}
}

func TestNoSkippingStates(t *testing.T) {
	assert.ErrorIs(t, CanTransition(models.ItemPending, models.ItemReady), ErrInvalidTransition)
	assert.ErrorIs(t, CanTransition(models.ItemPending, models.ItemServed), ErrInvalidTransition)
	assert.ErrorIs(t, CanTransition(models.ItemPreparing, models.ItemPending), ErrInvalidTransition)
}

func TestApplyStampsPrepStartOnce(t *testing.T) {
	item := models.OrderItem{Status: models.ItemPending, Timestamp: 1000}

	assert.NoError(t, Apply(&item, models.ItemPreparing, 5000))
	assert.Equal(t, int64(5000), item.PrepStartTime)

	assert.NoError(t, Apply(&item, models.ItemReady, 9000))
	assert.Equal(t, int64(5000), item.PrepStartTime, "prep start must not move after first stamp")
}

func TestApplyRejectsInvalid(t *testing.T) {
	item := models.OrderItem{Status: models.ItemServed}
	assert.ErrorIs(t, Apply(&item, models.ItemPreparing, 1), ErrInvalidTransition)
	assert.Equal(t, models.ItemServed, item.Status)
}

func TestValidTransitionsFrom(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.OrderItemStatus{models.ItemPreparing, models.ItemCancelled},
		ValidTransitionsFrom(models.ItemPending))
	assert.Empty(t, ValidTransitionsFrom(models.ItemServed))
}

func TestBurnStatusBoundaries(t *testing.T) {
	const minute = int64(60000)
	item := models.OrderItem{PrepStartTime: 0, Timestamp: 0}

	assert.Equal(t, BurnNormal, ItemBurnStatus(item, 10*minute))
	assert.Equal(t, BurnNormal, ItemBurnStatus(item, 10*minute+59999), "10m59s is still 10 whole minutes")
	assert.Equal(t, BurnYellow, ItemBurnStatus(item, 11*minute))
	assert.Equal(t, BurnYellow, ItemBurnStatus(item, 15*minute))
	assert.Equal(t, BurnRed, ItemBurnStatus(item, 16*minute))
}

func TestBurnStatusPrefersPrepStart(t *testing.T) {
	const minute = int64(60000)
	item := models.OrderItem{Timestamp: 0, PrepStartTime: 20 * minute}

	// Waited 32 minutes since order but only 12 since cooking started.
	assert.Equal(t, BurnYellow, ItemBurnStatus(item, 32*minute))
}

func TestElapsedMinutesFloors(t *testing.T) {
	assert.Equal(t, int64(0), ElapsedMinutes(0, 59999))
	assert.Equal(t, int64(1), ElapsedMinutes(0, 60000))
	assert.Equal(t, int64(10), ElapsedMinutes(0, 659999))
}
