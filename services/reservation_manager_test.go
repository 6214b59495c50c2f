package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haiminh/hotpot-pos/models"
)

func TestAddReservationHoldsTable(t *testing.T) {
	db := setupTestDB(t)
	rm := NewReservationManager(db)
	table := seedTable(t, db, "T1")

	reservation, err := rm.AddReservation(AddReservationParams{
		CustomerName: "Linh",
		Phone:        "0901234567",
		Time:         "2026-09-01T19:00",
		GuestCount:   4,
		TableID:      &table.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationPending, reservation.Status)

	var reloaded models.Table
	require.NoError(t, db.First(&reloaded, "id = ?", table.ID).Error)
	assert.Equal(t, models.TableReserved, reloaded.Status)
	require.NotNil(t, reloaded.ReservationID)
	assert.Equal(t, reservation.ID, *reloaded.ReservationID)
}

func TestAddReservationValidation(t *testing.T) {
	db := setupTestDB(t)
	rm := NewReservationManager(db)

	_, err := rm.AddReservation(AddReservationParams{Phone: "0901", GuestCount: 2})
	assert.ErrorIs(t, err, ErrInvalidReservation)

	_, err = rm.AddReservation(AddReservationParams{CustomerName: "Linh", Phone: "0901", GuestCount: 0})
	assert.ErrorIs(t, err, ErrInvalidReservation)
}

func TestAddReservationRejectsBusyTable(t *testing.T) {
	db := setupTestDB(t)
	sm := NewSessionManager(db)
	rm := NewReservationManager(db)
	table := seedTable(t, db, "T1")

	_, err := sm.StartTableSession(table.ID, 2)
	require.NoError(t, err)

	_, err = rm.AddReservation(AddReservationParams{
		CustomerName: "Linh", Phone: "0901", GuestCount: 2, TableID: &table.ID,
	})
	assert.ErrorIs(t, err, ErrTableOccupied)
}

func TestCancelReservationReleasesTableAndIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	rm := NewReservationManager(db)
	table := seedTable(t, db, "T1")

	reservation, err := rm.AddReservation(AddReservationParams{
		CustomerName: "Linh", Phone: "0901", GuestCount: 2, TableID: &table.ID,
	})
	require.NoError(t, err)

	cancelled, err := rm.CancelReservation(reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, cancelled.Status)

	var reloaded models.Table
	require.NoError(t, db.First(&reloaded, "id = ?", table.ID).Error)
	assert.Equal(t, models.TableEmpty, reloaded.Status)
	assert.Nil(t, reloaded.ReservationID)

	// Second cancel is a no-op, not an error.
	again, err := rm.CancelReservation(reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, again.Status)
}

func TestCheckInHoldsTableWithoutOpeningOrder(t *testing.T) {
	db := setupTestDB(t)
	sm := NewSessionManager(db)
	rm := NewReservationManager(db)
	table := seedTable(t, db, "T1")

	reservation, err := rm.AddReservation(AddReservationParams{
		CustomerName: "Linh", Phone: "0901", GuestCount: 6, TableID: &table.ID,
	})
	require.NoError(t, err)

	arrived, err := rm.CheckInReservation(reservation.ID, table.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationArrived, arrived.Status)

	// Check-in holds the table but opens no order.
	var openOrders int64
	require.NoError(t, db.Model(&models.Order{}).Where("is_paid = ?", false).Count(&openOrders).Error)
	assert.Zero(t, openOrders)

	var reloaded models.Table
	require.NoError(t, db.First(&reloaded, "id = ?", table.ID).Error)
	assert.Equal(t, models.TableOccupied, reloaded.Status)
	assert.Nil(t, reloaded.CurrentOrderID)
	require.NotNil(t, reloaded.ReservationID)
	assert.Equal(t, reservation.ID, *reloaded.ReservationID)

	// Staff open the session as a separate step.
	order, err := sm.StartTableSession(table.ID, 6)
	require.NoError(t, err)
	assert.Equal(t, table.ID, order.TableID)
}

func TestCheckInRejectsOccupiedTable(t *testing.T) {
	db := setupTestDB(t)
	sm := NewSessionManager(db)
	rm := NewReservationManager(db)
	busy := seedTable(t, db, "T1")

	reservation, err := rm.AddReservation(AddReservationParams{
		CustomerName: "Linh", Phone: "0901", GuestCount: 2,
	})
	require.NoError(t, err)

	_, err = sm.StartTableSession(busy.ID, 2)
	require.NoError(t, err)

	_, err = rm.CheckInReservation(reservation.ID, busy.ID)
	assert.ErrorIs(t, err, ErrTableOccupied)
}

func TestCheckInRejectsClosedReservation(t *testing.T) {
	db := setupTestDB(t)
	rm := NewReservationManager(db)
	table := seedTable(t, db, "T1")

	reservation, err := rm.AddReservation(AddReservationParams{
		CustomerName: "Linh", Phone: "0901", GuestCount: 2,
	})
	require.NoError(t, err)

	_, err = rm.CancelReservation(reservation.ID)
	require.NoError(t, err)

	_, err = rm.CheckInReservation(reservation.ID, table.ID)
	assert.ErrorIs(t, err, ErrReservationClosed)
}
