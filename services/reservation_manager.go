package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/haiminh/hotpot-pos/models"
	"github.com/haiminh/hotpot-pos/utils"
)

// ReservationManager handles forward bookings and their hand-off into a
// live table session at check-in.
type ReservationManager struct {
	DB *gorm.DB
}

func NewReservationManager(db *gorm.DB) *ReservationManager {
	return &ReservationManager{DB: db}
}

// AddReservationParams carries a new booking request.
type AddReservationParams struct {
	CustomerName string
	Phone        string
	Time         string
	GuestCount   int
	TableID      *string
	Note         string
}

// AddReservation records a PENDING booking. When a table is named, that
// table is flagged RESERVED so the floor plan shows it held, but only if it
// is currently empty.
func (rm *ReservationManager) AddReservation(params AddReservationParams) (*models.Reservation, error) {
	if params.CustomerName == "" || params.Phone == "" || params.GuestCount < 1 {
		return nil, ErrInvalidReservation
	}

	reservation := models.Reservation{
		CustomerName: params.CustomerName,
		Phone:        params.Phone,
		Time:         params.Time,
		GuestCount:   params.GuestCount,
		TableID:      params.TableID,
		Status:       models.ReservationPending,
		Note:         params.Note,
	}

	err := rm.DB.Transaction(func(tx *gorm.DB) error {
		if params.TableID != nil {
			table, err := loadTable(tx, *params.TableID)
			if err != nil {
				return err
			}
			if table.Status != models.TableEmpty {
				return ErrTableOccupied
			}
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}
		if params.TableID != nil {
			return tx.Model(&models.Table{}).Where("id = ?", *params.TableID).
				Updates(map[string]interface{}{
					"status":         models.TableReserved,
					"reservation_id": reservation.ID,
				}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %s created for %s (%d guests)", reservation.ID, reservation.CustomerName, reservation.GuestCount)
	return &reservation, nil
}

// CancelReservation moves a booking to CANCELLED and releases any table it
// was holding. Cancelling an already-cancelled reservation is a no-op;
// cancelling one that has arrived fails, that session is now live.
func (rm *ReservationManager) CancelReservation(reservationID string) (*models.Reservation, error) {
	var cancelled models.Reservation
	err := rm.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, "id = ?", reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if reservation.Status == models.ReservationCancelled {
			cancelled = reservation
			return nil
		}
		if reservation.Status == models.ReservationArrived {
			return ErrReservationClosed
		}

		if err := tx.Model(&models.Reservation{}).Where("id = ?", reservationID).
			Update("status", models.ReservationCancelled).Error; err != nil {
			return err
		}
		if reservation.TableID != nil {
			if err := tx.Model(&models.Table{}).
				Where("id = ? AND status = ?", *reservation.TableID, models.TableReserved).
				Updates(map[string]interface{}{
					"status":         models.TableEmpty,
					"reservation_id": nil,
				}).Error; err != nil {
				return err
			}
		}
		reservation.Status = models.ReservationCancelled
		cancelled = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cancelled, nil
}

// CheckInReservation marks an arriving party ARRIVED and holds their table
// OCCUPIED with the reservation linked. It opens no order; staff start the
// session separately once the party is seated. A table already hosting an
// active order rejects the check-in.
func (rm *ReservationManager) CheckInReservation(reservationID, tableID string) (*models.Reservation, error) {
	var arrived models.Reservation
	err := rm.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, "id = ?", reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if reservation.Status != models.ReservationPending {
			return ErrReservationClosed
		}

		table, err := loadTable(tx, tableID)
		if err != nil {
			return err
		}
		if table.CurrentOrderID != nil || table.Status == models.TableOccupied {
			return ErrTableOccupied
		}

		if err := tx.Model(&models.Reservation{}).Where("id = ?", reservationID).
			Updates(map[string]interface{}{
				"status":   models.ReservationArrived,
				"table_id": tableID,
			}).Error; err != nil {
			return err
		}

		// Release a different table this booking may have been holding.
		if reservation.TableID != nil && *reservation.TableID != tableID {
			if err := tx.Model(&models.Table{}).
				Where("id = ? AND status = ?", *reservation.TableID, models.TableReserved).
				Updates(map[string]interface{}{
					"status":         models.TableEmpty,
					"reservation_id": nil,
				}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Table{}).Where("id = ?", tableID).
			Updates(map[string]interface{}{
				"status":         models.TableOccupied,
				"reservation_id": reservation.ID,
			}).Error; err != nil {
			return err
		}

		reservation.Status = models.ReservationArrived
		reservation.TableID = &tableID
		arrived = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %s checked in at table %s", reservationID, tableID)
	return &arrived, nil
}

// ActiveReservations lists unarchived bookings, pending first, newest last.
func (rm *ReservationManager) ActiveReservations() ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := rm.DB.Where("archived = ?", false).
		Order("status asc, time asc").
		Find(&reservations).Error
	return reservations, err
}
