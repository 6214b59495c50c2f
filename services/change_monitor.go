package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/haiminh/hotpot-pos/models"
	"github.com/haiminh/hotpot-pos/realtime"
	"github.com/haiminh/hotpot-pos/utils"
)

// ChangeMonitor polls the db_changes journal that database triggers append
// to, and pushes each change to connected clients. Polling plus a journal
// keeps broadcasting decoupled from the writers: a change is picked up even
// when it came from another process or a manual SQL fix.
type ChangeMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewChangeMonitor(db *gorm.DB) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

func (cm *ChangeMonitor) checkChanges() {
	var changes []models.DBChange

	tx := cm.DB.Begin()
	if tx.Error != nil {
		utils.ErrorLogger.Printf("Error starting change poll: %v", tx.Error)
		return
	}

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		utils.ErrorLogger.Printf("Error fetching changes: %v", err)
		return
	}

	for _, change := range changes {
		cm.dispatch(change)

		if err := tx.Model(&models.DBChange{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			utils.ErrorLogger.Printf("Error marking change as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.ErrorLogger.Printf("Error committing change poll: %v", err)
		tx.Rollback()
		return
	}

	if len(changes) > 0 {
		utils.InfoLogger.Printf("Processed %d change(s)", len(changes))
	}
}

func (cm *ChangeMonitor) dispatch(change models.DBChange) {
	if change.ActionType == models.ActionDelete {
		realtime.BroadcastEntityDelete(change.TableName, change.RecordID)
		return
	}

	switch change.TableName {
	case "menu":
		var item models.MenuItem
		if err := cm.DB.First(&item, "id = ?", change.RecordID).Error; err != nil {
			utils.ErrorLogger.Printf("Error fetching menu item %s: %v", change.RecordID, err)
			return
		}
		realtime.BroadcastMenuUpdate(item)
	case "tables":
		var table models.Table
		if err := cm.DB.First(&table, "id = ?", change.RecordID).Error; err != nil {
			utils.ErrorLogger.Printf("Error fetching table %s: %v", change.RecordID, err)
			return
		}
		realtime.BroadcastTableUpdate(table)
		if table.BillRequested {
			realtime.BroadcastBillRequested(table)
		}
	case "orders":
		var order models.Order
		if err := cm.DB.First(&order, "id = ?", change.RecordID).Error; err != nil {
			utils.ErrorLogger.Printf("Error fetching order %s: %v", change.RecordID, err)
			return
		}
		realtime.BroadcastOrderUpdate(order)
	case "reservations":
		var reservation models.Reservation
		if err := cm.DB.First(&reservation, "id = ?", change.RecordID).Error; err != nil {
			utils.ErrorLogger.Printf("Error fetching reservation %s: %v", change.RecordID, err)
			return
		}
		realtime.BroadcastReservationUpdate(reservation)
	case "employees":
		var employee models.Employee
		if err := cm.DB.First(&employee, "id = ?", change.RecordID).Error; err != nil {
			utils.ErrorLogger.Printf("Error fetching employee %s: %v", change.RecordID, err)
			return
		}
		realtime.BroadcastEmployeeUpdate(employee)
	}
}
