package models

import (
	"time"
)

// DBChange is one row of the change-capture journal. Database triggers
// append a row for every insert/update/delete on the five entity tables;
// the change monitor drains the journal in commit order per table and
// re-broadcasts each change to subscribed clients.
type DBChange struct {
	ID         uint      `gorm:"primaryKey"`
	TableName  string    `gorm:"type:varchar(50);not null;index:idx_table_action"`
	RecordID   string    `gorm:"type:varchar(64);not null"`
	ActionType string    `gorm:"type:varchar(10);not null;index:idx_table_action"`
	ChangedAt  time.Time `gorm:"not null"`
	Processed  bool      `gorm:"not null;default:false;index:idx_processed"`
}

// Change-journal action types, matching the feed's event vocabulary.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)
