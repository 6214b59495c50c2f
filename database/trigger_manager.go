package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/haiminh/hotpot-pos/utils"
)

// entityTables are the tables the change journal covers.
var entityTables = []string{"menu", "tables", "orders", "reservations", "employees"}

// ExecuteTriggers installs insert/update/delete triggers that append to
// db_changes for every entity table. MySQL only; the sqlite setups used in
// development and tests write journal rows from the application instead.
func ExecuteTriggers(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" {
		utils.InfoLogger.Printf("Skipping trigger install on %s", db.Dialector.Name())
		return nil
	}

	for _, table := range entityTables {
		for _, stmt := range triggerStatements(table) {
			if err := db.Exec(stmt).Error; err != nil {
				utils.ErrorLogger.Printf("Error executing trigger: %v\nStatement: %s", err, stmt)
				continue
			}
		}
	}

	var triggers []struct {
		Trigger string
		Event   string
		Table   string
		Timing  string
	}
	db.Raw(`
        SELECT
            TRIGGER_NAME as trigger_name,
            EVENT_MANIPULATION as event_type,
            EVENT_OBJECT_TABLE as table_name,
            ACTION_TIMING as timing
        FROM information_schema.triggers
        WHERE TRIGGER_SCHEMA = DATABASE()
    `).Scan(&triggers)

	for _, t := range triggers {
		utils.InfoLogger.Printf("Trigger verified: %s (%s %s on %s)",
			t.Trigger, t.Timing, t.Event, t.Table)
	}

	return nil
}

func triggerStatements(table string) []string {
	return []string{
		fmt.Sprintf("DROP TRIGGER IF EXISTS %s_after_insert", table),
		fmt.Sprintf(`CREATE TRIGGER %s_after_insert AFTER INSERT ON %s
FOR EACH ROW INSERT INTO db_changes (table_name, record_id, action_type, changed_at, processed)
VALUES ('%s', NEW.id, 'INSERT', NOW(), false)`, table, table, table),
		fmt.Sprintf("DROP TRIGGER IF EXISTS %s_after_update", table),
		fmt.Sprintf(`CREATE TRIGGER %s_after_update AFTER UPDATE ON %s
FOR EACH ROW INSERT INTO db_changes (table_name, record_id, action_type, changed_at, processed)
VALUES ('%s', NEW.id, 'UPDATE', NOW(), false)`, table, table, table),
		fmt.Sprintf("DROP TRIGGER IF EXISTS %s_after_delete", table),
		fmt.Sprintf(`CREATE TRIGGER %s_after_delete AFTER DELETE ON %s
FOR EACH ROW INSERT INTO db_changes (table_name, record_id, action_type, changed_at, processed)
VALUES ('%s', OLD.id, 'DELETE', NOW(), false)`, table, table, table),
	}
}
