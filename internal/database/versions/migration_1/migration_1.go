package migration_1

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

type ModelRecord struct {
	UpdateTime sql.NullTime
}

func Migration(db *gorm.DB) error {
	if err := db.Migrator().AddColumn(&ModelRecord{}, "update_time"); err != nil {
		return fmt.Errorf("error adding UpdateTime column: %w", err)
	}

	return nil
}

func Rollback(db *gorm.DB) error {
	if err := db.Migrator().DropColumn(&ModelRecord{}, "update_time"); err != nil {
		return fmt.Errorf("error dropping UpdateTime column: %w", err)
	}

	return nil
}
