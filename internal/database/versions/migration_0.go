package versions

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ModelRecord struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`

	ModelName string `gorm:"not null"`
	Accuracy  string
	Precision string
	Recall    string
	F1Score   string

	CreationTime time.Time
}

func Migration(db *gorm.DB) error {
	if err := db.AutoMigrate(&ModelRecord{}); err != nil {
		return fmt.Errorf("error creating model_records table: %w", err)
	}
	return nil
}
