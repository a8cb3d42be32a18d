package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type ModelRecord struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`

	ModelName string `gorm:"not null"`
	Accuracy  string
	Precision string
	Recall    string
	F1Score   string

	CreationTime time.Time
	UpdateTime   sql.NullTime
}
