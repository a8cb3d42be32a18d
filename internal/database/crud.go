package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func ListModelRecords(ctx context.Context, db *gorm.DB) ([]ModelRecord, error) {
	var records []ModelRecord
	if err := db.WithContext(ctx).Order("creation_time ASC").Order("id ASC").Find(&records).Error; err != nil {
		slog.Error("error listing model records", "error", err)
		return nil, fmt.Errorf("error listing model records: %w", err)
	}
	return records, nil
}

func CreateModelRecord(ctx context.Context, db *gorm.DB, record *ModelRecord) error {
	if record.Id == uuid.Nil {
		record.Id = uuid.New()
	}
	record.CreationTime = time.Now().UTC()

	if err := db.WithContext(ctx).Create(record).Error; err != nil {
		slog.Error("error creating model record", "error", err)
		return fmt.Errorf("error creating model record: %w", err)
	}
	return nil
}

// ReplaceModelRecord overwrites every editable field of the record. It returns
// gorm.ErrRecordNotFound when no record has the id.
func ReplaceModelRecord(ctx context.Context, db *gorm.DB, id uuid.UUID, record ModelRecord) error {
	updates := map[string]any{
		"model_name":  record.ModelName,
		"accuracy":    record.Accuracy,
		"precision":   record.Precision,
		"recall":      record.Recall,
		"f1_score":    record.F1Score,
		"update_time": sql.NullTime{Time: time.Now().UTC(), Valid: true},
	}

	result := db.WithContext(ctx).Model(&ModelRecord{Id: id}).Updates(updates)
	if result.Error != nil {
		slog.Error("error updating model record", "id", id, "error", result.Error)
		return fmt.Errorf("error updating model record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteModelRecord removes the record. It returns gorm.ErrRecordNotFound
// when no record has the id.
func DeleteModelRecord(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	result := db.WithContext(ctx).Delete(&ModelRecord{}, "id = ?", id)
	if result.Error != nil {
		slog.Error("error deleting model record", "id", id, "error", result.Error)
		return fmt.Errorf("error deleting model record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
