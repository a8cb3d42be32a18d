package migration_1

import (
	"testing"
	"time"

	"metrics-dashboard/internal/database/versions"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, versions.Migration(db))

	return db
}

func hasUpdateTime(t *testing.T, db *gorm.DB) bool {
	var columnExists bool
	err := db.Raw("SELECT COUNT(*) > 0 FROM pragma_table_info('model_records') WHERE name = 'update_time'").Scan(&columnExists).Error
	require.NoError(t, err)
	return columnExists
}

func TestMigration_AddsUpdateTime(t *testing.T) {
	db := setupTestDB(t)

	record := versions.ModelRecord{
		Id:           uuid.New(),
		ModelName:    "RF",
		Accuracy:     "0.95",
		CreationTime: time.Now(),
	}
	require.NoError(t, db.Create(&record).Error)

	require.False(t, hasUpdateTime(t, db))
	require.NoError(t, Migration(db))
	assert.True(t, hasUpdateTime(t, db))

	var result struct {
		ModelName string
		Accuracy  string
	}
	err := db.Raw("SELECT model_name, accuracy FROM model_records WHERE id = ?", record.Id).Scan(&result).Error
	require.NoError(t, err)
	assert.Equal(t, "RF", result.ModelName)
	assert.Equal(t, "0.95", result.Accuracy)
}

func TestRollback_DropsUpdateTime(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Migration(db))
	require.NoError(t, Rollback(db))
	assert.False(t, hasUpdateTime(t, db), "update_time column should be removed")
}
