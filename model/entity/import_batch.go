package entity

import (
	"time"

	"gorm.io/datatypes"
)

// ImportBatch represents import_batch table: one CSV load into material.
type ImportBatch struct {
	ID               uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BatchNo          string         `gorm:"column:batch_no;type:varchar(36);uniqueIndex;not null" json:"batch_no"`
	FileName         string         `gorm:"column:file_name;type:varchar(255);not null" json:"file_name"`
	TotalCount       int            `gorm:"column:total_count;not null;default:0" json:"total_count"`
	SuccessCount     int            `gorm:"column:success_count;not null;default:0" json:"success_count"`
	FailedCount      int            `gorm:"column:failed_count;not null;default:0" json:"failed_count"`
	SkippedCount     int            `gorm:"column:skipped_count;not null;default:0" json:"skipped_count"`
	OverwrittenCount int            `gorm:"column:overwritten_count;not null;default:0" json:"overwritten_count"`
	ConflictMode     string         `gorm:"column:conflict_mode;type:varchar(16);not null" json:"conflict_mode"`
	Status           string         `gorm:"column:status;type:varchar(16)" json:"status"`
	Coverage         datatypes.JSON `gorm:"column:coverage" json:"coverage,omitempty"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ImportBatch) TableName() string {
	return "import_batch"
}
