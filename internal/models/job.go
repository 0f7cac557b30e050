package models

import (
	"time"

	"gorm.io/datatypes"
)

// JobRecord is the persisted trace of a finished background job
// (import or export). The live job state is held in memory by the job
// manager; this row is written once on completion.
type JobRecord struct {
	ID         string         `gorm:"primaryKey;type:uuid" json:"id"`
	Type       string         `gorm:"not null;index" json:"type"` // import:items, export:boxes, ...
	Status     string         `gorm:"not null" json:"status"`     // succeeded, failed
	Result     datatypes.JSON `gorm:"type:jsonb" json:"result"`
	StartedAt  time.Time      `gorm:"column:started_at" json:"startedAt"`
	FinishedAt *time.Time     `gorm:"column:finished_at" json:"finishedAt,omitempty"`
}

// TableName specifies the table name
func (JobRecord) TableName() string {
	return "job_records"
}
