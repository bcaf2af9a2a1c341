package persistence

import "time"

// RunModel is the database row of a render run.
type RunModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	RangeID    string `gorm:"index;not null"`
	Name       string `gorm:"not null"`
	StartFrame int
	EndFrame   int
	Mode       string `gorm:"not null"`
	OutputPath string
	Status     string `gorm:"index;not null"`
	Error      string
	StartedAt  time.Time `gorm:"index"`
	FinishedAt *time.Time
}

// TableName returns the table name.
func (RunModel) TableName() string { return "render_runs" }
