package models

import (
	"time"

	"gorm.io/datatypes"
)

// PerformanceRecord stores the reported ROI percentage of each revenue stream
// for one settlement week, as a JSON object of stream name to percentage.
type PerformanceRecord struct {
	Base
	Week       string         `gorm:"size:10;uniqueIndex;not null" json:"week"`
	WeekEnding time.Time      `gorm:"not null" json:"week_ending"`
	Streams    datatypes.JSON `gorm:"not null" json:"streams"`
	Notes      string         `json:"notes,omitempty"`
}
