// Package datastore persists analysis runs to a local SQLite database.
package datastore

import (
	"time"
)

// AnalysisRun is one stored pipeline result.
type AnalysisRun struct {
	ID        uint   `gorm:"primaryKey"`
	RunID     string `gorm:"uniqueIndex"`
	Timestamp time.Time
	Profile   string
	Detector  string
	InputFile string

	NumPeaks  int
	ElapsedMs float64

	Isotopes []IsotopeRecord `gorm:"foreignKey:AnalysisRunID"`
	Chains   []ChainRecord   `gorm:"foreignKey:AnalysisRunID"`
}

// IsotopeRecord is one identified isotope within a run.
type IsotopeRecord struct {
	ID            uint `gorm:"primaryKey"`
	AnalysisRunID uint `gorm:"index"`

	Isotope            string `gorm:"index"`
	BasicConfidence    float64
	EnhancedConfidence float64
	MatchedLines       int
	TotalLines         int
	Suppressed         bool
}

// ChainRecord is one reported decay chain within a run.
type ChainRecord struct {
	ID            uint `gorm:"primaryKey"`
	AnalysisRunID uint `gorm:"index"`

	Chain           string `gorm:"index"`
	Confidence      float64
	Level           string
	NumDetected     int
	NumKeyIsotopes  int
	EquilibriumNote string
}
