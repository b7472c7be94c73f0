package datastore

import (
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/analysis"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/errors"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/logging"
)

func logger() *slog.Logger {
	if l := logging.ForService("datastore"); l != nil {
		return l
	}
	return slog.Default().With("service", "datastore")
}

// Store wraps the SQLite-backed run archive.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryDatabase).
			Context("path", path).
			Build()
	}
	if err := db.AutoMigrate(&AnalysisRun{}, &IsotopeRecord{}, &ChainRecord{}); err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryDatabase).
			Context("operation", "auto-migrate").
			Build()
	}
	logger().Debug("datastore opened", "path", path)
	return &Store{db: db}, nil
}

// Save persists one analysis result with its isotope and chain records.
func (s *Store) Save(result *analysis.Result, inputFile string) error {
	run := AnalysisRun{
		RunID:     result.ID,
		Timestamp: result.Timestamp,
		Profile:   result.Profile,
		Detector:  result.Detector,
		InputFile: inputFile,
		NumPeaks:  len(result.Peaks),
		ElapsedMs: result.ElapsedMs,
	}
	for _, iso := range result.Isotopes {
		run.Isotopes = append(run.Isotopes, IsotopeRecord{
			Isotope:            iso.Isotope,
			BasicConfidence:    iso.Confidence,
			EnhancedConfidence: iso.EnhancedConfidence,
			MatchedLines:       len(iso.Matched),
			TotalLines:         iso.TotalLines,
			Suppressed:         iso.Suppressed,
		})
	}
	for _, c := range result.Chains {
		run.Chains = append(run.Chains, ChainRecord{
			Chain:           c.Chain,
			Confidence:      c.Confidence,
			Level:           string(c.Level),
			NumDetected:     c.NumDetected,
			NumKeyIsotopes:  c.NumKeyIsotopes,
			EquilibriumNote: c.EquilibriumNote,
		})
	}
	if err := s.db.Create(&run).Error; err != nil {
		return errors.New(err).
			Category(errors.CategoryDatabase).
			Context("run_id", result.ID).
			Build()
	}
	return nil
}

// RecentRuns returns the newest runs with their isotope and chain records.
func (s *Store) RecentRuns(limit int) ([]AnalysisRun, error) {
	var runs []AnalysisRun
	err := s.db.
		Preload("Isotopes").
		Preload("Chains").
		Order("timestamp DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryDatabase).
			Context("operation", "recent-runs").
			Build()
	}
	return runs, nil
}

// RunsSince returns runs newer than the cutoff.
func (s *Store) RunsSince(cutoff time.Time) ([]AnalysisRun, error) {
	var runs []AnalysisRun
	err := s.db.
		Preload("Isotopes").
		Preload("Chains").
		Where("timestamp >= ?", cutoff).
		Order("timestamp DESC").
		Find(&runs).Error
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryDatabase).
			Build()
	}
	return runs, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
