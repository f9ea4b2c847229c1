package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const memoryDSN = "file::memory:?cache=shared"

// Config holds configuration for the SQLite run history
type Config struct {
	// Path is the database file; empty keeps history in memory
	Path string
}

// gormRepository implements the Repository interface using GORM
type gormRepository struct {
	db *gorm.DB
}

// NewGorm opens the SQLite database and migrates the run table
func NewGorm(cfg *Config) (*gormRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	dsn := cfg.Path
	if dsn == "" {
		dsn = memoryDSN
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.AutoMigrate(&run{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return &gormRepository{
		db: db,
	}, nil
}

// RecordRun inserts a run, ignoring a duplicate instance id
func (r *gormRepository) RecordRun(ctx context.Context, input *RecordRunInput) error {
	if input == nil || input.Run == nil || input.Run.InstanceID == "" {
		return errors.New("input and run instance ID cannot be empty")
	}

	row, err := toRow(input.Run)
	if err != nil {
		return fmt.Errorf("failed to encode run: %w", err)
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "instance_id"}}, DoNothing: true}).
		Create(row).Error
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

// ListRuns returns runs ordered by end time, newest first
func (r *gormRepository) ListRuns(ctx context.Context, input *ListRunsInput) (*ListRunsOutput, error) {
	if input == nil {
		input = &ListRunsInput{}
	}
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := r.db.WithContext(ctx).Order("ended_at DESC").Order("id DESC").Limit(limit)
	if input.RaidID != "" {
		query = query.Where("raid_id = ?", input.RaidID)
	}

	var rows []*run
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	out := &ListRunsOutput{}
	for _, row := range rows {
		record, err := row.toRecord()
		if err != nil {
			return nil, fmt.Errorf("failed to decode run %s: %w", row.InstanceID, err)
		}
		out.Runs = append(out.Runs, record)
	}

	return out, nil
}

// Close closes the database handle
func (r *gormRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
