package history

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/raidhall/internal/repositories/history Repository

import (
	"context"
)

// Repository defines the interface for finished run persistence
type Repository interface {
	// RecordRun persists a finished instance. Recording the same instance
	// twice keeps the first record.
	RecordRun(ctx context.Context, input *RecordRunInput) error

	// ListRuns returns finished runs, newest first
	ListRuns(ctx context.Context, input *ListRunsInput) (*ListRunsOutput, error)

	// Close releases the underlying database
	Close() error
}
