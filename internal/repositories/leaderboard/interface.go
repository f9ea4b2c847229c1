package leaderboard

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/raidhall/internal/repositories/leaderboard Repository

import (
	"context"
)

// Repository defines the interface for ranked raid completion history
type Repository interface {
	// Update appends a completion to a raid's leaderboard, pruning to the
	// fastest MaxEntries runs when it overflows
	Update(ctx context.Context, input *UpdateInput) error

	// GetLeaderboard returns a raid's entries ranked by category
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)

	// ListRaids returns the ids of raids that have at least one entry
	ListRaids(ctx context.Context, input *ListRaidsInput) (*ListRaidsOutput, error)
}
