package leaderboard

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/KirkDiggler/raidhall/internal/models"
)

// memoryRepository keeps leaderboards in process memory
type memoryRepository struct {
	mu      sync.RWMutex
	entries map[string][]*models.LeaderboardEntry
}

// NewMemory creates an in-memory leaderboard repository
func NewMemory() *memoryRepository {
	return &memoryRepository{
		entries: make(map[string][]*models.LeaderboardEntry),
	}
}

// Update appends a copy of the entry
func (r *memoryRepository) Update(ctx context.Context, input *UpdateInput) error {
	if err := validateUpdate(input); err != nil {
		return err
	}

	entry := *input.Entry
	entry.Players = append([]string(nil), input.Entry.Players...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[input.RaidID] = appendEntry(r.entries[input.RaidID], &entry)

	return nil
}

// GetLeaderboard ranks a raid's entries without changing them
func (r *memoryRepository) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	if input == nil || input.RaidID == "" {
		return nil, errors.New("input and raid ID cannot be empty")
	}

	r.mu.RLock()
	ranked, err := rank(r.entries[input.RaidID], input.Category, input.Limit)
	r.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	return &GetLeaderboardOutput{
		RaidID:   input.RaidID,
		Category: input.Category,
		Entries:  ranked,
	}, nil
}

// ListRaids returns the ids of raids with a leaderboard, sorted
func (r *memoryRepository) ListRaids(ctx context.Context, input *ListRaidsInput) (*ListRaidsOutput, error) {
	r.mu.RLock()
	raidIDs := make([]string, 0, len(r.entries))
	for id := range r.entries {
		raidIDs = append(raidIDs, id)
	}
	r.mu.RUnlock()
	sort.Strings(raidIDs)

	return &ListRaidsOutput{
		RaidIDs: raidIDs,
	}, nil
}
