package leaderboard

import (
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/raidhall/internal/models"
)

const (
	// MaxEntries is how many runs a raid's leaderboard keeps
	MaxEntries = 100

	// DefaultLimit is the page size when a read does not ask for one
	DefaultLimit = 10
)

var (
	// ErrUnknownCategory is returned for a sort order that does not exist
	ErrUnknownCategory = errors.New("unknown leaderboard category")

	// ErrInvalidInput is returned when a raid id or entry is missing
	ErrInvalidInput = errors.New("raid ID and entry cannot be empty")
)

// appendEntry adds an entry and, past the cap, keeps only the fastest runs.
// Pruning always sorts by completion time, whatever order readers ask for.
func appendEntry(entries []*models.LeaderboardEntry, entry *models.LeaderboardEntry) []*models.LeaderboardEntry {
	entries = append(entries, entry)
	if len(entries) <= MaxEntries {
		return entries
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CompletionTime < entries[j].CompletionTime
	})
	return entries[:MaxEntries]
}

// rank sorts a copy of entries for the category and numbers them from 1
func rank(entries []*models.LeaderboardEntry, category models.LeaderboardCategory, limit int) ([]*models.RankedEntry, error) {
	less, err := lessFor(category)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	sorted := append([]*models.LeaderboardEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	ranked := make([]*models.RankedEntry, 0, len(sorted))
	for i, entry := range sorted {
		ranked = append(ranked, &models.RankedEntry{Rank: i + 1, LeaderboardEntry: *entry})
	}
	return ranked, nil
}

func lessFor(category models.LeaderboardCategory) (func(a, b *models.LeaderboardEntry) bool, error) {
	switch category {
	case models.CategoryFastestClear:
		return func(a, b *models.LeaderboardEntry) bool { return a.CompletionTime < b.CompletionTime }, nil
	case models.CategoryFewestDeaths:
		return func(a, b *models.LeaderboardEntry) bool { return a.Deaths < b.Deaths }, nil
	case models.CategoryHighestDamage:
		return func(a, b *models.LeaderboardEntry) bool { return a.TotalDamage > b.TotalDamage }, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
}

func validateUpdate(input *UpdateInput) error {
	if input == nil || input.RaidID == "" || input.Entry == nil {
		return ErrInvalidInput
	}
	return nil
}
