package leaderboard

import "github.com/KirkDiggler/raidhall/internal/models"

type UpdateInput struct {
	RaidID string
	Entry  *models.LeaderboardEntry
}

type GetLeaderboardInput struct {
	RaidID   string
	Category models.LeaderboardCategory

	// Limit defaults to DefaultLimit when not positive
	Limit int
}

type GetLeaderboardOutput struct {
	RaidID   string
	Category models.LeaderboardCategory
	Entries  []*models.RankedEntry
}

type ListRaidsInput struct {
}

type ListRaidsOutput struct {
	RaidIDs []string
}
