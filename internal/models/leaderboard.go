package models

import (
	"time"
)

// LeaderboardCategory is the sort order of a leaderboard read
type LeaderboardCategory string

const (
	CategoryFastestClear  LeaderboardCategory = "fastest_clear"
	CategoryFewestDeaths  LeaderboardCategory = "fewest_deaths"
	CategoryHighestDamage LeaderboardCategory = "highest_damage"
)

// LeaderboardEntry records one completed run of a tracked raid
type LeaderboardEntry struct {
	InstanceID string `json:"instance_id"`

	// Players are participant display names
	Players []string `json:"players"`

	// CompletionTime is the run length in seconds
	CompletionTime int `json:"completion_time"`

	Deaths      int        `json:"deaths"`
	TotalDamage int        `json:"total_damage"`
	Difficulty  Difficulty `json:"difficulty"`
	Timestamp   time.Time  `json:"timestamp"`
}

// RankedEntry is a leaderboard entry with its 1-based rank for a category
type RankedEntry struct {
	Rank int
	LeaderboardEntry
}
