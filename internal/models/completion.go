package models

import (
	"time"
)

// PlayerStats is a per-player summary of a finished run
type PlayerStats struct {
	PlayerID    string `json:"player_id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	DamageDealt int    `json:"damage_dealt"`
	HealingDone int    `json:"healing_done"`
	Deaths      int    `json:"deaths"`
	Alive       bool   `json:"alive"`
}

// CompletionStats summarises a finished run
type CompletionStats struct {
	// CompletionTime is the run length in seconds
	CompletionTime int
	TotalDeaths    int
	TotalDamage    int
	TotalHealing   int
	Players        []PlayerStats
}

// RewardPayout is the difficulty-scaled reward for a completed run
type RewardPayout struct {
	Gold       int
	Experience int
	Items      []string
	UniqueLoot []string
	RaidTokens int
	Titles     []string
}

// AwardedAchievement is an achievement earned on completion
type AwardedAchievement struct {
	ID          string
	Name        string
	Description string
}

// CompletionView is the snapshot returned when an instance finishes
type CompletionView struct {
	InstanceID   string
	RaidID       string
	RaidName     string
	Status       InstanceStatus
	Difficulty   Difficulty
	StartedAt    time.Time
	EndedAt      time.Time
	Stats        CompletionStats
	Rewards      *RewardPayout
	Achievements []AwardedAchievement
}
