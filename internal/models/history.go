package models

import (
	"time"
)

// RunRecord is a finished instance as kept in run history
type RunRecord struct {
	InstanceID string
	RaidID     string
	RaidName   string
	Difficulty Difficulty
	Status     InstanceStatus
	StartedAt  time.Time
	EndedAt    time.Time

	// CompletionTime is the run length in seconds
	CompletionTime int

	TotalDeaths  int
	TotalDamage  int
	TotalHealing int

	Participants []string
	Players      []PlayerStats
}
