package instance

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/raidhall/internal/common/clock"
	"github.com/KirkDiggler/raidhall/internal/dice"
	"github.com/KirkDiggler/raidhall/internal/models"
)

// Combat tuning. Ranges are half-open [min, max).
const (
	attackMin         = 25
	attackMax         = 75
	healMin           = 30
	healMax           = 70
	bossHitMin        = 20
	bossHitMax        = 60
	trashHitMin       = 10
	trashHitMax       = 30
	combatLogCapacity = 100

	baseHP     = 100
	hpPerLvl   = 10
	baseMana   = 50
	manaPerLvl = 5
)

// DefaultVoteWindow is how long a viewer vote stays open after the first vote
const DefaultVoteWindow = 30 * time.Second

// VotePolicy decides what a vote arriving after the deadline does
type VotePolicy string

const (
	// VotePolicyRetain keeps accumulating into the expired window
	VotePolicyRetain VotePolicy = "retain"

	// VotePolicyReset discards the expired tally and opens a fresh window
	VotePolicyReset VotePolicy = "reset"
)

// ParseVotePolicy validates a configured policy name
func ParseVotePolicy(s string) (VotePolicy, error) {
	switch VotePolicy(s) {
	case "", VotePolicyRetain:
		return VotePolicyRetain, nil
	case VotePolicyReset:
		return VotePolicyReset, nil
	}
	return "", ErrInvalidVotePolicy
}

// Config holds configuration for a single instance engine
type Config struct {
	// InstanceID is the id of the run
	InstanceID string

	// Definition is the raid being run
	Definition *models.RaidDefinition

	// Lobby is the lobby the run was started from
	Lobby *models.RaidLobby

	DiceRoller dice.Roller
	Clock      clock.Clock

	// VoteWindow defaults to DefaultVoteWindow
	VoteWindow time.Duration

	// VotePolicy defaults to VotePolicyRetain
	VotePolicy VotePolicy

	Logger zerolog.Logger
}

// Hit is a single retaliation strike against a player
type Hit struct {
	Attacker string
	TargetID string
	Damage   int
	Lethal   bool
}

// ActionResult is what one player action did to the instance
type ActionResult struct {
	// Log holds the combat log lines appended by this action
	Log []string

	Damage  int
	Healing int

	// Killed is set when the attack finished off its target
	Killed bool

	Retaliation []Hit

	// Events are progression changes such as a wave clearing
	Events []string

	Status models.InstanceStatus
}

// BuffResult is what a purchased buff did
type BuffResult struct {
	Buff    models.BuffType
	Cost    int
	Message string

	// Affected lists the players the buff touched
	Affected []string

	// ExpiresAt is set for timed buffs
	ExpiresAt time.Time
}

// VoteStatus is the state of the viewer vote after a vote or on poll
type VoteStatus struct {
	Open        bool
	Tally       map[string]int
	TotalWeight int
	Remaining   time.Duration
	Expired     bool

	// Weight is the weight of the vote just cast, zero on poll
	Weight int
}

// VoteOutcome is a resolved viewer vote
type VoteOutcome struct {
	Winner       string
	WinnerWeight int
	TotalWeight  int
	Tally        map[string]int
	Expired      bool
}
