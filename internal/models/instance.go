package models

import (
	"time"
)

// InstanceStatus is the lifecycle state of a raid instance
type InstanceStatus string

const (
	InstanceStatusActive    InstanceStatus = "active"
	InstanceStatusCompleted InstanceStatus = "completed"
	InstanceStatusWiped     InstanceStatus = "wiped"
)

// IsTerminal reports whether no further operations are valid
func (s InstanceStatus) IsTerminal() bool {
	return s == InstanceStatusCompleted || s == InstanceStatusWiped
}

// BossTargetID addresses the current boss in a player action
const BossTargetID = "boss"

// ActionType is what a player does on their turn
type ActionType string

const (
	ActionAttack  ActionType = "attack"
	ActionHeal    ActionType = "heal"
	ActionAbility ActionType = "ability"
	ActionTaunt   ActionType = "taunt"
)

// PlayerAction is a single action submitted by a player
type PlayerAction struct {
	Type ActionType

	// TargetID is an enemy id or BossTargetID for attacks, a player id for heals
	TargetID string

	// Ability names the ability used
	Ability string
}

// BuffType is a purchasable raid-wide effect
type BuffType string

const (
	BuffHealRaid     BuffType = "heal_raid"
	BuffRevivePlayer BuffType = "revive_player"
	BuffDamageBoost  BuffType = "damage_boost"
	BuffShieldRaid   BuffType = "shield_raid"
)

// Combatant is the runtime state of a player inside an instance
type Combatant struct {
	ID          string
	Name        string
	Class       string
	Role        string
	Level       int
	HP          int
	MaxHP       int
	Mana        int
	MaxMana     int
	Alive       bool
	DamageDealt int
	HealingDone int
	Deaths      int
}

// Boss is the active boss of an instance
type Boss struct {
	ID    string
	Name  string
	HP    int
	MaxHP int
	Phase int
	Alive bool
}

// HPPercent returns current hit points as a percentage of max
func (b *Boss) HPPercent() float64 {
	if b.MaxHP <= 0 {
		return 0
	}
	return float64(b.HP) / float64(b.MaxHP) * 100
}

// Enemy is a trash mob
type Enemy struct {
	ID    string
	Name  string
	HP    int
	MaxHP int
	Alive bool
}

// CombatLogEntry is one line of the instance combat log
type CombatLogEntry struct {
	Timestamp time.Time
	Message   string
}

// VotingWindow accumulates weighted viewer votes
type VotingWindow struct {
	Tally       map[string]int
	TotalWeight int
	OpenedAt    time.Time
	Deadline    time.Time
}

// TimedEffect is an advisory raid-wide flag that lapses at ExpiresAt
type TimedEffect struct {
	AppliedBy string
	ExpiresAt time.Time
}

// ActiveAt reports whether the effect has not yet lapsed
func (t *TimedEffect) ActiveAt(now time.Time) bool {
	return t != nil && now.Before(t.ExpiresAt)
}

// RaidInstance is the live run of a raid
type RaidInstance struct {
	ID         string
	RaidID     string
	RaidName   string
	LobbyID    string
	Difficulty Difficulty
	Settings   LobbySettings
	Shape      ProgressionShape

	Players     map[string]*Combatant
	PlayerOrder []string

	Status InstanceStatus

	// Progress is the current wave, phase, objective or boss index
	Progress int

	Boss    *Boss
	Enemies []*Enemy

	CombatLog []CombatLogEntry

	Voting *VotingWindow

	DamageBoost *TimedEffect
	Shield      *TimedEffect

	StartedAt time.Time
	EndedAt   time.Time
}

// OrderedPlayers returns combatants in lobby join order
func (r *RaidInstance) OrderedPlayers() []*Combatant {
	players := make([]*Combatant, 0, len(r.PlayerOrder))
	for _, id := range r.PlayerOrder {
		if p, ok := r.Players[id]; ok {
			players = append(players, p)
		}
	}
	return players
}

// LivingPlayers returns alive combatants in join order
func (r *RaidInstance) LivingPlayers() []*Combatant {
	var living []*Combatant
	for _, p := range r.OrderedPlayers() {
		if p.Alive {
			living = append(living, p)
		}
	}
	return living
}

// LivingEnemies returns trash enemies still standing
func (r *RaidInstance) LivingEnemies() []*Enemy {
	var living []*Enemy
	for _, e := range r.Enemies {
		if e.Alive {
			living = append(living, e)
		}
	}
	return living
}

// ViewerVote is a vote from a non-player participant
type ViewerVote struct {
	Option string
	Viewer string
	Bits   int
}

// Weight is one plus a point per hundred bits
func (v *ViewerVote) Weight() int {
	bits := v.Bits
	if bits < 0 {
		bits = 0
	}
	return bits/100 + 1
}

// InstanceView is the instance snapshot handed to the presentation layer
type InstanceView struct {
	ID       string
	RaidID   string
	RaidName string
	Status   InstanceStatus
	Shape    ProgressionShape

	// Progress is the cursor into the progression shape
	Progress      int
	ProgressTotal int

	// Objective fields are set for objective raids
	ObjectiveName        string
	ObjectiveDescription string

	Players         []Combatant
	Boss            *Boss
	Enemies         []Enemy
	ActiveMechanics []string
	DamageBoost     bool
	Shield          bool
	RecentLog       []CombatLogEntry
}
