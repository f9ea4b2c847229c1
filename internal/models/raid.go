package models

// Difficulty scales rewards for a run
type Difficulty string

const (
	DifficultyNormal    Difficulty = "normal"
	DifficultyHard      Difficulty = "hard"
	DifficultyNightmare Difficulty = "nightmare"
	DifficultyMythic    Difficulty = "mythic"
)

// ProgressionShape is the single progression model a raid runs with. It is
// resolved once when the catalog is loaded.
type ProgressionShape string

const (
	ShapeWaves      ProgressionShape = "waves"
	ShapePhases     ProgressionShape = "phases"
	ShapeObjectives ProgressionShape = "objectives"
	ShapeBossRush   ProgressionShape = "boss_rush"
)

// Default hit points used when a definition leaves them out
const (
	DefaultEnemyHP     = 100
	DefaultWaveBossHP  = 500
	DefaultPhaseBossHP = 10000
	DefaultRushBossHP  = 1000
)

// RaidDefinition is the immutable catalog entry for a raid
type RaidDefinition struct {
	// ID is the catalog key for the raid
	ID string `yaml:"-"`

	Name             string     `yaml:"name"`
	EntranceLocation string     `yaml:"entrance_location"`
	MinPlayers       int        `yaml:"min_players"`
	MaxPlayers       int        `yaml:"max_players"`
	Difficulty       Difficulty `yaml:"difficulty"`

	// Exactly one of these drives the instance, see Shape
	Waves      []*Wave      `yaml:"waves"`
	Phases     []*Phase     `yaml:"phases"`
	Objectives []*Objective `yaml:"objectives"`
	BossRush   []*BossSpec  `yaml:"boss_rush"`

	// Boss is the single boss fought through every phase of a phase raid
	Boss *BossSpec `yaml:"boss"`

	// EnemyHP overrides DefaultEnemyHP for trash enemies
	EnemyHP int `yaml:"enemy_hp"`

	Roles        map[string]*RoleQuota `yaml:"roles"`
	Rewards      *Rewards              `yaml:"rewards"`
	Leaderboard  *LeaderboardSettings  `yaml:"leaderboard"`
	Achievements []*Achievement        `yaml:"achievements"`
	Mechanics    []string              `yaml:"mechanics"`

	// Shape is set by the catalog loader
	Shape ProgressionShape `yaml:"-"`
}

// ResolveShape picks the progression shape by field presence in the fixed
// priority waves, phases, objectives, boss rush. Returns "" when none is set.
func (d *RaidDefinition) ResolveShape() ProgressionShape {
	switch {
	case len(d.Waves) > 0:
		return ShapeWaves
	case len(d.Phases) > 0:
		return ShapePhases
	case len(d.Objectives) > 0:
		return ShapeObjectives
	case len(d.BossRush) > 0:
		return ShapeBossRush
	}
	return ""
}

// TrashHP returns the hit points for a spawned trash enemy
func (d *RaidDefinition) TrashHP() int {
	if d.EnemyHP > 0 {
		return d.EnemyHP
	}
	return DefaultEnemyHP
}

// IsLeaderboardTracked reports whether completions are ranked
func (d *RaidDefinition) IsLeaderboardTracked() bool {
	return d.Leaderboard != nil && d.Leaderboard.Tracked
}

// RoleQuotas flattens the role table into role -> required count
func (d *RaidDefinition) RoleQuotas() map[string]int {
	quotas := make(map[string]int, len(d.Roles))
	for role, q := range d.Roles {
		if q == nil {
			continue
		}
		quotas[role] = q.Required
	}
	return quotas
}

// Wave spawns Count enemies sampled from Enemies, plus an optional boss
type Wave struct {
	Enemies []string  `yaml:"enemies"`
	Count   int       `yaml:"count"`
	Boss    *BossSpec `yaml:"boss"`
}

// Phase is a boss phase entered once the boss drops to the upper bound of HPRange
type Phase struct {
	Name      string   `yaml:"name"`
	HPRange   []int    `yaml:"hp_range"`
	Adds      []string `yaml:"adds"`
	Mechanics []string `yaml:"mechanics"`
}

// UpperHP returns the percentage at which the phase begins
func (p *Phase) UpperHP() int {
	if len(p.HPRange) == 0 {
		return 100
	}
	upper := p.HPRange[0]
	for _, v := range p.HPRange[1:] {
		if v > upper {
			upper = v
		}
	}
	return upper
}

// Objective is a narrative checkpoint
type Objective struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Mechanics   []string `yaml:"mechanics"`
}

// BossSpec names a boss and its hit points
type BossSpec struct {
	Name string `yaml:"name"`
	HP   int    `yaml:"hp"`
}

// HPOr returns the declared hit points or fallback when unset
func (b *BossSpec) HPOr(fallback int) int {
	if b == nil || b.HP <= 0 {
		return fallback
	}
	return b.HP
}

// RoleQuota is how many players of a role the raid needs
type RoleQuota struct {
	Required int `yaml:"required"`
}

// Rewards is the base reward table before difficulty scaling
type Rewards struct {
	Gold       int      `yaml:"gold"`
	Experience int      `yaml:"experience"`
	Items      []string `yaml:"items"`
	UniqueLoot []string `yaml:"unique_loot"`
	RaidTokens int      `yaml:"raid_tokens"`
	Titles     []string `yaml:"titles"`
}

type LeaderboardSettings struct {
	Tracked bool `yaml:"tracked"`
}

// AchievementKind is the structured form of an achievement predicate
type AchievementKind string

const (
	AchievementClear    AchievementKind = "clear"
	AchievementFlawless AchievementKind = "flawless"
	AchievementSpeedrun AchievementKind = "speedrun"
)

// Achievement is awarded on completion. Requirement is free text kept for
// older content; Predicate takes precedence when present.
type Achievement struct {
	ID          string                `yaml:"id"`
	Name        string                `yaml:"name"`
	Description string                `yaml:"description"`
	Requirement string                `yaml:"requirement"`
	Predicate   *AchievementPredicate `yaml:"predicate"`
}

type AchievementPredicate struct {
	Kind       AchievementKind `yaml:"kind"`
	MaxMinutes int             `yaml:"max_minutes"`
}
