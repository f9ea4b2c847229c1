package instance

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/raidhall/internal/common/clock"
	"github.com/KirkDiggler/raidhall/internal/dice"
	"github.com/KirkDiggler/raidhall/internal/models"
)

// Engine runs one raid instance. It is not safe for concurrent use; a Runner
// owns it and serialises every call.
type Engine struct {
	instance    *models.RaidInstance
	def         *models.RaidDefinition
	progression progression

	diceRoller dice.Roller
	clock      clock.Clock
	logger     zerolog.Logger

	voteWindow time.Duration
	votePolicy VotePolicy

	enemySeq int

	// pending collects log lines for the action in flight
	pending []string
}

// New builds an instance from a started lobby and spawns the opening encounter
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Definition == nil {
		return nil, ErrNilDefinition
	}
	if cfg.Lobby == nil {
		return nil, ErrNilLobby
	}
	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	prog, err := newProgression(cfg.Definition)
	if err != nil {
		return nil, err
	}

	policy := cfg.VotePolicy
	if policy == "" {
		policy = VotePolicyRetain
	}
	window := cfg.VoteWindow
	if window <= 0 {
		window = DefaultVoteWindow
	}

	shape := cfg.Definition.Shape
	if shape == "" {
		shape = cfg.Definition.ResolveShape()
	}

	now := cfg.Clock.Now()
	lobby := cfg.Lobby
	inst := &models.RaidInstance{
		ID:          cfg.InstanceID,
		RaidID:      cfg.Definition.ID,
		RaidName:    cfg.Definition.Name,
		LobbyID:     lobby.ID,
		Difficulty:  lobby.Difficulty,
		Settings:    lobby.Settings,
		Shape:       shape,
		Players:     make(map[string]*models.Combatant, len(lobby.Players)),
		PlayerOrder: make([]string, 0, len(lobby.Players)),
		Status:      models.InstanceStatusActive,
		StartedAt:   now,
	}
	for _, p := range lobby.OrderedPlayers() {
		inst.Players[p.ID] = newCombatant(p)
		inst.PlayerOrder = append(inst.PlayerOrder, p.ID)
	}

	e := &Engine{
		instance:    inst,
		def:         cfg.Definition,
		progression: prog,
		diceRoller:  cfg.DiceRoller,
		clock:       cfg.Clock,
		logger:      cfg.Logger.With().Str("instance_id", cfg.InstanceID).Logger(),
		voteWindow:  window,
		votePolicy:  policy,
	}

	e.logf("%s has begun with %d players", inst.RaidName, len(inst.Players))
	prog.start(e)
	e.flushPending()

	return e, nil
}

func newCombatant(p *models.LobbyPlayer) *models.Combatant {
	level := p.Level
	if level < 1 {
		level = 1
	}
	maxHP := baseHP + hpPerLvl*(level-1)
	maxMana := baseMana + manaPerLvl*(level-1)
	return &models.Combatant{
		ID:      p.ID,
		Name:    p.Name,
		Class:   p.Class,
		Role:    p.Role,
		Level:   level,
		HP:      maxHP,
		MaxHP:   maxHP,
		Mana:    maxMana,
		MaxMana: maxMana,
		Alive:   true,
	}
}

// ID returns the instance id
func (e *Engine) ID() string {
	return e.instance.ID
}

// Instance exposes the underlying state for read-only use by the owner
func (e *Engine) Instance() *models.RaidInstance {
	return e.instance
}

// Definition returns the raid being run
func (e *Engine) Definition() *models.RaidDefinition {
	return e.def
}

// IsComplete reports whether the progression has been cleared
func (e *Engine) IsComplete() bool {
	return e.instance.Status == models.InstanceStatusCompleted
}

// IsWiped reports whether every player is dead
func (e *Engine) IsWiped() bool {
	if len(e.instance.Players) == 0 {
		return false
	}
	for _, p := range e.instance.Players {
		if p.Alive {
			return false
		}
	}
	return true
}

// Complete marks the instance completed and stamps the end time
func (e *Engine) Complete() {
	e.finish(models.InstanceStatusCompleted)
}

// Wipe marks the instance wiped and stamps the end time
func (e *Engine) Wipe() {
	e.finish(models.InstanceStatusWiped)
}

// markCompleted is used by progressions once the final step is cleared
func (e *Engine) markCompleted() {
	e.instance.Status = models.InstanceStatusCompleted
	if e.instance.EndedAt.IsZero() {
		e.instance.EndedAt = e.clock.Now()
	}
}

func (e *Engine) finish(status models.InstanceStatus) {
	if e.instance.EndedAt.IsZero() {
		e.instance.EndedAt = e.clock.Now()
	}
	if e.instance.Status != status {
		e.instance.Status = status
		e.logf("%s %s", e.instance.RaidName, status)
		e.flushPending()
	}
}

// AdvanceObjective moves an objective raid to its next checkpoint. Passing the
// final objective completes the instance.
func (e *Engine) AdvanceObjective() (string, error) {
	if err := e.checkActive(); err != nil {
		return "", err
	}
	obj, ok := e.progression.(*objectiveProgression)
	if !ok {
		return "", ErrNotObjectiveRaid
	}
	event := obj.next(e)
	e.flushPending()
	return event, nil
}

func (e *Engine) checkActive() error {
	if e.instance.Status.IsTerminal() {
		return ErrInstanceFinished
	}
	return nil
}

// logf queues a combat log line for the current operation
func (e *Engine) logf(format string, args ...any) {
	e.pending = append(e.pending, fmt.Sprintf(format, args...))
}

// flushPending appends queued lines to the bounded combat log and returns them
func (e *Engine) flushPending() []string {
	lines := e.pending
	e.pending = nil

	now := e.clock.Now()
	for _, line := range lines {
		e.instance.CombatLog = append(e.instance.CombatLog, models.CombatLogEntry{
			Timestamp: now,
			Message:   line,
		})
	}
	if over := len(e.instance.CombatLog) - combatLogCapacity; over > 0 {
		e.instance.CombatLog = append([]models.CombatLogEntry(nil), e.instance.CombatLog[over:]...)
	}
	return lines
}

func (e *Engine) nextEnemyID() string {
	e.enemySeq++
	return fmt.Sprintf("enemy-%d", e.enemySeq)
}

// Snapshot copies the instance into a presentation view
func (e *Engine) Snapshot() *models.InstanceView {
	inst := e.instance
	now := e.clock.Now()

	view := &models.InstanceView{
		ID:              inst.ID,
		RaidID:          inst.RaidID,
		RaidName:        inst.RaidName,
		Status:          inst.Status,
		Shape:           inst.Shape,
		Progress:        inst.Progress,
		ProgressTotal:   e.progression.total(),
		ActiveMechanics: e.activeMechanics(now),
		DamageBoost:     inst.DamageBoost.ActiveAt(now),
		Shield:          inst.Shield.ActiveAt(now),
	}

	if obj, ok := e.progression.(*objectiveProgression); ok {
		current := obj.current(e)
		view.ObjectiveName = current.Name
		view.ObjectiveDescription = current.Description
	}

	for _, p := range inst.OrderedPlayers() {
		view.Players = append(view.Players, *p)
	}
	if inst.Boss != nil {
		boss := *inst.Boss
		view.Boss = &boss
	}
	for _, enemy := range inst.LivingEnemies() {
		view.Enemies = append(view.Enemies, *enemy)
	}

	recent := inst.CombatLog
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	view.RecentLog = append([]models.CombatLogEntry(nil), recent...)

	return view
}

func (e *Engine) activeMechanics(now time.Time) []string {
	mechanics := append([]string(nil), e.def.Mechanics...)
	mechanics = append(mechanics, e.progression.mechanics(e)...)
	if e.instance.DamageBoost.ActiveAt(now) {
		mechanics = append(mechanics, string(models.BuffDamageBoost))
	}
	if e.instance.Shield.ActiveAt(now) {
		mechanics = append(mechanics, string(models.BuffShieldRaid))
	}
	return mechanics
}
