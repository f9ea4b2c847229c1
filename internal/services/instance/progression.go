package instance

import (
	"fmt"

	"github.com/KirkDiggler/raidhall/internal/models"
)

// progression is one of the four raid shapes. The engine picks the
// implementation once, when the instance is created.
type progression interface {
	// start spawns the opening encounter
	start(e *Engine)

	// advance applies transition rules after an action and returns the
	// events it produced
	advance(e *Engine) []string

	// total is the number of steps in the progression
	total() int

	// mechanics lists the mechanics of the current step
	mechanics(e *Engine) []string
}

func newProgression(def *models.RaidDefinition) (progression, error) {
	shape := def.Shape
	if shape == "" {
		shape = def.ResolveShape()
	}

	switch shape {
	case models.ShapeWaves:
		return &waveProgression{waves: def.Waves}, nil
	case models.ShapePhases:
		return &phaseProgression{phases: def.Phases, boss: def.Boss}, nil
	case models.ShapeObjectives:
		return &objectiveProgression{objectives: def.Objectives}, nil
	case models.ShapeBossRush:
		return &bossRushProgression{bosses: def.BossRush}, nil
	}
	return nil, ErrUnknownProgression
}

func (e *Engine) spawnBoss(spec *models.BossSpec, fallbackName string, defaultHP int, phase int) {
	name := fallbackName
	if spec != nil && spec.Name != "" {
		name = spec.Name
	}
	hp := spec.HPOr(defaultHP)
	e.instance.Boss = &models.Boss{
		ID:    "boss",
		Name:  name,
		HP:    hp,
		MaxHP: hp,
		Phase: phase,
		Alive: true,
	}
	e.logf("%s appears!", name)
}

func (e *Engine) spawnEnemy(name string) {
	hp := e.def.TrashHP()
	e.instance.Enemies = append(e.instance.Enemies, &models.Enemy{
		ID:    e.nextEnemyID(),
		Name:  name,
		HP:    hp,
		MaxHP: hp,
		Alive: true,
	})
}

type waveProgression struct {
	waves []*models.Wave
}

func (p *waveProgression) start(e *Engine) {
	p.spawn(e, 0)
}

// spawn replaces the field with the given wave, sampling with replacement
func (p *waveProgression) spawn(e *Engine, index int) {
	wave := p.waves[index]
	e.instance.Progress = index
	e.instance.Enemies = nil
	e.instance.Boss = nil

	for i := 0; i < wave.Count && len(wave.Enemies) > 0; i++ {
		e.spawnEnemy(wave.Enemies[e.diceRoller.Intn(len(wave.Enemies))])
	}
	e.logf("Wave %d of %d: %d enemies approach", index+1, len(p.waves), wave.Count)

	if wave.Boss != nil {
		e.spawnBoss(wave.Boss, "Wave Boss", models.DefaultWaveBossHP, 0)
	}
}

func (p *waveProgression) advance(e *Engine) []string {
	inst := e.instance
	if len(inst.LivingEnemies()) > 0 {
		return nil
	}
	if inst.Boss != nil && inst.Boss.Alive {
		return nil
	}

	cleared := inst.Progress
	event := e.eventf("Wave %d cleared", cleared+1)
	if cleared+1 < len(p.waves) {
		p.spawn(e, cleared+1)
		return []string{event}
	}

	e.markCompleted()
	return []string{event, e.eventf("All waves cleared")}
}

func (p *waveProgression) total() int {
	return len(p.waves)
}

func (p *waveProgression) mechanics(e *Engine) []string {
	return nil
}

type phaseProgression struct {
	phases []*models.Phase
	boss   *models.BossSpec
}

func (p *phaseProgression) start(e *Engine) {
	e.instance.Progress = 0
	e.spawnBoss(p.boss, e.def.Name, models.DefaultPhaseBossHP, 0)
	p.enter(e, 0)
}

func (p *phaseProgression) enter(e *Engine, index int) {
	phase := p.phases[index]
	e.instance.Progress = index
	e.instance.Boss.Phase = index
	for _, add := range phase.Adds {
		e.spawnEnemy(add)
	}
	if phase.Name != "" {
		e.logf("%s enters phase %d: %s", e.instance.Boss.Name, index+1, phase.Name)
	}
}

func (p *phaseProgression) advance(e *Engine) []string {
	inst := e.instance
	if !inst.Boss.Alive {
		e.markCompleted()
		return []string{e.eventf("%s has been defeated", inst.Boss.Name)}
	}

	var events []string
	for inst.Progress+1 < len(p.phases) && inst.Boss.HPPercent() <= float64(p.phases[inst.Progress+1].UpperHP()) {
		p.enter(e, inst.Progress+1)
		events = append(events, e.eventf("Phase %d begins", inst.Progress+1))
	}
	return events
}

func (p *phaseProgression) total() int {
	return len(p.phases)
}

func (p *phaseProgression) mechanics(e *Engine) []string {
	return p.phases[e.instance.Progress].Mechanics
}

// objectiveProgression only moves when the owner calls AdvanceObjective
type objectiveProgression struct {
	objectives []*models.Objective
}

func (p *objectiveProgression) start(e *Engine) {
	e.instance.Progress = 0
	e.logf("Objective: %s", p.objectives[0].Name)
}

func (p *objectiveProgression) advance(e *Engine) []string {
	return nil
}

func (p *objectiveProgression) next(e *Engine) string {
	inst := e.instance
	done := p.objectives[inst.Progress]
	if inst.Progress+1 < len(p.objectives) {
		inst.Progress++
		e.logf("Objective complete: %s", done.Name)
		return e.eventf("Objective: %s", p.objectives[inst.Progress].Name)
	}
	e.markCompleted()
	return e.eventf("Objective complete: %s", done.Name)
}

func (p *objectiveProgression) current(e *Engine) *models.Objective {
	return p.objectives[e.instance.Progress]
}

func (p *objectiveProgression) total() int {
	return len(p.objectives)
}

func (p *objectiveProgression) mechanics(e *Engine) []string {
	return p.current(e).Mechanics
}

type bossRushProgression struct {
	bosses []*models.BossSpec
}

func (p *bossRushProgression) start(e *Engine) {
	e.instance.Progress = 0
	e.spawnBoss(p.bosses[0], "Boss 1", models.DefaultRushBossHP, 0)
}

func (p *bossRushProgression) advance(e *Engine) []string {
	inst := e.instance
	if inst.Boss.Alive {
		return nil
	}

	event := e.eventf("%s has been defeated", inst.Boss.Name)
	if inst.Progress+1 < len(p.bosses) {
		inst.Progress++
		e.spawnBoss(p.bosses[inst.Progress], fmt.Sprintf("Boss %d", inst.Progress+1), models.DefaultRushBossHP, 0)
		return []string{event}
	}

	e.markCompleted()
	return []string{event}
}

func (p *bossRushProgression) total() int {
	return len(p.bosses)
}

func (p *bossRushProgression) mechanics(e *Engine) []string {
	return nil
}
