package instance

import (
	"fmt"

	"github.com/KirkDiggler/raidhall/internal/models"
)

// ProcessPlayerAction applies one action, runs the retaliation pass and then
// the progression transition rules. Nothing is mutated when an error is
// returned.
func (e *Engine) ProcessPlayerAction(playerID string, action *models.PlayerAction) (*ActionResult, error) {
	if err := e.checkActive(); err != nil {
		return nil, err
	}

	actor, ok := e.instance.Players[playerID]
	if !ok || !actor.Alive {
		return nil, ErrPlayerCannotAct
	}
	if action == nil {
		return nil, ErrUnknownActionType
	}

	result := &ActionResult{}

	switch action.Type {
	case models.ActionAttack:
		if err := e.attack(actor, action.TargetID, result); err != nil {
			return nil, err
		}
	case models.ActionHeal:
		if err := e.heal(actor, action.TargetID, result); err != nil {
			return nil, err
		}
	case models.ActionAbility:
		ability := action.Ability
		if ability == "" {
			ability = "an ability"
		}
		e.logf("%s used %s", actor.Name, ability)
	case models.ActionTaunt:
		if actor.Role != models.RoleTank {
			return nil, ErrTauntRequiresTank
		}
		// TODO: make enemies prefer the taunting tank when picking retaliation targets
		e.logf("%s taunts the enemies", actor.Name)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownActionType, action.Type)
	}

	result.Retaliation = e.retaliate()
	result.Events = e.progression.advance(e)
	result.Log = e.flushPending()
	result.Status = e.instance.Status

	e.logger.Debug().
		Str("player_id", playerID).
		Str("action", string(action.Type)).
		Int("damage", result.Damage).
		Int("healing", result.Healing).
		Msg("action processed")

	return result, nil
}

func (e *Engine) attack(actor *models.Combatant, targetID string, result *ActionResult) error {
	inst := e.instance

	if targetID == models.BossTargetID || (inst.Boss != nil && targetID == inst.Boss.ID) {
		boss := inst.Boss
		if boss == nil || !boss.Alive {
			return fmt.Errorf("%w: no boss to attack", ErrInvalidTarget)
		}
		damage := e.diceRoller.Between(attackMin, attackMax)
		boss.HP -= damage
		actor.DamageDealt += damage
		result.Damage = damage
		e.logf("%s hits %s for %d damage", actor.Name, boss.Name, damage)
		if boss.HP <= 0 {
			boss.HP = 0
			boss.Alive = false
			result.Killed = true
			e.logf("%s has been slain by %s!", boss.Name, actor.Name)
		}
		return nil
	}

	enemy := e.findEnemy(targetID)
	if enemy == nil || !enemy.Alive {
		return fmt.Errorf("%w: %s", ErrInvalidTarget, targetID)
	}
	damage := e.diceRoller.Between(attackMin, attackMax)
	enemy.HP -= damage
	actor.DamageDealt += damage
	result.Damage = damage
	e.logf("%s hits %s for %d damage", actor.Name, enemy.Name, damage)
	if enemy.HP <= 0 {
		enemy.HP = 0
		enemy.Alive = false
		result.Killed = true
		e.logf("%s has been defeated", enemy.Name)
	}
	return nil
}

func (e *Engine) heal(actor *models.Combatant, targetID string, result *ActionResult) error {
	if targetID == "" {
		targetID = actor.ID
	}
	target, ok := e.instance.Players[targetID]
	if !ok || !target.Alive {
		return fmt.Errorf("%w: %s", ErrInvalidTarget, targetID)
	}

	amount := e.diceRoller.Between(healMin, healMax)
	if missing := target.MaxHP - target.HP; amount > missing {
		amount = missing
	}
	target.HP += amount
	actor.HealingDone += amount
	result.Healing = amount
	e.logf("%s heals %s for %d", actor.Name, target.Name, amount)
	return nil
}

// retaliate lets the boss and every living trash enemy strike once
func (e *Engine) retaliate() []Hit {
	var hits []Hit

	if boss := e.instance.Boss; boss != nil && boss.Alive {
		if hit, ok := e.strike(boss.Name, bossHitMin, bossHitMax); ok {
			hits = append(hits, hit)
		}
	}
	for _, enemy := range e.instance.LivingEnemies() {
		hit, ok := e.strike(enemy.Name, trashHitMin, trashHitMax)
		if !ok {
			break
		}
		hits = append(hits, hit)
	}

	return hits
}

// strike hits a random living player; false when nobody is left standing
func (e *Engine) strike(attacker string, min, max int) (Hit, bool) {
	living := e.instance.LivingPlayers()
	if len(living) == 0 {
		return Hit{}, false
	}

	target := living[e.diceRoller.Intn(len(living))]
	damage := e.diceRoller.Between(min, max)
	target.HP -= damage
	hit := Hit{Attacker: attacker, TargetID: target.ID, Damage: damage}
	e.logf("%s strikes %s for %d damage", attacker, target.Name, damage)

	if target.HP <= 0 {
		target.HP = 0
		target.Alive = false
		target.Deaths++
		hit.Lethal = true
		e.logf("%s has fallen!", target.Name)
	}
	return hit, true
}

func (e *Engine) findEnemy(id string) *models.Enemy {
	for _, enemy := range e.instance.Enemies {
		if enemy.ID == id {
			return enemy
		}
	}
	return nil
}

// eventf logs a progression event and returns its text
func (e *Engine) eventf(format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	e.logf("%s", msg)
	return msg
}
