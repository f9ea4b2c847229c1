package instance

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/raidhall/internal/models"
)

const (
	damageBoostDuration = 120 * time.Second
	shieldDuration      = 60 * time.Second
)

var buffCosts = map[models.BuffType]int{
	models.BuffHealRaid:     5,
	models.BuffRevivePlayer: 10,
	models.BuffDamageBoost:  8,
	models.BuffShieldRaid:   12,
}

// BuffCost returns the legacy point price of a buff
func BuffCost(buff models.BuffType) (int, bool) {
	cost, ok := buffCosts[buff]
	return cost, ok
}

// ApplyBuff applies a purchased buff. The caller has already checked and
// debited the purchaser's currency.
func (e *Engine) ApplyBuff(buff models.BuffType, purchaserID string) (*BuffResult, error) {
	if err := e.checkActive(); err != nil {
		return nil, err
	}
	cost, ok := BuffCost(buff)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBuffType, buff)
	}

	purchaser := purchaserID
	if p, ok := e.instance.Players[purchaserID]; ok {
		purchaser = p.Name
	}

	result := &BuffResult{Buff: buff, Cost: cost}
	now := e.clock.Now()

	switch buff {
	case models.BuffHealRaid:
		for _, p := range e.instance.LivingPlayers() {
			p.HP += p.MaxHP / 4
			if p.HP > p.MaxHP {
				p.HP = p.MaxHP
			}
			result.Affected = append(result.Affected, p.ID)
		}
		result.Message = fmt.Sprintf("%s healed the raid", purchaser)
	case models.BuffRevivePlayer:
		var dead *models.Combatant
		for _, p := range e.instance.OrderedPlayers() {
			if !p.Alive {
				dead = p
				break
			}
		}
		if dead == nil {
			return nil, ErrNoDeadPlayers
		}
		dead.Alive = true
		dead.HP = dead.MaxHP / 2
		result.Affected = []string{dead.ID}
		result.Message = fmt.Sprintf("%s revived %s", purchaser, dead.Name)
	case models.BuffDamageBoost:
		e.instance.DamageBoost = &models.TimedEffect{AppliedBy: purchaserID, ExpiresAt: now.Add(damageBoostDuration)}
		result.ExpiresAt = e.instance.DamageBoost.ExpiresAt
		result.Message = fmt.Sprintf("%s empowered the raid for %s", purchaser, damageBoostDuration)
	case models.BuffShieldRaid:
		e.instance.Shield = &models.TimedEffect{AppliedBy: purchaserID, ExpiresAt: now.Add(shieldDuration)}
		result.ExpiresAt = e.instance.Shield.ExpiresAt
		result.Message = fmt.Sprintf("%s shielded the raid for %s", purchaser, shieldDuration)
	}

	e.logf("%s", result.Message)
	e.flushPending()

	e.logger.Info().
		Str("buff", string(buff)).
		Str("purchaser_id", purchaserID).
		Int("cost", cost).
		Msg("buff applied")

	return result, nil
}
