package instance

import (
	"time"

	"github.com/KirkDiggler/raidhall/internal/models"
)

func (s *EngineTestSuite) TestBuffCost() {
	testCases := []struct {
		buff models.BuffType
		cost int
	}{
		{models.BuffHealRaid, 5},
		{models.BuffRevivePlayer, 10},
		{models.BuffDamageBoost, 8},
		{models.BuffShieldRaid, 12},
	}
	for _, tc := range testCases {
		cost, ok := BuffCost(tc.buff)
		s.True(ok)
		s.Equal(tc.cost, cost, string(tc.buff))
	}

	_, ok := BuffCost("summon_dragon")
	s.False(ok)
}

func (s *EngineTestSuite) TestApplyBuff_HealRaid() {
	e := s.newEngine(objectiveRaid("Escort"))
	tank := e.Instance().Players["tank-id"]
	healer := e.Instance().Players["healer-id"]
	tank.HP = 40
	healer.HP = 90

	result, err := e.ApplyBuff(models.BuffHealRaid, "tank-id")
	s.Require().NoError(err)
	s.Equal(5, result.Cost)
	s.Equal(65, tank.HP)
	s.Equal(100, healer.HP)
	s.Equal([]string{"tank-id", "healer-id"}, result.Affected)
}

func (s *EngineTestSuite) TestApplyBuff_HealRaidSkipsDead() {
	e := s.newEngine(objectiveRaid("Escort"))
	healer := e.Instance().Players["healer-id"]
	healer.HP = 0
	healer.Alive = false

	_, err := e.ApplyBuff(models.BuffHealRaid, "tank-id")
	s.Require().NoError(err)
	s.Equal(0, healer.HP)
	s.False(healer.Alive)
}

func (s *EngineTestSuite) TestApplyBuff_RevivePlayer() {
	e := s.newEngine(objectiveRaid("Escort"))

	_, err := e.ApplyBuff(models.BuffRevivePlayer, "tank-id")
	s.ErrorIs(err, ErrNoDeadPlayers)

	// the healer died last but the tank joined first
	for _, p := range e.Instance().Players {
		p.HP = 0
		p.Alive = false
	}

	result, err := e.ApplyBuff(models.BuffRevivePlayer, "someone")
	s.Require().NoError(err)
	s.Equal([]string{"tank-id"}, result.Affected)
	s.Equal("someone revived Tank", result.Message)

	tank := e.Instance().Players["tank-id"]
	s.True(tank.Alive)
	s.Equal(50, tank.HP)
	s.False(e.Instance().Players["healer-id"].Alive)
}

func (s *EngineTestSuite) TestApplyBuff_TimedFlags() {
	e := s.newEngine(objectiveRaid("Escort"))

	result, err := e.ApplyBuff(models.BuffDamageBoost, "tank-id")
	s.Require().NoError(err)
	s.Equal(s.now.Add(120*time.Second), result.ExpiresAt)

	result, err = e.ApplyBuff(models.BuffShieldRaid, "tank-id")
	s.Require().NoError(err)
	s.Equal(s.now.Add(60*time.Second), result.ExpiresAt)

	view := e.Snapshot()
	s.True(view.DamageBoost)
	s.True(view.Shield)
	s.Contains(view.ActiveMechanics, string(models.BuffDamageBoost))

	s.now = s.now.Add(90 * time.Second)
	view = e.Snapshot()
	s.True(view.DamageBoost)
	s.False(view.Shield)

	s.now = s.now.Add(time.Minute)
	s.False(e.Snapshot().DamageBoost)
}

func (s *EngineTestSuite) TestApplyBuff_Unknown() {
	e := s.newEngine(objectiveRaid("Escort"))

	_, err := e.ApplyBuff("summon_dragon", "tank-id")
	s.ErrorIs(err, ErrUnknownBuffType)
}
