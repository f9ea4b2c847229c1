package raid

import (
	"github.com/KirkDiggler/raidhall/internal/models"
	"github.com/KirkDiggler/raidhall/internal/services/instance"
)

// buildCompletion summarises a finished instance. Only completed runs earn
// rewards and achievements.
func buildCompletion(e *instance.Engine) *models.CompletionView {
	inst := e.Instance()
	def := e.Definition()

	stats := models.CompletionStats{
		CompletionTime: int(inst.EndedAt.Sub(inst.StartedAt).Seconds()),
	}
	for _, p := range inst.OrderedPlayers() {
		stats.TotalDeaths += p.Deaths
		stats.TotalDamage += p.DamageDealt
		stats.TotalHealing += p.HealingDone
		stats.Players = append(stats.Players, models.PlayerStats{
			PlayerID:    p.ID,
			Name:        p.Name,
			Role:        p.Role,
			DamageDealt: p.DamageDealt,
			HealingDone: p.HealingDone,
			Deaths:      p.Deaths,
			Alive:       p.Alive,
		})
	}

	view := &models.CompletionView{
		InstanceID: inst.ID,
		RaidID:     inst.RaidID,
		RaidName:   inst.RaidName,
		Status:     inst.Status,
		Difficulty: inst.Difficulty,
		StartedAt:  inst.StartedAt,
		EndedAt:    inst.EndedAt,
		Stats:      stats,
	}
	if inst.Status == models.InstanceStatusCompleted {
		view.Rewards = CalculateRewards(def.Rewards, inst.Difficulty)
		view.Achievements = EvaluateAchievements(def.Achievements, stats)
	}
	return view
}

func participantNames(c *models.CompletionView) []string {
	names := make([]string, 0, len(c.Stats.Players))
	for _, p := range c.Stats.Players {
		names = append(names, p.Name)
	}
	return names
}

func leaderboardEntry(c *models.CompletionView) *models.LeaderboardEntry {
	return &models.LeaderboardEntry{
		InstanceID:     c.InstanceID,
		Players:        participantNames(c),
		CompletionTime: c.Stats.CompletionTime,
		Deaths:         c.Stats.TotalDeaths,
		TotalDamage:    c.Stats.TotalDamage,
		Difficulty:     c.Difficulty,
		Timestamp:      c.EndedAt,
	}
}

func runRecord(c *models.CompletionView) *models.RunRecord {
	return &models.RunRecord{
		InstanceID:     c.InstanceID,
		RaidID:         c.RaidID,
		RaidName:       c.RaidName,
		Difficulty:     c.Difficulty,
		Status:         c.Status,
		StartedAt:      c.StartedAt,
		EndedAt:        c.EndedAt,
		CompletionTime: c.Stats.CompletionTime,
		TotalDeaths:    c.Stats.TotalDeaths,
		TotalDamage:    c.Stats.TotalDamage,
		TotalHealing:   c.Stats.TotalHealing,
		Participants:   participantNames(c),
		Players:        append([]models.PlayerStats(nil), c.Stats.Players...),
	}
}
