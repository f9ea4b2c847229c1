package raid

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/raidhall/internal/models"
)

var firstNumber = regexp.MustCompile(`\d+`)

// EvaluateAchievements returns the achievements a completed run earned
func EvaluateAchievements(achievements []*models.Achievement, stats models.CompletionStats) []models.AwardedAchievement {
	var awarded []models.AwardedAchievement
	for _, a := range achievements {
		if a == nil || !achievementEarned(a, stats) {
			continue
		}
		id := a.ID
		if id == "" {
			id = a.Name
		}
		awarded = append(awarded, models.AwardedAchievement{
			ID:          id,
			Name:        a.Name,
			Description: a.Description,
		})
	}
	return awarded
}

func achievementEarned(a *models.Achievement, stats models.CompletionStats) bool {
	if p := a.Predicate; p != nil && p.Kind != "" {
		switch p.Kind {
		case models.AchievementClear:
			return true
		case models.AchievementFlawless:
			return stats.TotalDeaths == 0
		case models.AchievementSpeedrun:
			return p.MaxMinutes > 0 && stats.CompletionTime < p.MaxMinutes*60
		}
		return false
	}

	// Requirement strings are matched loosely, first rule wins
	req := a.Requirement
	switch {
	case strings.Contains(req, "Defeat"):
		return true
	case strings.Contains(req, "without any player deaths"):
		return stats.TotalDeaths == 0
	case strings.Contains(req, "under"):
		minutes, ok := minutesIn(req)
		return ok && stats.CompletionTime < minutes*60
	}
	return false
}

func minutesIn(s string) (int, bool) {
	match := firstNumber.FindString(s)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}
