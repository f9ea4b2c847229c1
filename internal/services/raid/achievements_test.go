package raid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/raidhall/internal/models"
)

func TestEvaluateAchievements(t *testing.T) {
	tests := []struct {
		name        string
		achievement *models.Achievement
		stats       models.CompletionStats
		earned      bool
	}{
		{
			name:        "defeat requirement always earned",
			achievement: &models.Achievement{Name: "Slayer", Requirement: "Defeat Ragnaros"},
			stats:       models.CompletionStats{TotalDeaths: 3, CompletionTime: 5000},
			earned:      true,
		},
		{
			name:        "no deaths earned",
			achievement: &models.Achievement{Name: "Untouched", Requirement: "Complete without any player deaths"},
			stats:       models.CompletionStats{TotalDeaths: 0},
			earned:      true,
		},
		{
			name:        "no deaths missed",
			achievement: &models.Achievement{Name: "Untouched", Requirement: "Complete without any player deaths"},
			stats:       models.CompletionStats{TotalDeaths: 1},
			earned:      false,
		},
		{
			name:        "under minutes earned",
			achievement: &models.Achievement{Name: "Speedy", Requirement: "Complete in under 10 minutes"},
			stats:       models.CompletionStats{CompletionTime: 599},
			earned:      true,
		},
		{
			name:        "under minutes is strict",
			achievement: &models.Achievement{Name: "Speedy", Requirement: "Complete in under 10 minutes"},
			stats:       models.CompletionStats{CompletionTime: 600},
			earned:      false,
		},
		{
			name:        "under without a number",
			achievement: &models.Achievement{Name: "Speedy", Requirement: "Complete in under a while"},
			stats:       models.CompletionStats{CompletionTime: 1},
			earned:      false,
		},
		{
			name:        "unrecognised requirement",
			achievement: &models.Achievement{Name: "Collector", Requirement: "Loot every chest"},
			earned:      false,
		},
		{
			name: "predicate overrides requirement text",
			achievement: &models.Achievement{
				Name:        "Flawless",
				Requirement: "Defeat Ragnaros",
				Predicate:   &models.AchievementPredicate{Kind: models.AchievementFlawless},
			},
			stats:  models.CompletionStats{TotalDeaths: 2},
			earned: false,
		},
		{
			name: "speedrun predicate",
			achievement: &models.Achievement{
				Name:      "Quick",
				Predicate: &models.AchievementPredicate{Kind: models.AchievementSpeedrun, MaxMinutes: 2},
			},
			stats:  models.CompletionStats{CompletionTime: 119},
			earned: true,
		},
		{
			name: "speedrun predicate without a limit",
			achievement: &models.Achievement{
				Name:      "Quick",
				Predicate: &models.AchievementPredicate{Kind: models.AchievementSpeedrun},
			},
			earned: false,
		},
		{
			name: "clear predicate",
			achievement: &models.Achievement{
				Name:      "Cleared",
				Predicate: &models.AchievementPredicate{Kind: models.AchievementClear},
			},
			stats:  models.CompletionStats{TotalDeaths: 9},
			earned: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			awarded := EvaluateAchievements([]*models.Achievement{tt.achievement}, tt.stats)
			if !tt.earned {
				assert.Empty(t, awarded)
				return
			}
			if assert.Len(t, awarded, 1) {
				assert.Equal(t, tt.achievement.Name, awarded[0].Name)
			}
		})
	}
}

func TestEvaluateAchievements_IDFallsBackToName(t *testing.T) {
	awarded := EvaluateAchievements([]*models.Achievement{
		nil,
		{ID: "ragnaros", Name: "Slayer", Requirement: "Defeat Ragnaros"},
		{Name: "Firewalker", Description: "Beat the heat", Requirement: "Defeat the core"},
	}, models.CompletionStats{})

	assert.Equal(t, []models.AwardedAchievement{
		{ID: "ragnaros", Name: "Slayer"},
		{ID: "Firewalker", Name: "Firewalker", Description: "Beat the heat"},
	}, awarded)
}
