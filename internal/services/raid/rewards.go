package raid

import (
	"math"

	"github.com/KirkDiggler/raidhall/internal/models"
)

var difficultyMultipliers = map[models.Difficulty]float64{
	models.DifficultyNormal:    1.0,
	models.DifficultyHard:      1.5,
	models.DifficultyNightmare: 2.0,
	models.DifficultyMythic:    3.0,
}

// DifficultyMultiplier scales gold and experience. Unknown difficulties pay
// the normal rate.
func DifficultyMultiplier(d models.Difficulty) float64 {
	if m, ok := difficultyMultipliers[d]; ok {
		return m
	}
	return 1.0
}

// CalculateRewards scales the base table for a difficulty, rounding down
func CalculateRewards(base *models.Rewards, difficulty models.Difficulty) *models.RewardPayout {
	if base == nil {
		return &models.RewardPayout{}
	}

	m := DifficultyMultiplier(difficulty)
	return &models.RewardPayout{
		Gold:       int(math.Floor(float64(base.Gold) * m)),
		Experience: int(math.Floor(float64(base.Experience) * m)),
		Items:      append([]string(nil), base.Items...),
		UniqueLoot: append([]string(nil), base.UniqueLoot...),
		RaidTokens: base.RaidTokens,
		Titles:     append([]string(nil), base.Titles...),
	}
}
