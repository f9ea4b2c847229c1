package history

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/KirkDiggler/raidhall/internal/models"
)

// run is the database row for a finished instance
type run struct {
	ID              uint   `gorm:"primaryKey"`
	InstanceID      string `gorm:"size:64;uniqueIndex"`
	RaidID          string `gorm:"size:128;index"`
	RaidName        string `gorm:"size:256"`
	Difficulty      string `gorm:"size:32"`
	Status          string `gorm:"size:32;index"`
	StartedAt       time.Time
	EndedAt         time.Time `gorm:"index"`
	DurationSeconds int
	TotalDeaths     int
	TotalDamage     int
	TotalHealing    int
	Participants    datatypes.JSON
	PlayerStats     datatypes.JSON
	CreatedAt       time.Time
}

func (run) TableName() string {
	return "raid_runs"
}

func toRow(r *models.RunRecord) (*run, error) {
	participants, err := jsonOrEmpty(r.Participants)
	if err != nil {
		return nil, err
	}
	stats, err := jsonOrEmpty(r.Players)
	if err != nil {
		return nil, err
	}

	return &run{
		InstanceID:      r.InstanceID,
		RaidID:          r.RaidID,
		RaidName:        r.RaidName,
		Difficulty:      string(r.Difficulty),
		Status:          string(r.Status),
		StartedAt:       r.StartedAt,
		EndedAt:         r.EndedAt,
		DurationSeconds: r.CompletionTime,
		TotalDeaths:     r.TotalDeaths,
		TotalDamage:     r.TotalDamage,
		TotalHealing:    r.TotalHealing,
		Participants:    participants,
		PlayerStats:     stats,
	}, nil
}

func (r *run) toRecord() (*models.RunRecord, error) {
	record := &models.RunRecord{
		InstanceID:     r.InstanceID,
		RaidID:         r.RaidID,
		RaidName:       r.RaidName,
		Difficulty:     models.Difficulty(r.Difficulty),
		Status:         models.InstanceStatus(r.Status),
		StartedAt:      r.StartedAt.UTC(),
		EndedAt:        r.EndedAt.UTC(),
		CompletionTime: r.DurationSeconds,
		TotalDeaths:    r.TotalDeaths,
		TotalDamage:    r.TotalDamage,
		TotalHealing:   r.TotalHealing,
	}
	if len(r.Participants) > 0 {
		if err := json.Unmarshal(r.Participants, &record.Participants); err != nil {
			return nil, err
		}
	}
	if len(r.PlayerStats) > 0 {
		if err := json.Unmarshal(r.PlayerStats, &record.Players); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// jsonOrEmpty stores nil slices as an empty JSON array
func jsonOrEmpty[T any](v []T) (datatypes.JSON, error) {
	if len(v) == 0 {
		return datatypes.JSON("[]"), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
