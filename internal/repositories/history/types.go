package history

import "github.com/KirkDiggler/raidhall/internal/models"

// DefaultListLimit is the page size when ListRuns does not ask for one
const DefaultListLimit = 20

type RecordRunInput struct {
	Run *models.RunRecord
}

type ListRunsInput struct {
	// RaidID filters to one raid when set
	RaidID string

	Limit int
}

type ListRunsOutput struct {
	Runs []*models.RunRecord
}
