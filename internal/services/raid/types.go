package raid

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/raidhall/internal/catalog"
	"github.com/KirkDiggler/raidhall/internal/common/clock"
	"github.com/KirkDiggler/raidhall/internal/common/uuid"
	"github.com/KirkDiggler/raidhall/internal/dice"
	"github.com/KirkDiggler/raidhall/internal/models"
	"github.com/KirkDiggler/raidhall/internal/repositories/history"
	"github.com/KirkDiggler/raidhall/internal/repositories/leaderboard"
	"github.com/KirkDiggler/raidhall/internal/services/instance"
	"github.com/KirkDiggler/raidhall/internal/services/lobby"
	"github.com/KirkDiggler/raidhall/internal/telemetry"
)

// Config holds configuration for the raid service
type Config struct {
	Catalog      catalog.Catalog
	LobbyService lobby.Service

	// LeaderboardRepo records completions of tracked raids
	LeaderboardRepo leaderboard.Repository

	// HistoryRepo records every finished run. Optional.
	HistoryRepo history.Repository

	DiceRoller    dice.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Metrics is optional
	Metrics *telemetry.Metrics

	VoteWindow time.Duration
	VotePolicy instance.VotePolicy

	Logger zerolog.Logger
}

// Lobby operations pass straight through to the lobby service
type (
	PlayerInfo        = lobby.PlayerInfo
	CreateLobbyInput  = lobby.CreateLobbyInput
	CreateLobbyOutput = lobby.CreateLobbyOutput
	JoinLobbyInput    = lobby.JoinLobbyInput
	JoinLobbyOutput   = lobby.JoinLobbyOutput
	LeaveLobbyInput   = lobby.LeaveLobbyInput
	LeaveLobbyOutput  = lobby.LeaveLobbyOutput
	ChangeRoleInput   = lobby.ChangeRoleInput
	ChangeRoleOutput  = lobby.ChangeRoleOutput
	GetLobbyInput     = lobby.GetLobbyInput
	GetLobbyOutput    = lobby.GetLobbyOutput
	ListLobbiesInput  = lobby.ListLobbiesInput
	ListLobbiesOutput = lobby.ListLobbiesOutput
	ActionResult      = instance.ActionResult
	BuffResult        = instance.BuffResult
	VoteStatus        = instance.VoteStatus
	VoteOutcome       = instance.VoteOutcome
)

type StartRaidInput struct {
	LobbyID     string
	RequesterID string
}

type StartRaidOutput struct {
	Instance *models.InstanceView
}

// Finish is set on outputs of operations that can end an instance
type Finish struct {
	// Finished is true when this operation completed or wiped the instance
	Finished bool

	// Completion is the result payload when Finished
	Completion *models.CompletionView
}

type PerformActionInput struct {
	InstanceID string
	PlayerID   string
	Action     models.PlayerAction
}

type PerformActionOutput struct {
	Result   *ActionResult
	Instance *models.InstanceView
	Finish
}

type SubmitViewerVoteInput struct {
	InstanceID string
	Vote       models.ViewerVote
}

type SubmitViewerVoteOutput struct {
	Status *VoteStatus
}

type GetVotingStatusInput struct {
	InstanceID string
}

type GetVotingStatusOutput struct {
	Status *VoteStatus
}

type ResolveViewerVoteInput struct {
	InstanceID string
}

type ResolveViewerVoteOutput struct {
	Outcome *VoteOutcome
}

type PurchaseRaidBuffInput struct {
	InstanceID string
	PlayerID   string
	Buff       models.BuffType
}

type PurchaseRaidBuffOutput struct {
	Result   *BuffResult
	Instance *models.InstanceView
	Finish
}

type AdvanceObjectiveInput struct {
	InstanceID string
}

type AdvanceObjectiveOutput struct {
	Event    string
	Instance *models.InstanceView
	Finish
}

type GetInstanceInput struct {
	InstanceID string
}

type GetInstanceOutput struct {
	Instance *models.InstanceView
}

type GetLeaderboardInput struct {
	RaidID string

	// Category defaults to fastest_clear
	Category models.LeaderboardCategory

	Limit int
}

type GetLeaderboardOutput struct {
	RaidID   string
	Category models.LeaderboardCategory
	Entries  []*models.RankedEntry
}

type ListLeaderboardsInput struct {
}

// LeaderboardSummary names a raid with a leaderboard. RaidName is the raid id
// when the raid is no longer in the catalog.
type LeaderboardSummary struct {
	RaidID   string
	RaidName string
}

type ListLeaderboardsOutput struct {
	Leaderboards []LeaderboardSummary
}

type GetRaidHistoryInput struct {
	// RaidID filters to one raid when set
	RaidID string
	Limit  int
}

type GetRaidHistoryOutput struct {
	Runs []*models.RunRecord
}
