package raid

import (
	"github.com/KirkDiggler/raidhall/internal/repositories/leaderboard"
	"github.com/KirkDiggler/raidhall/internal/services/instance"
	"github.com/KirkDiggler/raidhall/internal/services/lobby"
)

// RaidError is a custom error type for orchestrator errors
type RaidError string

// Error implements the error interface
func (e RaidError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInstanceNotFound   RaidError = "raid instance not found"
	ErrInvalidInput       RaidError = "invalid input"
	ErrNilConfig          RaidError = "config cannot be nil"
	ErrNilCatalog         RaidError = "catalog cannot be nil"
	ErrNilLobbyService    RaidError = "lobby service cannot be nil"
	ErrNilDiceRoller      RaidError = "dice roller cannot be nil"
	ErrNilClock           RaidError = "clock cannot be nil"
	ErrNilUUIDGenerator   RaidError = "uuid generator cannot be nil"
	ErrNilLeaderboardRepo RaidError = "leaderboard repository cannot be nil"
)

// Lobby and instance errors, so callers only need this package
const (
	ErrRaidNotFound            = lobby.ErrRaidNotFound
	ErrLobbyNotFound           = lobby.ErrLobbyNotFound
	ErrLocationMismatch        = lobby.ErrLocationMismatch
	ErrLobbyFull               = lobby.ErrLobbyFull
	ErrRoleFull                = lobby.ErrRoleFull
	ErrAlreadyJoined           = lobby.ErrAlreadyJoined
	ErrPlayerNotInLobby        = lobby.ErrPlayerNotInLobby
	ErrStartRequirementsNotMet = lobby.ErrStartRequirementsNotMet

	ErrPlayerCannotAct   = instance.ErrPlayerCannotAct
	ErrUnknownActionType = instance.ErrUnknownActionType
	ErrInvalidTarget     = instance.ErrInvalidTarget
	ErrTauntRequiresTank = instance.ErrTauntRequiresTank
	ErrUnknownBuffType   = instance.ErrUnknownBuffType
	ErrNoDeadPlayers     = instance.ErrNoDeadPlayers
	ErrVotingDisabled    = instance.ErrVotingDisabled
	ErrNoVotingWindow    = instance.ErrNoVotingWindow
	ErrNotObjectiveRaid  = instance.ErrNotObjectiveRaid
	ErrInstanceFinished  = instance.ErrInstanceFinished
	ErrInvalidVote       = instance.ErrInvalidVote
	ErrInvalidVotePolicy = instance.ErrInvalidVotePolicy
)

// ErrUnknownCategory is returned for a leaderboard sort order that does not exist
var ErrUnknownCategory = leaderboard.ErrUnknownCategory
