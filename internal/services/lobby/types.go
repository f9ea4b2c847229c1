package lobby

import (
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/raidhall/internal/catalog"
	"github.com/KirkDiggler/raidhall/internal/common/clock"
	"github.com/KirkDiggler/raidhall/internal/common/uuid"
	"github.com/KirkDiggler/raidhall/internal/dice"
	"github.com/KirkDiggler/raidhall/internal/models"
)

// Config holds configuration for the lobby service
type Config struct {
	// Catalog supplies raid definitions
	Catalog catalog.Catalog

	// DiceRoller picks the new leader when the leader leaves
	DiceRoller dice.Roller

	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Logger is optional
	Logger zerolog.Logger
}

// PlayerInfo describes a player entering a lobby
type PlayerInfo struct {
	ID    string
	Name  string
	Level int
	Class string
}

// CreateLobbyInput contains parameters for opening a lobby
type CreateLobbyInput struct {
	// RaidID is the catalog key of the raid
	RaidID string

	// Leader is the player opening the lobby
	Leader PlayerInfo

	// LeaderLocation is where the leader currently stands
	LeaderLocation string

	// Role is the leader's role, "dps" when empty
	Role string

	// Difficulty overrides the raid's default difficulty when set
	Difficulty models.Difficulty

	// RequireRoles defaults to true when nil
	RequireRoles *bool

	// AllowViewerVoting defaults to true when nil
	AllowViewerVoting *bool
}

// CreateLobbyOutput contains the created lobby
type CreateLobbyOutput struct {
	Lobby *models.LobbyView
}

// JoinLobbyInput contains parameters for joining a lobby
type JoinLobbyInput struct {
	LobbyID string
	Player  PlayerInfo

	// Role is "dps" when empty
	Role string
}

// JoinLobbyOutput contains the lobby after the join
type JoinLobbyOutput struct {
	Lobby *models.LobbyView

	// RoleCounts is role -> members holding it
	RoleCounts map[string]int
}

// LeaveLobbyInput contains parameters for leaving a lobby
type LeaveLobbyInput struct {
	LobbyID  string
	PlayerID string
}

// LeaveLobbyOutput contains the result of leaving a lobby
type LeaveLobbyOutput struct {
	// Disbanded is true when the last member left and the lobby was deleted
	Disbanded bool

	LeadershipTransferred bool
	NewLeaderID           string
	NewLeaderName         string

	// Lobby is nil when disbanded
	Lobby *models.LobbyView
}

// ChangeRoleInput contains parameters for switching roles
type ChangeRoleInput struct {
	LobbyID  string
	PlayerID string
	Role     string
}

// ChangeRoleOutput contains the lobby after the role change
type ChangeRoleOutput struct {
	Lobby      *models.LobbyView
	RoleCounts map[string]int
}

type GetLobbyInput struct {
	LobbyID string
}

type GetLobbyOutput struct {
	Lobby *models.LobbyView
}

// ListLobbiesInput filters by RaidID when set
type ListLobbiesInput struct {
	RaidID string
}

type ListLobbiesOutput struct {
	Lobbies []*models.LobbyView
}

// TakeForStartInput contains parameters for converting a lobby into a run
type TakeForStartInput struct {
	LobbyID string

	// RequesterID must be a member of the lobby
	RequesterID string
}

// TakeForStartOutput hands over the removed lobby
type TakeForStartOutput struct {
	Lobby *models.RaidLobby
}
