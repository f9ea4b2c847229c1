package models

import (
	"time"
)

// Roles a player can declare when joining a lobby
const (
	RoleTank   = "tank"
	RoleHealer = "healer"
	RoleDPS    = "dps"
)

// LobbySettings are the lobby feature flags carried into the instance
type LobbySettings struct {
	// RequireRoles enforces the raid role quotas on join and role change
	RequireRoles bool

	// AllowViewerVoting lets non-players vote during the run
	AllowViewerVoting bool
}

// LobbyPlayer is a member of a lobby
type LobbyPlayer struct {
	ID       string
	Name     string
	Level    int
	Class    string
	Role     string
	IsLeader bool
}

// RaidLobby is the pre-run team assembly for one raid
type RaidLobby struct {
	// ID is the unique identifier for the lobby
	ID string

	// RaidID is the catalog key of the raid
	RaidID string

	// RaidName is the display name of the raid
	RaidName string

	// LeaderID is the player currently leading the lobby
	LeaderID string

	Difficulty Difficulty
	Settings   LobbySettings
	MinPlayers int
	MaxPlayers int

	// RoleQuotas is role -> required count copied from the definition
	RoleQuotas map[string]int

	// Players maps player ID to member
	Players map[string]*LobbyPlayer

	// PlayerOrder keeps join order for views and leadership hand-off
	PlayerOrder []string

	CreatedAt time.Time
}

// RoleCounts returns how many members hold each role
func (l *RaidLobby) RoleCounts() map[string]int {
	counts := make(map[string]int)
	for _, p := range l.Players {
		counts[p.Role]++
	}
	return counts
}

// OrderedPlayers returns members in join order
func (l *RaidLobby) OrderedPlayers() []*LobbyPlayer {
	players := make([]*LobbyPlayer, 0, len(l.PlayerOrder))
	for _, id := range l.PlayerOrder {
		if p, ok := l.Players[id]; ok {
			players = append(players, p)
		}
	}
	return players
}

// LobbyView is the lobby snapshot handed to the presentation layer
type LobbyView struct {
	ID                string
	RaidID            string
	RaidName          string
	LeaderID          string
	LeaderName        string
	Difficulty        Difficulty
	Players           []LobbyPlayer
	Settings          LobbySettings
	MinPlayers        int
	MaxPlayers        int
	CanStart          bool
	StartRequirements []string
}
