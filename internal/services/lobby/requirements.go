package lobby

import (
	"fmt"
	"sort"

	"github.com/KirkDiggler/raidhall/internal/models"
)

// CanStart reports whether the lobby has enough players and, when roles are
// enforced, every role quota is filled
func CanStart(lobby *models.RaidLobby) bool {
	if len(lobby.Players) < lobby.MinPlayers {
		return false
	}
	if !lobby.Settings.RequireRoles {
		return true
	}
	counts := lobby.RoleCounts()
	for role, quota := range lobby.RoleQuotas {
		if counts[role] < quota {
			return false
		}
	}
	return true
}

// StartRequirements lists what the lobby still lacks, for display
func StartRequirements(lobby *models.RaidLobby) []string {
	var missing []string

	if need := lobby.MinPlayers - len(lobby.Players); need > 0 {
		missing = append(missing, fmt.Sprintf("Need %d more player(s)", need))
	}

	if !lobby.Settings.RequireRoles {
		return missing
	}

	roles := make([]string, 0, len(lobby.RoleQuotas))
	for role := range lobby.RoleQuotas {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	counts := lobby.RoleCounts()
	for _, role := range roles {
		if need := lobby.RoleQuotas[role] - counts[role]; need > 0 {
			missing = append(missing, fmt.Sprintf("Need %d more %s(s)", need, role))
		}
	}

	return missing
}

// View copies the lobby into a presentation snapshot
func View(lobby *models.RaidLobby) *models.LobbyView {
	view := &models.LobbyView{
		ID:                lobby.ID,
		RaidID:            lobby.RaidID,
		RaidName:          lobby.RaidName,
		LeaderID:          lobby.LeaderID,
		Difficulty:        lobby.Difficulty,
		Settings:          lobby.Settings,
		MinPlayers:        lobby.MinPlayers,
		MaxPlayers:        lobby.MaxPlayers,
		CanStart:          CanStart(lobby),
		StartRequirements: StartRequirements(lobby),
	}

	for _, p := range lobby.OrderedPlayers() {
		view.Players = append(view.Players, *p)
		if p.ID == lobby.LeaderID {
			view.LeaderName = p.Name
		}
	}

	return view
}
