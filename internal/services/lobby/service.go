package lobby

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/raidhall/internal/catalog"
	"github.com/KirkDiggler/raidhall/internal/common/clock"
	"github.com/KirkDiggler/raidhall/internal/common/uuid"
	"github.com/KirkDiggler/raidhall/internal/dice"
	"github.com/KirkDiggler/raidhall/internal/models"
)

// entry guards one lobby. closed is set once the lobby is disbanded or taken
// for a run so holders of a stale pointer see it as gone.
type entry struct {
	mu     sync.Mutex
	lobby  *models.RaidLobby
	closed bool
}

// service implements the Service interface
type service struct {
	catalog       catalog.Catalog
	diceRoller    dice.Roller
	clock         clock.Clock
	uuidGenerator uuid.UUID
	logger        zerolog.Logger

	mu      sync.RWMutex
	lobbies map[string]*entry
}

// New creates a new lobby service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Catalog == nil {
		return nil, ErrNilCatalog
	}
	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		catalog:       cfg.Catalog,
		diceRoller:    cfg.DiceRoller,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        cfg.Logger.With().Str("component", "lobby").Logger(),
		lobbies:       make(map[string]*entry),
	}, nil
}

// CreateLobby opens a lobby for a raid with the requesting player as leader
func (s *service) CreateLobby(ctx context.Context, input *CreateLobbyInput) (*CreateLobbyOutput, error) {
	if input == nil || input.RaidID == "" || input.Leader.ID == "" {
		return nil, ErrInvalidInput
	}

	def, err := s.catalog.GetRaid(input.RaidID)
	if err != nil {
		if errors.Is(err, catalog.ErrRaidNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRaidNotFound, input.RaidID)
		}
		return nil, err
	}

	// Location is checked before anything is allocated
	if input.LeaderLocation != def.EntranceLocation {
		return nil, fmt.Errorf("%w: %s must be at %s (currently at %s)",
			ErrLocationMismatch, def.Name, def.EntranceLocation, input.LeaderLocation)
	}

	role := normalizeRole(input.Role)
	settings := models.LobbySettings{
		RequireRoles:      boolOrTrue(input.RequireRoles),
		AllowViewerVoting: boolOrTrue(input.AllowViewerVoting),
	}
	quotas := def.RoleQuotas()
	if settings.RequireRoles {
		if quota, ok := quotas[role]; ok && quota < 1 {
			return nil, fmt.Errorf("%w: %s", ErrRoleFull, role)
		}
	}

	difficulty := def.Difficulty
	if input.Difficulty != "" {
		difficulty = input.Difficulty
	}

	lobby := &models.RaidLobby{
		ID:         s.uuidGenerator.NewUUID(),
		RaidID:     def.ID,
		RaidName:   def.Name,
		LeaderID:   input.Leader.ID,
		Difficulty: difficulty,
		Settings:   settings,
		MinPlayers: def.MinPlayers,
		MaxPlayers: def.MaxPlayers,
		RoleQuotas: quotas,
		Players: map[string]*models.LobbyPlayer{
			input.Leader.ID: newLobbyPlayer(input.Leader, role, true),
		},
		PlayerOrder: []string{input.Leader.ID},
		CreatedAt:   s.clock.Now(),
	}

	s.mu.Lock()
	s.lobbies[lobby.ID] = &entry{lobby: lobby}
	s.mu.Unlock()

	s.logger.Info().
		Str("lobby_id", lobby.ID).
		Str("raid_id", lobby.RaidID).
		Str("leader_id", lobby.LeaderID).
		Msg("lobby created")

	return &CreateLobbyOutput{
		Lobby: View(lobby),
	}, nil
}

// JoinLobby adds a player to a lobby under a role
func (s *service) JoinLobby(ctx context.Context, input *JoinLobbyInput) (*JoinLobbyOutput, error) {
	if input == nil || input.Player.ID == "" {
		return nil, ErrInvalidInput
	}

	var output *JoinLobbyOutput
	err := s.withLobby(input.LobbyID, func(e *entry) error {
		lobby := e.lobby

		if len(lobby.Players) >= lobby.MaxPlayers {
			return ErrLobbyFull
		}
		if _, ok := lobby.Players[input.Player.ID]; ok {
			return ErrAlreadyJoined
		}

		role := normalizeRole(input.Role)
		if err := checkRoleAvailable(lobby, role); err != nil {
			return err
		}

		lobby.Players[input.Player.ID] = newLobbyPlayer(input.Player, role, false)
		lobby.PlayerOrder = append(lobby.PlayerOrder, input.Player.ID)

		output = &JoinLobbyOutput{
			Lobby:      View(lobby),
			RoleCounts: lobby.RoleCounts(),
		}
		return nil
	})
	if err != nil {
		s.logger.Debug().Err(err).Str("lobby_id", input.LobbyID).Str("player_id", input.Player.ID).Msg("join rejected")
		return nil, err
	}

	return output, nil
}

// LeaveLobby removes a player, disbanding the lobby when it empties
func (s *service) LeaveLobby(ctx context.Context, input *LeaveLobbyInput) (*LeaveLobbyOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}

	var output *LeaveLobbyOutput
	err := s.withLobby(input.LobbyID, func(e *entry) error {
		lobby := e.lobby

		leaving, ok := lobby.Players[input.PlayerID]
		if !ok {
			return ErrPlayerNotInLobby
		}

		delete(lobby.Players, input.PlayerID)
		lobby.PlayerOrder = removeID(lobby.PlayerOrder, input.PlayerID)

		if len(lobby.Players) == 0 {
			s.close(e)
			s.logger.Info().Str("lobby_id", lobby.ID).Msg("lobby disbanded")
			output = &LeaveLobbyOutput{Disbanded: true}
			return nil
		}

		output = &LeaveLobbyOutput{}
		if leaving.IsLeader {
			next := lobby.Players[lobby.PlayerOrder[s.diceRoller.Intn(len(lobby.PlayerOrder))]]
			next.IsLeader = true
			lobby.LeaderID = next.ID

			output.LeadershipTransferred = true
			output.NewLeaderID = next.ID
			output.NewLeaderName = next.Name

			s.logger.Info().
				Str("lobby_id", lobby.ID).
				Str("new_leader_id", next.ID).
				Msg("lobby leadership transferred")
		}
		output.Lobby = View(lobby)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// ChangeRole switches a member's role
func (s *service) ChangeRole(ctx context.Context, input *ChangeRoleInput) (*ChangeRoleOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrInvalidInput
	}

	var output *ChangeRoleOutput
	err := s.withLobby(input.LobbyID, func(e *entry) error {
		lobby := e.lobby

		player, ok := lobby.Players[input.PlayerID]
		if !ok {
			return ErrPlayerNotInLobby
		}

		role := normalizeRole(input.Role)
		if role != player.Role {
			if err := checkRoleAvailable(lobby, role); err != nil {
				return err
			}
			player.Role = role
		}

		output = &ChangeRoleOutput{
			Lobby:      View(lobby),
			RoleCounts: lobby.RoleCounts(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// GetLobby returns a lobby snapshot
func (s *service) GetLobby(ctx context.Context, input *GetLobbyInput) (*GetLobbyOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	var output *GetLobbyOutput
	err := s.withLobby(input.LobbyID, func(e *entry) error {
		output = &GetLobbyOutput{Lobby: View(e.lobby)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// ListLobbies returns open lobbies, oldest first
func (s *service) ListLobbies(ctx context.Context, input *ListLobbiesInput) (*ListLobbiesOutput, error) {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.lobbies))
	for _, e := range s.lobbies {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	created := make(map[string]int64, len(entries))
	views := make([]*models.LobbyView, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if !e.closed && (input == nil || input.RaidID == "" || e.lobby.RaidID == input.RaidID) {
			views = append(views, View(e.lobby))
			created[e.lobby.ID] = e.lobby.CreatedAt.UnixNano()
		}
		e.mu.Unlock()
	}

	sort.SliceStable(views, func(i, j int) bool {
		if created[views[i].ID] == created[views[j].ID] {
			return views[i].ID < views[j].ID
		}
		return created[views[i].ID] < created[views[j].ID]
	})

	return &ListLobbiesOutput{Lobbies: views}, nil
}

// TakeForStart removes a startable lobby from the registry and hands it to the caller
func (s *service) TakeForStart(ctx context.Context, input *TakeForStartInput) (*TakeForStartOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	var output *TakeForStartOutput
	err := s.withLobby(input.LobbyID, func(e *entry) error {
		lobby := e.lobby

		if _, ok := lobby.Players[input.RequesterID]; !ok {
			return ErrPlayerNotInLobby
		}
		if !CanStart(lobby) {
			return fmt.Errorf("%w: %v", ErrStartRequirementsNotMet, StartRequirements(lobby))
		}

		s.close(e)
		output = &TakeForStartOutput{Lobby: lobby}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// withLobby runs fn while holding the lobby's lock
func (s *service) withLobby(lobbyID string, fn func(e *entry) error) error {
	s.mu.RLock()
	e, ok := s.lobbies[lobbyID]
	s.mu.RUnlock()
	if !ok {
		return ErrLobbyNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrLobbyNotFound
	}
	return fn(e)
}

// close must be called with e.mu held
func (s *service) close(e *entry) {
	e.closed = true
	s.mu.Lock()
	delete(s.lobbies, e.lobby.ID)
	s.mu.Unlock()
}

func checkRoleAvailable(lobby *models.RaidLobby, role string) error {
	if !lobby.Settings.RequireRoles {
		return nil
	}
	quota, ok := lobby.RoleQuotas[role]
	if !ok {
		return nil
	}
	if lobby.RoleCounts()[role] >= quota {
		return fmt.Errorf("%w: %s (%d/%d)", ErrRoleFull, role, quota, quota)
	}
	return nil
}

func newLobbyPlayer(info PlayerInfo, role string, leader bool) *models.LobbyPlayer {
	level := info.Level
	if level < 1 {
		level = 1
	}
	return &models.LobbyPlayer{
		ID:       info.ID,
		Name:     info.Name,
		Level:    level,
		Class:    info.Class,
		Role:     role,
		IsLeader: leader,
	}
}

func normalizeRole(role string) string {
	if role == "" {
		return models.RoleDPS
	}
	return role
}

func boolOrTrue(b *bool) bool {
	if b == nil {
		return true
	}
	return *b
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
