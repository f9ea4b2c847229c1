package raid

import (
	"context"
	"errors"
	"fmt"
	"sync"
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

// service implements the Service interface
type service struct {
	catalog         catalog.Catalog
	lobbies         lobby.Service
	leaderboardRepo leaderboard.Repository
	historyRepo     history.Repository
	diceRoller      dice.Roller
	clock           clock.Clock
	uuidGenerator   uuid.UUID
	metrics         *telemetry.Metrics
	voteWindow      time.Duration
	votePolicy      instance.VotePolicy
	logger          zerolog.Logger

	// runCtx parents every instance runner and is cancelled on Shutdown
	runCtx    context.Context
	cancelRun context.CancelFunc

	mu        sync.RWMutex
	instances map[string]*instance.Runner
}

// New creates a new raid service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Catalog == nil {
		return nil, ErrNilCatalog
	}
	if cfg.LobbyService == nil {
		return nil, ErrNilLobbyService
	}
	if cfg.LeaderboardRepo == nil {
		return nil, ErrNilLeaderboardRepo
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

	policy, err := instance.ParseVotePolicy(string(cfg.VotePolicy))
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(context.Background())

	return &service{
		catalog:         cfg.Catalog,
		lobbies:         cfg.LobbyService,
		leaderboardRepo: cfg.LeaderboardRepo,
		historyRepo:     cfg.HistoryRepo,
		diceRoller:      cfg.DiceRoller,
		clock:           cfg.Clock,
		uuidGenerator:   cfg.UUIDGenerator,
		metrics:         cfg.Metrics,
		voteWindow:      cfg.VoteWindow,
		votePolicy:      policy,
		logger:          cfg.Logger.With().Str("component", "raid").Logger(),
		runCtx:          runCtx,
		cancelRun:       cancel,
		instances:       make(map[string]*instance.Runner),
	}, nil
}

// CreateLobby opens a lobby for a raid with the requesting player as leader
func (s *service) CreateLobby(ctx context.Context, input *CreateLobbyInput) (*CreateLobbyOutput, error) {
	out, err := s.lobbies.CreateLobby(ctx, input)
	if err != nil {
		return nil, err
	}
	s.metrics.LobbyCreated(ctx, out.Lobby.RaidID)
	return out, nil
}

// JoinLobby adds a player to a lobby under a role
func (s *service) JoinLobby(ctx context.Context, input *JoinLobbyInput) (*JoinLobbyOutput, error) {
	return s.lobbies.JoinLobby(ctx, input)
}

// LeaveLobby removes a player, disbanding the lobby when it empties
func (s *service) LeaveLobby(ctx context.Context, input *LeaveLobbyInput) (*LeaveLobbyOutput, error) {
	return s.lobbies.LeaveLobby(ctx, input)
}

// ChangeRole switches a member's role
func (s *service) ChangeRole(ctx context.Context, input *ChangeRoleInput) (*ChangeRoleOutput, error) {
	return s.lobbies.ChangeRole(ctx, input)
}

// GetLobby returns a lobby snapshot
func (s *service) GetLobby(ctx context.Context, input *GetLobbyInput) (*GetLobbyOutput, error) {
	return s.lobbies.GetLobby(ctx, input)
}

// ListLobbies returns open lobbies
func (s *service) ListLobbies(ctx context.Context, input *ListLobbiesInput) (*ListLobbiesOutput, error) {
	return s.lobbies.ListLobbies(ctx, input)
}

// StartRaid removes a startable lobby from the registry and runs it
func (s *service) StartRaid(ctx context.Context, input *StartRaidInput) (*StartRaidOutput, error) {
	if input == nil || input.LobbyID == "" {
		return nil, ErrInvalidInput
	}

	taken, err := s.lobbies.TakeForStart(ctx, &lobby.TakeForStartInput{
		LobbyID:     input.LobbyID,
		RequesterID: input.RequesterID,
	})
	if err != nil {
		return nil, err
	}

	def, err := s.catalog.GetRaid(taken.Lobby.RaidID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRaidNotFound, taken.Lobby.RaidID)
	}

	instanceID := s.uuidGenerator.NewUUID()
	engine, err := instance.New(&instance.Config{
		InstanceID: instanceID,
		Definition: def,
		Lobby:      taken.Lobby,
		DiceRoller: s.diceRoller,
		Clock:      s.clock,
		VoteWindow: s.voteWindow,
		VotePolicy: s.votePolicy,
		Logger:     s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start raid: %w", err)
	}

	// snapshot before the runner owns the engine
	view := engine.Snapshot()

	s.mu.Lock()
	s.instances[instanceID] = instance.NewRunner(s.runCtx, engine)
	s.mu.Unlock()

	s.metrics.RaidStarted(ctx, def.ID)
	s.logger.Info().
		Str("instance_id", instanceID).
		Str("lobby_id", taken.Lobby.ID).
		Str("raid_id", def.ID).
		Int("players", len(taken.Lobby.Players)).
		Msg("raid started")

	return &StartRaidOutput{
		Instance: view,
	}, nil
}

// PerformAction runs one player action against a live instance
func (s *service) PerformAction(ctx context.Context, input *PerformActionInput) (*PerformActionOutput, error) {
	if input == nil || input.InstanceID == "" {
		return nil, ErrInvalidInput
	}

	out := &PerformActionOutput{}
	action := input.Action
	view, finish, err := s.mutate(ctx, input.InstanceID, func(e *instance.Engine) error {
		result, err := e.ProcessPlayerAction(input.PlayerID, &action)
		if err != nil {
			return err
		}
		out.Result = result
		return nil
	})
	if err != nil {
		s.logger.Debug().Err(err).
			Str("instance_id", input.InstanceID).
			Str("player_id", input.PlayerID).
			Msg("action rejected")
		return nil, err
	}

	s.metrics.ActionProcessed(ctx, string(action.Type))
	out.Instance = view
	out.Finish = finish
	return out, nil
}

// SubmitViewerVote records a weighted viewer vote
func (s *service) SubmitViewerVote(ctx context.Context, input *SubmitViewerVoteInput) (*SubmitViewerVoteOutput, error) {
	if input == nil || input.InstanceID == "" {
		return nil, ErrInvalidInput
	}

	out := &SubmitViewerVoteOutput{}
	vote := input.Vote
	err := s.read(ctx, input.InstanceID, func(e *instance.Engine) error {
		status, err := e.AddViewerVote(&vote)
		if err != nil {
			return err
		}
		out.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.VoteAccepted(ctx)
	return out, nil
}

// GetVotingStatus reports the open viewer vote
func (s *service) GetVotingStatus(ctx context.Context, input *GetVotingStatusInput) (*GetVotingStatusOutput, error) {
	if input == nil || input.InstanceID == "" {
		return nil, ErrInvalidInput
	}

	out := &GetVotingStatusOutput{}
	err := s.read(ctx, input.InstanceID, func(e *instance.Engine) error {
		out.Status = e.VotingStatus()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ResolveViewerVote closes the viewer vote and reports the winner. The
// outcome is not applied to the instance.
func (s *service) ResolveViewerVote(ctx context.Context, input *ResolveViewerVoteInput) (*ResolveViewerVoteOutput, error) {
	if input == nil || input.InstanceID == "" {
		return nil, ErrInvalidInput
	}

	out := &ResolveViewerVoteOutput{}
	err := s.read(ctx, input.InstanceID, func(e *instance.Engine) error {
		outcome, err := e.ResolveVoting()
		if err != nil {
			return err
		}
		out.Outcome = outcome
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PurchaseRaidBuff applies a buff the caller has already paid for
func (s *service) PurchaseRaidBuff(ctx context.Context, input *PurchaseRaidBuffInput) (*PurchaseRaidBuffOutput, error) {
	if input == nil || input.InstanceID == "" {
		return nil, ErrInvalidInput
	}

	out := &PurchaseRaidBuffOutput{}
	view, finish, err := s.mutate(ctx, input.InstanceID, func(e *instance.Engine) error {
		result, err := e.ApplyBuff(input.Buff, input.PlayerID)
		if err != nil {
			return err
		}
		out.Result = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.BuffApplied(ctx, string(input.Buff))
	out.Instance = view
	out.Finish = finish
	return out, nil
}

// AdvanceObjective moves an objective raid to its next checkpoint
func (s *service) AdvanceObjective(ctx context.Context, input *AdvanceObjectiveInput) (*AdvanceObjectiveOutput, error) {
	if input == nil || input.InstanceID == "" {
		return nil, ErrInvalidInput
	}

	out := &AdvanceObjectiveOutput{}
	view, finish, err := s.mutate(ctx, input.InstanceID, func(e *instance.Engine) error {
		event, err := e.AdvanceObjective()
		if err != nil {
			return err
		}
		out.Event = event
		return nil
	})
	if err != nil {
		return nil, err
	}

	out.Instance = view
	out.Finish = finish
	return out, nil
}

// GetInstance returns a live instance snapshot
func (s *service) GetInstance(ctx context.Context, input *GetInstanceInput) (*GetInstanceOutput, error) {
	if input == nil || input.InstanceID == "" {
		return nil, ErrInvalidInput
	}

	out := &GetInstanceOutput{}
	err := s.read(ctx, input.InstanceID, func(e *instance.Engine) error {
		out.Instance = e.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetLeaderboard returns the ranked completions of a raid
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	if input == nil || input.RaidID == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.catalog.GetRaid(input.RaidID); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRaidNotFound, input.RaidID)
	}

	category := input.Category
	if category == "" {
		category = models.CategoryFastestClear
	}

	board, err := s.leaderboardRepo.GetLeaderboard(ctx, &leaderboard.GetLeaderboardInput{
		RaidID:   input.RaidID,
		Category: category,
		Limit:    input.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &GetLeaderboardOutput{
		RaidID:   input.RaidID,
		Category: category,
		Entries:  board.Entries,
	}, nil
}

// ListLeaderboards returns the raids that have recorded completions
func (s *service) ListLeaderboards(ctx context.Context, input *ListLeaderboardsInput) (*ListLeaderboardsOutput, error) {
	raids, err := s.leaderboardRepo.ListRaids(ctx, &leaderboard.ListRaidsInput{})
	if err != nil {
		return nil, err
	}

	out := &ListLeaderboardsOutput{
		Leaderboards: make([]LeaderboardSummary, 0, len(raids.RaidIDs)),
	}
	for _, raidID := range raids.RaidIDs {
		name := raidID
		if def, err := s.catalog.GetRaid(raidID); err == nil {
			name = def.Name
		}
		out.Leaderboards = append(out.Leaderboards, LeaderboardSummary{
			RaidID:   raidID,
			RaidName: name,
		})
	}
	return out, nil
}

// GetRaidHistory returns finished runs, newest first
func (s *service) GetRaidHistory(ctx context.Context, input *GetRaidHistoryInput) (*GetRaidHistoryOutput, error) {
	if input == nil {
		input = &GetRaidHistoryInput{}
	}
	if s.historyRepo == nil {
		return &GetRaidHistoryOutput{}, nil
	}

	runs, err := s.historyRepo.ListRuns(ctx, &history.ListRunsInput{
		RaidID: input.RaidID,
		Limit:  input.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &GetRaidHistoryOutput{
		Runs: runs.Runs,
	}, nil
}

// Shutdown stops every live instance. Unfinished runs are dropped.
func (s *service) Shutdown(ctx context.Context) error {
	s.cancelRun()

	s.mu.Lock()
	runners := make([]*instance.Runner, 0, len(s.instances))
	for id, r := range s.instances {
		runners = append(runners, r)
		delete(s.instances, id)
	}
	s.mu.Unlock()

	for _, r := range runners {
		r.Stop()
	}

	s.logger.Info().Int("instances", len(runners)).Msg("raid service shut down")
	return nil
}

func (s *service) runner(instanceID string) (*instance.Runner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.instances[instanceID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInstanceNotFound, instanceID)
	}
	return r, nil
}

// read runs fn on the instance owner without checking for a finish
func (s *service) read(ctx context.Context, instanceID string, fn func(e *instance.Engine) error) error {
	r, err := s.runner(instanceID)
	if err != nil {
		return err
	}
	return s.gone(instanceID, r.Do(ctx, fn))
}

// mutate runs fn on the instance owner and then completes or wipes the
// instance when fn left it cleared or with every player dead
func (s *service) mutate(ctx context.Context, instanceID string, fn func(e *instance.Engine) error) (*models.InstanceView, Finish, error) {
	r, err := s.runner(instanceID)
	if err != nil {
		return nil, Finish{}, err
	}

	var (
		view       *models.InstanceView
		completion *models.CompletionView
		def        *models.RaidDefinition
	)
	err = r.Do(ctx, func(e *instance.Engine) error {
		if err := fn(e); err != nil {
			return err
		}

		switch {
		case e.IsComplete():
			e.Complete()
		case e.IsWiped():
			e.Wipe()
		}
		if e.Instance().Status.IsTerminal() {
			completion = buildCompletion(e)
			def = e.Definition()
		}
		view = e.Snapshot()
		return nil
	})
	if err != nil {
		return nil, Finish{}, s.gone(instanceID, err)
	}

	if completion == nil {
		return view, Finish{}, nil
	}

	s.finalize(ctx, r, def, completion)
	return view, Finish{Finished: true, Completion: completion}, nil
}

// gone reports a finished instance that has already left the live set as
// not found
func (s *service) gone(instanceID string, err error) error {
	if !errors.Is(err, instance.ErrInstanceFinished) {
		return err
	}
	if _, lookupErr := s.runner(instanceID); lookupErr != nil {
		return lookupErr
	}
	return err
}

// finalize removes a finished instance and records its result. Recording
// failures are logged, the caller still gets the completion.
func (s *service) finalize(ctx context.Context, r *instance.Runner, def *models.RaidDefinition, completion *models.CompletionView) {
	s.mu.Lock()
	if s.instances[completion.InstanceID] == r {
		delete(s.instances, completion.InstanceID)
	}
	s.mu.Unlock()
	r.Stop()

	ctx = context.WithoutCancel(ctx)
	status := completion.Status

	s.metrics.RaidFinished(ctx, completion.RaidID, string(status))
	s.logger.Info().
		Str("instance_id", completion.InstanceID).
		Str("raid_id", completion.RaidID).
		Str("status", string(status)).
		Int("completion_time", completion.Stats.CompletionTime).
		Int("deaths", completion.Stats.TotalDeaths).
		Int("achievements", len(completion.Achievements)).
		Msg("raid finished")

	if status == models.InstanceStatusCompleted && def.IsLeaderboardTracked() {
		err := s.leaderboardRepo.Update(ctx, &leaderboard.UpdateInput{
			RaidID: completion.RaidID,
			Entry:  leaderboardEntry(completion),
		})
		if err != nil {
			s.logger.Error().Err(err).
				Str("instance_id", completion.InstanceID).
				Msg("failed to update leaderboard")
		}
	}

	if s.historyRepo != nil {
		err := s.historyRepo.RecordRun(ctx, &history.RecordRunInput{
			Run: runRecord(completion),
		})
		if err != nil {
			s.logger.Error().Err(err).
				Str("instance_id", completion.InstanceID).
				Msg("failed to record run history")
		}
	}
}
