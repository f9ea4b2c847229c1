package raid

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/raidhall/internal/catalog"
	clockMocks "github.com/KirkDiggler/raidhall/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/raidhall/internal/common/uuid/mocks"
	diceMocks "github.com/KirkDiggler/raidhall/internal/dice/mocks"
	"github.com/KirkDiggler/raidhall/internal/models"
	"github.com/KirkDiggler/raidhall/internal/repositories/history"
	historyMocks "github.com/KirkDiggler/raidhall/internal/repositories/history/mocks"
	"github.com/KirkDiggler/raidhall/internal/repositories/leaderboard"
	leaderboardMocks "github.com/KirkDiggler/raidhall/internal/repositories/leaderboard/mocks"
	"github.com/KirkDiggler/raidhall/internal/services/lobby"
)

type RaidServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockRoller      *diceMocks.MockRoller
	mockClock       *clockMocks.MockClock
	mockUUID        *uuidMocks.MockUUID
	mockLeaderboard *leaderboardMocks.MockRepository
	mockHistory     *historyMocks.MockRepository
	catalog         catalog.Catalog
	lobbies         lobby.Service
	service         *service
	ctx             context.Context

	now    time.Time
	leader PlayerInfo
}

func (s *RaidServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoller = diceMocks.NewMockRoller(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.mockLeaderboard = leaderboardMocks.NewMockRepository(s.mockCtrl)
	s.mockHistory = historyMocks.NewMockRepository(s.mockCtrl)
	s.ctx = context.Background()

	s.now = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.leader = PlayerInfo{ID: "leader-id", Name: "Leader", Level: 1, Class: "warrior"}
	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()
	s.mockRoller.EXPECT().Intn(gomock.Any()).Return(0).AnyTimes()

	raids, err := catalog.NewStatic(map[string]*models.RaidDefinition{
		"molten_core": {
			Name:             "Molten Core",
			EntranceLocation: "Blackrock Depths",
			MinPlayers:       1,
			MaxPlayers:       4,
			Difficulty:       models.DifficultyHard,
			EnemyHP:          40,
			Waves:            []*models.Wave{{Enemies: []string{"Imp"}, Count: 1}},
			Rewards:          &models.Rewards{Gold: 2000, Experience: 5000, Items: []string{"Core Hound Tooth"}, RaidTokens: 3},
			Leaderboard:      &models.LeaderboardSettings{Tracked: true},
			Achievements: []*models.Achievement{
				{ID: "core_breaker", Name: "Core Breaker", Requirement: "Defeat the Firelord"},
				{ID: "untouched", Name: "Untouched", Requirement: "Complete without any player deaths"},
				{ID: "speedy", Name: "Speedy", Requirement: "Complete in under 5 minutes"},
			},
		},
		"gauntlet": {
			Name:             "The Gauntlet",
			EntranceLocation: "Arena",
			MinPlayers:       1,
			MaxPlayers:       2,
			BossRush:         []*models.BossSpec{{Name: "Titan", HP: 10000}},
			Leaderboard:      &models.LeaderboardSettings{Tracked: true},
			Rewards:          &models.Rewards{Gold: 100},
		},
		"escort": {
			Name:             "Escort",
			EntranceLocation: "Gate",
			MinPlayers:       2,
			MaxPlayers:       4,
			Objectives: []*models.Objective{
				{Name: "Find the caravan"},
				{Name: "Reach the city"},
			},
		},
	})
	s.Require().NoError(err)
	s.catalog = raids

	lobbies, err := lobby.New(&lobby.Config{
		Catalog:       raids,
		DiceRoller:    s.mockRoller,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.lobbies = lobbies

	svc, err := New(&Config{
		Catalog:         raids,
		LobbyService:    lobbies,
		LeaderboardRepo: s.mockLeaderboard,
		HistoryRepo:     s.mockHistory,
		DiceRoller:      s.mockRoller,
		Clock:           s.mockClock,
		UUIDGenerator:   s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *RaidServiceTestSuite) TearDownTest() {
	s.Require().NoError(s.service.Shutdown(s.ctx))
	s.mockCtrl.Finish()
}

func TestRaidServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RaidServiceTestSuite))
}

// startRaid opens a single player lobby for raidID and starts it
func (s *RaidServiceTestSuite) startRaid(raidID, location string) *models.InstanceView {
	s.mockUUID.EXPECT().NewUUID().Return("lobby-id")
	s.mockUUID.EXPECT().NewUUID().Return("instance-id")

	_, err := s.service.CreateLobby(s.ctx, &CreateLobbyInput{
		RaidID:         raidID,
		Leader:         s.leader,
		LeaderLocation: location,
		Role:           models.RoleTank,
	})
	s.Require().NoError(err)

	out, err := s.service.StartRaid(s.ctx, &StartRaidInput{LobbyID: "lobby-id", RequesterID: s.leader.ID})
	s.Require().NoError(err)
	return out.Instance
}

func (s *RaidServiceTestSuite) TestNew_Validation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilCatalog)

	_, err = New(&Config{Catalog: s.catalog})
	s.ErrorIs(err, ErrNilLobbyService)

	_, err = New(&Config{Catalog: s.catalog, LobbyService: s.lobbies})
	s.ErrorIs(err, ErrNilLeaderboardRepo)

	_, err = New(&Config{
		Catalog:         s.catalog,
		LobbyService:    s.lobbies,
		LeaderboardRepo: s.mockLeaderboard,
		DiceRoller:      s.mockRoller,
		Clock:           s.mockClock,
		UUIDGenerator:   s.mockUUID,
		VotePolicy:      "extend",
	})
	s.ErrorIs(err, ErrInvalidVotePolicy)
}

func (s *RaidServiceTestSuite) TestStartRaid() {
	view := s.startRaid("molten_core", "Blackrock Depths")

	s.Equal("instance-id", view.ID)
	s.Equal(models.InstanceStatusActive, view.Status)
	s.Equal(models.ShapeWaves, view.Shape)
	s.Require().Len(view.Players, 1)
	s.Equal(s.leader.ID, view.Players[0].ID)
	s.Require().Len(view.Enemies, 1)

	// the lobby is gone once the run starts
	_, err := s.service.GetLobby(s.ctx, &GetLobbyInput{LobbyID: "lobby-id"})
	s.ErrorIs(err, ErrLobbyNotFound)

	got, err := s.service.GetInstance(s.ctx, &GetInstanceInput{InstanceID: "instance-id"})
	s.Require().NoError(err)
	s.Equal(view.Enemies, got.Instance.Enemies)
}

func (s *RaidServiceTestSuite) TestStartRaid_RequirementsNotMet() {
	s.mockUUID.EXPECT().NewUUID().Return("lobby-id")
	_, err := s.service.CreateLobby(s.ctx, &CreateLobbyInput{RaidID: "escort", Leader: s.leader, LeaderLocation: "Gate"})
	s.Require().NoError(err)

	_, err = s.service.StartRaid(s.ctx, &StartRaidInput{LobbyID: "lobby-id", RequesterID: s.leader.ID})
	s.ErrorIs(err, ErrStartRequirementsNotMet)

	out, err := s.service.GetLobby(s.ctx, &GetLobbyInput{LobbyID: "lobby-id"})
	s.Require().NoError(err)
	s.False(out.Lobby.CanStart)
}

func (s *RaidServiceTestSuite) TestStartRaid_Errors() {
	_, err := s.service.StartRaid(s.ctx, &StartRaidInput{LobbyID: "missing", RequesterID: s.leader.ID})
	s.ErrorIs(err, ErrLobbyNotFound)

	_, err = s.service.StartRaid(s.ctx, nil)
	s.ErrorIs(err, ErrInvalidInput)

	s.mockUUID.EXPECT().NewUUID().Return("lobby-id")
	_, err = s.service.CreateLobby(s.ctx, &CreateLobbyInput{RaidID: "molten_core", Leader: s.leader, LeaderLocation: "Blackrock Depths"})
	s.Require().NoError(err)

	_, err = s.service.StartRaid(s.ctx, &StartRaidInput{LobbyID: "lobby-id", RequesterID: "stranger"})
	s.ErrorIs(err, ErrPlayerNotInLobby)
}

func (s *RaidServiceTestSuite) TestCreateLobby_LocationMismatch() {
	_, err := s.service.CreateLobby(s.ctx, &CreateLobbyInput{RaidID: "molten_core", Leader: s.leader, LeaderLocation: "Stormwind"})
	s.ErrorIs(err, ErrLocationMismatch)
}

func (s *RaidServiceTestSuite) TestPerformAction_CompletesTrackedRaid() {
	s.startRaid("molten_core", "Blackrock Depths")
	s.now = s.now.Add(4 * time.Minute)

	s.mockRoller.EXPECT().Between(25, 75).Return(50)
	s.mockLeaderboard.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, input *leaderboard.UpdateInput) error {
			s.Equal("molten_core", input.RaidID)
			s.Equal("instance-id", input.Entry.InstanceID)
			s.Equal([]string{"Leader"}, input.Entry.Players)
			s.Equal(240, input.Entry.CompletionTime)
			s.Equal(0, input.Entry.Deaths)
			s.Equal(50, input.Entry.TotalDamage)
			s.Equal(models.DifficultyHard, input.Entry.Difficulty)
			s.Equal(s.now, input.Entry.Timestamp)
			return nil
		})
	s.mockHistory.EXPECT().RecordRun(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, input *history.RecordRunInput) error {
			s.Equal("instance-id", input.Run.InstanceID)
			s.Equal(models.InstanceStatusCompleted, input.Run.Status)
			s.Equal("Molten Core", input.Run.RaidName)
			s.Equal([]string{"Leader"}, input.Run.Participants)
			return nil
		})

	out, err := s.service.PerformAction(s.ctx, &PerformActionInput{
		InstanceID: "instance-id",
		PlayerID:   s.leader.ID,
		Action:     models.PlayerAction{Type: models.ActionAttack, TargetID: "enemy-1"},
	})
	s.Require().NoError(err)
	s.True(out.Finished)
	s.Equal(50, out.Result.Damage)
	s.Equal(models.InstanceStatusCompleted, out.Instance.Status)

	completion := out.Completion
	s.Require().NotNil(completion)
	s.Equal(240, completion.Stats.CompletionTime)
	s.Equal(50, completion.Stats.TotalDamage)
	s.Require().NotNil(completion.Rewards)
	s.Equal(3000, completion.Rewards.Gold)
	s.Equal(7500, completion.Rewards.Experience)
	s.Equal([]string{"Core Hound Tooth"}, completion.Rewards.Items)
	s.Equal(3, completion.Rewards.RaidTokens)

	var ids []string
	for _, a := range completion.Achievements {
		ids = append(ids, a.ID)
	}
	s.Equal([]string{"core_breaker", "untouched", "speedy"}, ids)

	_, err = s.service.GetInstance(s.ctx, &GetInstanceInput{InstanceID: "instance-id"})
	s.ErrorIs(err, ErrInstanceNotFound)

	_, err = s.service.PerformAction(s.ctx, &PerformActionInput{
		InstanceID: "instance-id",
		PlayerID:   s.leader.ID,
		Action:     models.PlayerAction{Type: models.ActionAttack, TargetID: "enemy-1"},
	})
	s.ErrorIs(err, ErrInstanceNotFound)
}

func (s *RaidServiceTestSuite) TestPerformAction_FinishesWhenCallerGoesAway() {
	s.startRaid("molten_core", "Blackrock Depths")

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	s.mockRoller.EXPECT().Between(25, 75).DoAndReturn(func(lo, hi int) int {
		cancel()
		time.Sleep(20 * time.Millisecond)
		return 50
	})
	s.mockLeaderboard.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, input *leaderboard.UpdateInput) error {
			s.NoError(ctx.Err())
			return nil
		})
	s.mockHistory.EXPECT().RecordRun(gomock.Any(), gomock.Any()).Return(nil)

	out, err := s.service.PerformAction(ctx, &PerformActionInput{
		InstanceID: "instance-id",
		PlayerID:   s.leader.ID,
		Action:     models.PlayerAction{Type: models.ActionAttack, TargetID: "enemy-1"},
	})
	s.Require().NoError(err)
	s.True(out.Finished)
	s.Equal(models.InstanceStatusCompleted, out.Completion.Status)

	_, err = s.service.GetInstance(s.ctx, &GetInstanceInput{InstanceID: "instance-id"})
	s.ErrorIs(err, ErrInstanceNotFound)

	_, err = s.service.PerformAction(s.ctx, &PerformActionInput{
		InstanceID: "instance-id",
		PlayerID:   s.leader.ID,
		Action:     models.PlayerAction{Type: models.ActionAttack, TargetID: "enemy-1"},
	})
	s.ErrorIs(err, ErrInstanceNotFound)
}

func (s *RaidServiceTestSuite) TestPerformAction_CancelledContextChangesNothing() {
	s.startRaid("molten_core", "Blackrock Depths")

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.service.PerformAction(ctx, &PerformActionInput{
		InstanceID: "instance-id",
		PlayerID:   s.leader.ID,
		Action:     models.PlayerAction{Type: models.ActionAttack, TargetID: "enemy-1"},
	})
	s.ErrorIs(err, context.Canceled)

	got, err := s.service.GetInstance(s.ctx, &GetInstanceInput{InstanceID: "instance-id"})
	s.Require().NoError(err)
	s.Equal(models.InstanceStatusActive, got.Instance.Status)
	s.Require().Len(got.Instance.Enemies, 1)
	s.Equal(40, got.Instance.Enemies[0].HP)
}

func (s *RaidServiceTestSuite) TestPerformAction_WipeRecordsHistoryOnly() {
	s.startRaid("gauntlet", "Arena")

	s.mockRoller.EXPECT().Between(25, 75).Return(25).Times(2)
	s.mockRoller.EXPECT().Between(20, 60).Return(60).Times(2)
	s.mockHistory.EXPECT().RecordRun(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, input *history.RecordRunInput) error {
			s.Equal(models.InstanceStatusWiped, input.Run.Status)
			s.Equal(1, input.Run.TotalDeaths)
			return nil
		})

	attack := &PerformActionInput{
		InstanceID: "instance-id",
		PlayerID:   s.leader.ID,
		Action:     models.PlayerAction{Type: models.ActionAttack, TargetID: models.BossTargetID},
	}

	out, err := s.service.PerformAction(s.ctx, attack)
	s.Require().NoError(err)
	s.False(out.Finished)
	s.Nil(out.Completion)

	out, err = s.service.PerformAction(s.ctx, attack)
	s.Require().NoError(err)
	s.True(out.Finished)
	s.Equal(models.InstanceStatusWiped, out.Completion.Status)
	s.Nil(out.Completion.Rewards)
	s.Empty(out.Completion.Achievements)
	s.Equal(1, out.Completion.Stats.TotalDeaths)
}

func (s *RaidServiceTestSuite) TestPerformAction_RecordingFailureIsNotReturned() {
	s.startRaid("molten_core", "Blackrock Depths")

	s.mockRoller.EXPECT().Between(25, 75).Return(50)
	s.mockLeaderboard.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	s.mockHistory.EXPECT().RecordRun(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	out, err := s.service.PerformAction(s.ctx, &PerformActionInput{
		InstanceID: "instance-id",
		PlayerID:   s.leader.ID,
		Action:     models.PlayerAction{Type: models.ActionAttack, TargetID: "enemy-1"},
	})
	s.Require().NoError(err)
	s.True(out.Finished)
}

func (s *RaidServiceTestSuite) TestPerformAction_Errors() {
	s.startRaid("molten_core", "Blackrock Depths")

	_, err := s.service.PerformAction(s.ctx, &PerformActionInput{InstanceID: "missing", PlayerID: s.leader.ID})
	s.ErrorIs(err, ErrInstanceNotFound)

	_, err = s.service.PerformAction(s.ctx, &PerformActionInput{
		InstanceID: "instance-id",
		PlayerID:   "stranger",
		Action:     models.PlayerAction{Type: models.ActionAttack, TargetID: "enemy-1"},
	})
	s.ErrorIs(err, ErrPlayerCannotAct)

	_, err = s.service.PerformAction(s.ctx, &PerformActionInput{
		InstanceID: "instance-id",
		PlayerID:   s.leader.ID,
		Action:     models.PlayerAction{Type: "dance"},
	})
	s.ErrorIs(err, ErrUnknownActionType)
}

func (s *RaidServiceTestSuite) TestAdvanceObjective_UntrackedRaid() {
	s.mockUUID.EXPECT().NewUUID().Return("lobby-id")
	s.mockUUID.EXPECT().NewUUID().Return("instance-id")

	_, err := s.service.CreateLobby(s.ctx, &CreateLobbyInput{RaidID: "escort", Leader: s.leader, LeaderLocation: "Gate"})
	s.Require().NoError(err)
	_, err = s.service.JoinLobby(s.ctx, &JoinLobbyInput{
		LobbyID: "lobby-id",
		Player:  PlayerInfo{ID: "second-id", Name: "Second", Level: 1},
		Role:    models.RoleHealer,
	})
	s.Require().NoError(err)
	_, err = s.service.StartRaid(s.ctx, &StartRaidInput{LobbyID: "lobby-id", RequesterID: "second-id"})
	s.Require().NoError(err)

	out, err := s.service.AdvanceObjective(s.ctx, &AdvanceObjectiveInput{InstanceID: "instance-id"})
	s.Require().NoError(err)
	s.False(out.Finished)
	s.Equal("Reach the city", out.Instance.ObjectiveName)

	s.mockHistory.EXPECT().RecordRun(gomock.Any(), gomock.Any()).Return(nil)

	out, err = s.service.AdvanceObjective(s.ctx, &AdvanceObjectiveInput{InstanceID: "instance-id"})
	s.Require().NoError(err)
	s.True(out.Finished)
	s.Equal(models.InstanceStatusCompleted, out.Completion.Status)
	s.Require().NotNil(out.Completion.Rewards)
	s.Equal(0, out.Completion.Rewards.Gold)
}

func (s *RaidServiceTestSuite) TestAdvanceObjective_WrongShape() {
	s.startRaid("molten_core", "Blackrock Depths")

	_, err := s.service.AdvanceObjective(s.ctx, &AdvanceObjectiveInput{InstanceID: "instance-id"})
	s.ErrorIs(err, ErrNotObjectiveRaid)
}

func (s *RaidServiceTestSuite) TestViewerVoting() {
	s.startRaid("molten_core", "Blackrock Depths")

	for i := 0; i < 2; i++ {
		_, err := s.service.SubmitViewerVote(s.ctx, &SubmitViewerVoteInput{
			InstanceID: "instance-id",
			Vote:       models.ViewerVote{Option: "spawn_adds", Viewer: "viewer", Bits: 250},
		})
		s.Require().NoError(err)
	}

	status, err := s.service.GetVotingStatus(s.ctx, &GetVotingStatusInput{InstanceID: "instance-id"})
	s.Require().NoError(err)
	s.Equal(6, status.Status.Tally["spawn_adds"])
	s.Equal(30*time.Second, status.Status.Remaining)

	resolved, err := s.service.ResolveViewerVote(s.ctx, &ResolveViewerVoteInput{InstanceID: "instance-id"})
	s.Require().NoError(err)
	s.Equal("spawn_adds", resolved.Outcome.Winner)
	s.Equal(6, resolved.Outcome.WinnerWeight)

	_, err = s.service.ResolveViewerVote(s.ctx, &ResolveViewerVoteInput{InstanceID: "instance-id"})
	s.ErrorIs(err, ErrNoVotingWindow)
}

func (s *RaidServiceTestSuite) TestViewerVoting_Disabled() {
	s.mockUUID.EXPECT().NewUUID().Return("lobby-id")
	s.mockUUID.EXPECT().NewUUID().Return("instance-id")

	disabled := false
	_, err := s.service.CreateLobby(s.ctx, &CreateLobbyInput{
		RaidID:            "molten_core",
		Leader:            s.leader,
		LeaderLocation:    "Blackrock Depths",
		AllowViewerVoting: &disabled,
	})
	s.Require().NoError(err)
	_, err = s.service.StartRaid(s.ctx, &StartRaidInput{LobbyID: "lobby-id", RequesterID: s.leader.ID})
	s.Require().NoError(err)

	_, err = s.service.SubmitViewerVote(s.ctx, &SubmitViewerVoteInput{
		InstanceID: "instance-id",
		Vote:       models.ViewerVote{Option: "spawn_adds"},
	})
	s.ErrorIs(err, ErrVotingDisabled)
}

func (s *RaidServiceTestSuite) TestPurchaseRaidBuff() {
	s.startRaid("molten_core", "Blackrock Depths")

	out, err := s.service.PurchaseRaidBuff(s.ctx, &PurchaseRaidBuffInput{
		InstanceID: "instance-id",
		PlayerID:   s.leader.ID,
		Buff:       models.BuffShieldRaid,
	})
	s.Require().NoError(err)
	s.Equal(12, out.Result.Cost)
	s.True(out.Instance.Shield)
	s.False(out.Finished)

	_, err = s.service.PurchaseRaidBuff(s.ctx, &PurchaseRaidBuffInput{
		InstanceID: "instance-id",
		PlayerID:   s.leader.ID,
		Buff:       models.BuffRevivePlayer,
	})
	s.ErrorIs(err, ErrNoDeadPlayers)

	_, err = s.service.PurchaseRaidBuff(s.ctx, &PurchaseRaidBuffInput{
		InstanceID: "instance-id",
		PlayerID:   s.leader.ID,
		Buff:       "summon_dragon",
	})
	s.ErrorIs(err, ErrUnknownBuffType)
}

func (s *RaidServiceTestSuite) TestGetLeaderboard() {
	_, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{RaidID: "naxxramas"})
	s.ErrorIs(err, ErrRaidNotFound)

	entries := []*models.RankedEntry{{Rank: 1, LeaderboardEntry: models.LeaderboardEntry{InstanceID: "run-1"}}}
	s.mockLeaderboard.EXPECT().GetLeaderboard(gomock.Any(), &leaderboard.GetLeaderboardInput{
		RaidID:   "molten_core",
		Category: models.CategoryFastestClear,
		Limit:    5,
	}).Return(&leaderboard.GetLeaderboardOutput{Entries: entries}, nil)

	out, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{RaidID: "molten_core", Limit: 5})
	s.Require().NoError(err)
	s.Equal(models.CategoryFastestClear, out.Category)
	s.Equal(entries, out.Entries)

	s.mockLeaderboard.EXPECT().GetLeaderboard(gomock.Any(), gomock.Any()).
		Return(nil, leaderboard.ErrUnknownCategory)
	_, err = s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{RaidID: "molten_core", Category: "most_gold"})
	s.ErrorIs(err, ErrUnknownCategory)
}

func (s *RaidServiceTestSuite) TestListLeaderboards() {
	s.mockLeaderboard.EXPECT().ListRaids(gomock.Any(), gomock.Any()).
		Return(&leaderboard.ListRaidsOutput{RaidIDs: []string{"molten_core", "retired_raid"}}, nil)

	out, err := s.service.ListLeaderboards(s.ctx, &ListLeaderboardsInput{})
	s.Require().NoError(err)
	s.Equal([]LeaderboardSummary{
		{RaidID: "molten_core", RaidName: "Molten Core"},
		{RaidID: "retired_raid", RaidName: "retired_raid"},
	}, out.Leaderboards)

	s.mockLeaderboard.EXPECT().ListRaids(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
	_, err = s.service.ListLeaderboards(s.ctx, &ListLeaderboardsInput{})
	s.Error(err)
}

func (s *RaidServiceTestSuite) TestGetRaidHistory() {
	runs := []*models.RunRecord{{InstanceID: "run-1"}}
	s.mockHistory.EXPECT().ListRuns(gomock.Any(), &history.ListRunsInput{RaidID: "molten_core", Limit: 3}).
		Return(&history.ListRunsOutput{Runs: runs}, nil)

	out, err := s.service.GetRaidHistory(s.ctx, &GetRaidHistoryInput{RaidID: "molten_core", Limit: 3})
	s.Require().NoError(err)
	s.Equal(runs, out.Runs)
}

func (s *RaidServiceTestSuite) TestShutdownStopsInstances() {
	s.startRaid("molten_core", "Blackrock Depths")

	s.Require().NoError(s.service.Shutdown(s.ctx))

	_, err := s.service.GetInstance(s.ctx, &GetInstanceInput{InstanceID: "instance-id"})
	s.ErrorIs(err, ErrInstanceNotFound)
}
