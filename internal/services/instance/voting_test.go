package instance

import (
	"time"

	"github.com/KirkDiggler/raidhall/internal/models"
)

func (s *EngineTestSuite) newVotingEngine(policy VotePolicy) *Engine {
	e, err := New(&Config{
		InstanceID: "instance-id",
		Definition: objectiveRaid("Escort"),
		Lobby:      s.lobby,
		DiceRoller: s.mockRoller,
		Clock:      s.mockClock,
		VotePolicy: policy,
	})
	s.Require().NoError(err)
	return e
}

func (s *EngineTestSuite) TestAddViewerVote_Weights() {
	e := s.newVotingEngine(VotePolicyRetain)
	s.Equal(time.Duration(0), e.VotingTimeRemaining())

	status, err := e.AddViewerVote(&models.ViewerVote{Option: "fire", Viewer: "v1", Bits: 250})
	s.Require().NoError(err)
	s.Equal(3, status.Weight)
	s.Equal(DefaultVoteWindow, status.Remaining)

	status, err = e.AddViewerVote(&models.ViewerVote{Option: "fire", Viewer: "v2", Bits: 250})
	s.Require().NoError(err)
	s.Equal(6, status.Tally["fire"])
	s.Equal(6, status.TotalWeight)

	status, err = e.AddViewerVote(&models.ViewerVote{Option: "ice", Viewer: "v3"})
	s.Require().NoError(err)
	s.Equal(1, status.Weight)
	s.Equal(7, status.TotalWeight)
	s.Equal(map[string]int{"fire": 6, "ice": 1}, e.Instance().Voting.Tally)
}

func (s *EngineTestSuite) TestVotingTimeRemaining_ClampsAtZero() {
	e := s.newVotingEngine(VotePolicyRetain)
	_, err := e.AddViewerVote(&models.ViewerVote{Option: "fire"})
	s.Require().NoError(err)

	s.now = s.now.Add(10 * time.Second)
	s.Equal(20*time.Second, e.VotingTimeRemaining())

	s.now = s.now.Add(time.Minute)
	s.Equal(time.Duration(0), e.VotingTimeRemaining())
	s.True(e.VotingStatus().Expired)
}

func (s *EngineTestSuite) TestAddViewerVote_RetainPolicyKeepsExpiredWindow() {
	e := s.newVotingEngine(VotePolicyRetain)
	_, err := e.AddViewerVote(&models.ViewerVote{Option: "fire", Bits: 100})
	s.Require().NoError(err)

	s.now = s.now.Add(time.Minute)
	status, err := e.AddViewerVote(&models.ViewerVote{Option: "fire", Bits: 100})
	s.Require().NoError(err)
	s.Equal(4, status.Tally["fire"])
	s.True(status.Expired)
	s.Equal(time.Duration(0), status.Remaining)
}

func (s *EngineTestSuite) TestAddViewerVote_ResetPolicyOpensFreshWindow() {
	e := s.newVotingEngine(VotePolicyReset)
	_, err := e.AddViewerVote(&models.ViewerVote{Option: "fire", Bits: 100})
	s.Require().NoError(err)

	s.now = s.now.Add(time.Minute)
	status, err := e.AddViewerVote(&models.ViewerVote{Option: "ice"})
	s.Require().NoError(err)
	s.Equal(map[string]int{"ice": 1}, status.Tally)
	s.False(status.Expired)
	s.Equal(DefaultVoteWindow, e.VotingTimeRemaining())
}

func (s *EngineTestSuite) TestAddViewerVote_Errors() {
	e := s.newVotingEngine(VotePolicyRetain)

	_, err := e.AddViewerVote(&models.ViewerVote{})
	s.ErrorIs(err, ErrInvalidVote)

	_, err = e.AddViewerVote(nil)
	s.ErrorIs(err, ErrInvalidVote)

	s.lobby.Settings.AllowViewerVoting = false
	disabled := s.newVotingEngine(VotePolicyRetain)
	_, err = disabled.AddViewerVote(&models.ViewerVote{Option: "fire"})
	s.ErrorIs(err, ErrVotingDisabled)
	s.Nil(disabled.Instance().Voting)
}

func (s *EngineTestSuite) TestResolveVoting() {
	e := s.newVotingEngine(VotePolicyRetain)

	_, err := e.ResolveVoting()
	s.ErrorIs(err, ErrNoVotingWindow)

	for _, option := range []string{"ice", "fire"} {
		_, err = e.AddViewerVote(&models.ViewerVote{Option: option})
		s.Require().NoError(err)
	}

	outcome, err := e.ResolveVoting()
	s.Require().NoError(err)
	s.Equal("fire", outcome.Winner)
	s.Equal(1, outcome.WinnerWeight)
	s.Equal(2, outcome.TotalWeight)
	s.False(outcome.Expired)
	s.Nil(e.Instance().Voting)

	_, err = e.ResolveVoting()
	s.ErrorIs(err, ErrNoVotingWindow)
}

func (s *EngineTestSuite) TestParseVotePolicy() {
	policy, err := ParseVotePolicy("")
	s.Require().NoError(err)
	s.Equal(VotePolicyRetain, policy)

	policy, err = ParseVotePolicy("reset")
	s.Require().NoError(err)
	s.Equal(VotePolicyReset, policy)

	_, err = ParseVotePolicy("extend")
	s.ErrorIs(err, ErrInvalidVotePolicy)
}
