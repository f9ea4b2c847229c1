package instance

import (
	"sort"
	"time"

	"github.com/KirkDiggler/raidhall/internal/models"
)

// AddViewerVote records a weighted vote, opening a window on the first one.
// A vote landing after the deadline follows the configured VotePolicy.
func (e *Engine) AddViewerVote(vote *models.ViewerVote) (*VoteStatus, error) {
	if err := e.checkActive(); err != nil {
		return nil, err
	}
	if !e.instance.Settings.AllowViewerVoting {
		return nil, ErrVotingDisabled
	}
	if vote == nil || vote.Option == "" {
		return nil, ErrInvalidVote
	}

	now := e.clock.Now()
	window := e.instance.Voting
	if window == nil || (e.votePolicy == VotePolicyReset && !now.Before(window.Deadline)) {
		window = e.openVote(now)
	}

	weight := vote.Weight()
	window.Tally[vote.Option] += weight
	window.TotalWeight += weight

	e.logger.Debug().
		Str("option", vote.Option).
		Str("viewer", vote.Viewer).
		Int("weight", weight).
		Int("total_weight", window.TotalWeight).
		Msg("viewer vote")

	status := e.voteStatus(now)
	status.Weight = weight
	return status, nil
}

func (e *Engine) openVote(now time.Time) *models.VotingWindow {
	window := &models.VotingWindow{
		Tally:    make(map[string]int),
		OpenedAt: now,
		Deadline: now.Add(e.voteWindow),
	}
	e.instance.Voting = window
	e.logf("Viewer voting is open for %s", e.voteWindow)
	e.flushPending()
	return window
}

// VotingTimeRemaining reports how long the open window has left, never
// negative. Zero when no window is open.
func (e *Engine) VotingTimeRemaining() time.Duration {
	window := e.instance.Voting
	if window == nil {
		return 0
	}
	remaining := window.Deadline.Sub(e.clock.Now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// VotingStatus reports the current window without changing it
func (e *Engine) VotingStatus() *VoteStatus {
	return e.voteStatus(e.clock.Now())
}

func (e *Engine) voteStatus(now time.Time) *VoteStatus {
	window := e.instance.Voting
	if window == nil {
		return &VoteStatus{Tally: map[string]int{}}
	}

	status := &VoteStatus{
		Open:        true,
		Tally:       copyTally(window.Tally),
		TotalWeight: window.TotalWeight,
		Expired:     !now.Before(window.Deadline),
	}
	if !status.Expired {
		status.Remaining = window.Deadline.Sub(now)
	}
	return status
}

// ResolveVoting closes the window and reports the winning option. Ties go to
// the option that sorts first. Applying the outcome is up to the caller.
func (e *Engine) ResolveVoting() (*VoteOutcome, error) {
	if err := e.checkActive(); err != nil {
		return nil, err
	}
	window := e.instance.Voting
	if window == nil {
		return nil, ErrNoVotingWindow
	}

	options := make([]string, 0, len(window.Tally))
	for option := range window.Tally {
		options = append(options, option)
	}
	sort.Strings(options)

	outcome := &VoteOutcome{
		TotalWeight: window.TotalWeight,
		Tally:       copyTally(window.Tally),
		Expired:     !e.clock.Now().Before(window.Deadline),
	}
	for _, option := range options {
		if window.Tally[option] > outcome.WinnerWeight {
			outcome.Winner = option
			outcome.WinnerWeight = window.Tally[option]
		}
	}

	e.instance.Voting = nil
	if outcome.Winner != "" {
		e.logf("Viewers chose %s with %d of %d votes", outcome.Winner, outcome.WinnerWeight, outcome.TotalWeight)
	}
	e.flushPending()

	return outcome, nil
}

func copyTally(tally map[string]int) map[string]int {
	out := make(map[string]int, len(tally))
	for k, v := range tally {
		out[k] = v
	}
	return out
}
