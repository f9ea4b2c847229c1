package raid

import "context"

// Service is the entry point for lobbies, live raids and their results
type Service interface {
	// CreateLobby opens a lobby for a raid with the requesting player as leader
	CreateLobby(ctx context.Context, input *CreateLobbyInput) (*CreateLobbyOutput, error)

	// JoinLobby adds a player to a lobby under a role
	JoinLobby(ctx context.Context, input *JoinLobbyInput) (*JoinLobbyOutput, error)

	// LeaveLobby removes a player, disbanding the lobby when it empties
	LeaveLobby(ctx context.Context, input *LeaveLobbyInput) (*LeaveLobbyOutput, error)

	// ChangeRole switches a member's role
	ChangeRole(ctx context.Context, input *ChangeRoleInput) (*ChangeRoleOutput, error)

	// GetLobby returns a lobby snapshot
	GetLobby(ctx context.Context, input *GetLobbyInput) (*GetLobbyOutput, error)

	// ListLobbies returns open lobbies
	ListLobbies(ctx context.Context, input *ListLobbiesInput) (*ListLobbiesOutput, error)

	// StartRaid turns a startable lobby into a live instance
	StartRaid(ctx context.Context, input *StartRaidInput) (*StartRaidOutput, error)

	// PerformAction runs one player action against a live instance
	PerformAction(ctx context.Context, input *PerformActionInput) (*PerformActionOutput, error)

	// SubmitViewerVote records a weighted viewer vote
	SubmitViewerVote(ctx context.Context, input *SubmitViewerVoteInput) (*SubmitViewerVoteOutput, error)

	// GetVotingStatus reports the open viewer vote
	GetVotingStatus(ctx context.Context, input *GetVotingStatusInput) (*GetVotingStatusOutput, error)

	// ResolveViewerVote closes the viewer vote and reports the winner
	ResolveViewerVote(ctx context.Context, input *ResolveViewerVoteInput) (*ResolveViewerVoteOutput, error)

	// PurchaseRaidBuff applies a buff the caller has already paid for
	PurchaseRaidBuff(ctx context.Context, input *PurchaseRaidBuffInput) (*PurchaseRaidBuffOutput, error)

	// AdvanceObjective moves an objective raid to its next checkpoint
	AdvanceObjective(ctx context.Context, input *AdvanceObjectiveInput) (*AdvanceObjectiveOutput, error)

	// GetInstance returns a live instance snapshot
	GetInstance(ctx context.Context, input *GetInstanceInput) (*GetInstanceOutput, error)

	// GetLeaderboard returns the ranked completions of a raid
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)

	// ListLeaderboards returns the raids that have recorded completions
	ListLeaderboards(ctx context.Context, input *ListLeaderboardsInput) (*ListLeaderboardsOutput, error)

	// GetRaidHistory returns finished runs, newest first
	GetRaidHistory(ctx context.Context, input *GetRaidHistoryInput) (*GetRaidHistoryOutput, error)

	// Shutdown stops every live instance
	Shutdown(ctx context.Context) error
}
