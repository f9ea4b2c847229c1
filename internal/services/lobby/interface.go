package lobby

import "context"

// Service assembles raid teams before a run starts
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

	// ListLobbies returns open lobbies, optionally for a single raid
	ListLobbies(ctx context.Context, input *ListLobbiesInput) (*ListLobbiesOutput, error)

	// TakeForStart removes a startable lobby from the registry and hands it to the caller
	TakeForStart(ctx context.Context, input *TakeForStartInput) (*TakeForStartOutput, error)
}
