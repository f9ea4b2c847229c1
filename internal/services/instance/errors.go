package instance

// InstanceError is a custom error type for instance errors
type InstanceError string

// Error implements the error interface
func (e InstanceError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrPlayerCannotAct    InstanceError = "player cannot act"
	ErrUnknownActionType  InstanceError = "unknown action type"
	ErrInvalidTarget      InstanceError = "invalid target"
	ErrTauntRequiresTank  InstanceError = "only tanks can taunt"
	ErrUnknownBuffType    InstanceError = "unknown buff type"
	ErrNoDeadPlayers      InstanceError = "no dead players to revive"
	ErrVotingDisabled     InstanceError = "viewer voting is disabled for this raid"
	ErrNoVotingWindow     InstanceError = "no viewer vote is open"
	ErrInvalidVote        InstanceError = "vote option cannot be empty"
	ErrNotObjectiveRaid   InstanceError = "raid does not progress by objectives"
	ErrInstanceFinished   InstanceError = "raid instance has finished"
	ErrInvalidVotePolicy  InstanceError = "invalid vote policy"
	ErrNilConfig          InstanceError = "config cannot be nil"
	ErrNilDefinition      InstanceError = "raid definition cannot be nil"
	ErrNilLobby           InstanceError = "lobby cannot be nil"
	ErrNilDiceRoller      InstanceError = "dice roller cannot be nil"
	ErrNilClock           InstanceError = "clock cannot be nil"
	ErrUnknownProgression InstanceError = "raid has no progression shape"
)
