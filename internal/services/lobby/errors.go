package lobby

// LobbyError is a custom error type for lobby errors
type LobbyError string

// Error implements the error interface
func (e LobbyError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrLobbyNotFound           LobbyError = "lobby not found"
	ErrRaidNotFound            LobbyError = "raid not found"
	ErrLocationMismatch        LobbyError = "player is not at the raid entrance"
	ErrLobbyFull               LobbyError = "lobby is at maximum capacity"
	ErrRoleFull                LobbyError = "role quota already met"
	ErrAlreadyJoined           LobbyError = "player already in lobby"
	ErrPlayerNotInLobby        LobbyError = "player not in lobby"
	ErrStartRequirementsNotMet LobbyError = "lobby does not meet start requirements"
	ErrInvalidInput            LobbyError = "invalid input"
	ErrNilConfig               LobbyError = "config cannot be nil"
	ErrNilCatalog              LobbyError = "catalog cannot be nil"
	ErrNilDiceRoller           LobbyError = "dice roller cannot be nil"
	ErrNilClock                LobbyError = "clock cannot be nil"
	ErrNilUUIDGenerator        LobbyError = "UUID generator cannot be nil"
)
