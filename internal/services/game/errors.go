package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrGameNotFound      GameError = "game not found"
	ErrTeamNotFound      GameError = "team not found"
	ErrDatasetNotFound   GameError = "dataset not found"
	ErrTeamNameRequired  GameError = "team name is required"
	ErrDatasetIDRequired GameError = "dataset ID is required"
	ErrCodeUnavailable   GameError = "could not allocate a unique game code"
	ErrNilConfig         GameError = "config cannot be nil"
	ErrNilGameRepo       GameError = "game repository cannot be nil"
	ErrNilTeamRepo       GameError = "team repository cannot be nil"
	ErrNilDatasetRepo    GameError = "dataset repository cannot be nil"
	ErrNilRoundGenerator GameError = "round generator cannot be nil"
	ErrNilClock          GameError = "clock cannot be nil"
	ErrNilUUIDGenerator  GameError = "UUID generator cannot be nil"
)
