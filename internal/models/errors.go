package models

// GameError is a custom error type for game state violations
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

const (
	ErrAlreadyFinalized  GameError = "round already finalized"
	ErrRoundNotFinalized GameError = "round not finalized"
	ErrGameComplete      GameError = "game complete"
	ErrRoundNotFound     GameError = "round not found"
	ErrInvalidGuess      GameError = "invalid guess"
	ErrInvalidLevel      GameError = "invalid level"
)
