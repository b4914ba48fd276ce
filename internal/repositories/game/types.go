package game

import "github.com/jpcodeman/partygame/internal/models"

type CreateGameInput struct {
	Game *models.Game
}

type GetGameInput struct {
	GameCode string
}

// UpdateGameInput carries a mutation. Rounds passed to Update carry no guesses.
type UpdateGameInput struct {
	GameCode string
	Update   func(game *models.Game) error
}

// RecordGuessInput carries a mutation that returns the round and the guess
// to store. Rounds passed to Record carry no guesses.
type RecordGuessInput struct {
	GameCode string
	Record   func(game *models.Game) (*models.Round, *models.Guess, error)
}

// FinalizeRoundInput carries the scoring step. Score receives the game with
// the current round's guesses loaded and the game's teams; every change it
// makes to the game, the round's guesses and the teams is saved.
type FinalizeRoundInput struct {
	GameCode string
	Score    func(game *models.Game, round *models.Round, teams []*models.Team) error
}

type FinalizeRoundOutput struct {
	Game  *models.Game
	Teams []*models.Team
}

type ListGamesByDatasetInput struct {
	DatasetID string
}
