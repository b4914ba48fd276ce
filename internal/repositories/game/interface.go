package game

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/jpcodeman/partygame/internal/repositories/game Repository

import (
	"context"

	"github.com/jpcodeman/partygame/internal/models"
)

// Repository defines the interface for game data persistence. Updates run
// caller-supplied mutations against a freshly loaded game and commit them
// atomically, retrying when a concurrent writer got there first.
type Repository interface {
	// CreateGame persists a new game, failing if its code is taken
	CreateGame(ctx context.Context, input *CreateGameInput) error

	// GetGame retrieves a game by code, with every round's guesses
	GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error)

	// UpdateGame applies a mutation to the game record
	UpdateGame(ctx context.Context, input *UpdateGameInput) (*models.Game, error)

	// RecordGuess stores the guess produced by a mutation of the game.
	// Guesses from different teams do not conflict with each other.
	RecordGuess(ctx context.Context, input *RecordGuessInput) (*models.Guess, error)

	// FinalizeRound scores the current round and saves the round, its
	// guesses and the game's team scores together
	FinalizeRound(ctx context.Context, input *FinalizeRoundInput) (*FinalizeRoundOutput, error)

	// ListGamesByDataset retrieves a dataset's games, newest first
	ListGamesByDataset(ctx context.Context, input *ListGamesByDatasetInput) ([]*models.Game, error)
}
