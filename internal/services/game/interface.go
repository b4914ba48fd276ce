package game

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/jpcodeman/partygame/internal/services/game Service

// Service runs game sessions: creation, team joins, guesses, scoring and
// round progression
type Service interface {
	// CreateGame generates a game's rounds from a dataset and stores it
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)

	// GetGame returns the game, its current round, teams and, once the
	// round is finalized, its results
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// JoinTeam adds a team to a game or returns the team with that name
	JoinTeam(ctx context.Context, input *JoinTeamInput) (*JoinTeamOutput, error)

	// FindTeam looks up a team in a game by name, ignoring case
	FindTeam(ctx context.Context, input *FindTeamInput) (*FindTeamOutput, error)

	// SubmitGuess records a team's guess for the current round
	SubmitGuess(ctx context.Context, input *SubmitGuessInput) (*SubmitGuessOutput, error)

	// FinalizeRound scores the current round exactly once
	FinalizeRound(ctx context.Context, input *FinalizeRoundInput) (*FinalizeRoundOutput, error)

	// AdvanceRound moves the game to its next round
	AdvanceRound(ctx context.Context, input *AdvanceRoundInput) (*AdvanceRoundOutput, error)

	// ListGamesByDataset summarizes the games created from a dataset
	ListGamesByDataset(ctx context.Context, input *ListGamesByDatasetInput) (*ListGamesByDatasetOutput, error)
}
