package game

import (
	"encoding/json"
	"time"

	"github.com/jpcodeman/partygame/internal/common/clock"
	"github.com/jpcodeman/partygame/internal/common/uuid"
	"github.com/jpcodeman/partygame/internal/models"
	datasetRepo "github.com/jpcodeman/partygame/internal/repositories/dataset"
	gameRepo "github.com/jpcodeman/partygame/internal/repositories/game"
	teamRepo "github.com/jpcodeman/partygame/internal/repositories/team"
	"github.com/jpcodeman/partygame/internal/rounds"
	"github.com/jpcodeman/partygame/internal/scoring"
)

// Config holds configuration for the game service
type Config struct {
	// Repository dependencies
	GameRepo    gameRepo.Repository
	TeamRepo    teamRepo.Repository
	DatasetRepo datasetRepo.Repository

	// Service dependencies
	RoundGenerator rounds.Generator
	Clock          clock.Clock
	UUIDGenerator  uuid.UUID
}

// CreateGameInput contains parameters for creating a new game
type CreateGameInput struct {
	DatasetID string
}

// CreateGameOutput contains the result of creating a new game
type CreateGameOutput struct {
	GameCode string `json:"gameCode"`
	GameID   string `json:"gameId"`

	// RoundCount is how many rounds were generated
	RoundCount int `json:"roundCount"`

	// Partial is true when some level fell short of its quota
	Partial bool `json:"partial"`

	// Shortfall counts missing rounds per level
	Shortfall map[models.Level]int `json:"shortfall,omitempty"`
}

// GetGameInput contains parameters for reading a game
type GetGameInput struct {
	GameCode string
}

// GameView is the public summary of a game
type GameView struct {
	ID           string       `json:"id"`
	GameCode     string       `json:"gameCode"`
	DatasetName  string       `json:"datasetName"`
	CurrentLevel models.Level `json:"currentLevel"`
	CurrentRound int          `json:"currentRound"`
	RoundCount   int          `json:"roundCount"`
	IsHosted     bool         `json:"isHosted"`
	IsComplete   bool         `json:"isComplete"`
}

// RoundView is the public form of a round. CorrectGuess is withheld for
// single-answer rounds until they are finalized.
type RoundView struct {
	QuestionID    string             `json:"questionId"`
	QuestionText  string             `json:"questionText"`
	Level         models.Level       `json:"level"`
	RoundNumber   int                `json:"roundNumber"`
	DisplayAnswer string             `json:"displayAnswer,omitempty"`
	Options       any                `json:"options"`
	CorrectGuess  *models.GuessValue `json:"correctGuess,omitempty"`
	Finalized     bool               `json:"finalized"`

	// SubmittedTeamIDs lists the teams that have guessed
	SubmittedTeamIDs []string `json:"submittedTeamIds"`
}

// TeamView is the public form of a team
type TeamView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// GetGameOutput contains a game snapshot for polling clients
type GetGameOutput struct {
	Game         *GameView        `json:"game"`
	CurrentRound *RoundView       `json:"currentRound"`
	Teams        []*TeamView      `json:"teams"`
	Results      *scoring.Outcome `json:"results"`
}

// JoinTeamInput contains parameters for joining a game
type JoinTeamInput struct {
	GameCode string
	TeamName string
}

// JoinTeamOutput contains the joined team
type JoinTeamOutput struct {
	Team *TeamView `json:"team"`

	// AlreadyJoined indicates the name was already taken in this game
	AlreadyJoined bool `json:"alreadyJoined"`
}

// FindTeamInput contains parameters for looking up a team by name
type FindTeamInput struct {
	GameCode string
	TeamName string
}

// FindTeamOutput contains the matching team
type FindTeamOutput struct {
	Team *TeamView `json:"team"`
}

// SubmitGuessInput contains a team's guess. Guess is decoded according to
// the current round's level.
type SubmitGuessInput struct {
	GameCode string
	TeamID   string
	Guess    json.RawMessage
}

// SubmitGuessOutput contains the result of submitting a guess
type SubmitGuessOutput struct {
	Accepted  bool      `json:"accepted"`
	Timestamp time.Time `json:"timestamp"`
}

// FinalizeRoundInput contains parameters for finalizing the current round
type FinalizeRoundInput struct {
	GameCode string
}

// FinalizeRoundOutput contains the answer key and per-team results
type FinalizeRoundOutput = scoring.Outcome

// AdvanceRoundInput contains parameters for moving to the next round
type AdvanceRoundInput struct {
	GameCode string
}

// AdvanceRoundOutput contains the new round pointer
type AdvanceRoundOutput struct {
	CurrentLevel models.Level `json:"currentLevel"`
	CurrentRound int          `json:"currentRound"`
}

// ListGamesByDatasetInput contains parameters for listing a dataset's games
type ListGamesByDatasetInput struct {
	DatasetID string
}

// GameSummary describes one game created from a dataset
type GameSummary struct {
	GameID       string       `json:"gameId"`
	GameCode     string       `json:"gameCode"`
	CurrentLevel models.Level `json:"currentLevel"`
	CurrentRound int          `json:"currentRound"`
	IsHosted     bool         `json:"isHosted"`
	IsComplete   bool         `json:"isComplete"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// ListGamesByDatasetOutput contains a dataset's games, newest first
type ListGamesByDatasetOutput struct {
	Games []*GameSummary `json:"games"`
}
