package team

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/jpcodeman/partygame/internal/repositories/team Repository

import (
	"context"

	"github.com/jpcodeman/partygame/internal/models"
)

// Repository defines the interface for team data persistence
type Repository interface {
	// CreateTeam stores a new team unless the game already has a team with
	// the same name, ignoring case, in which case that team is returned
	CreateTeam(ctx context.Context, input *CreateTeamInput) (*CreateTeamOutput, error)

	// GetTeam retrieves a team by ID
	GetTeam(ctx context.Context, input *GetTeamInput) (*models.Team, error)

	// GetTeamsByGame retrieves every team in a game
	GetTeamsByGame(ctx context.Context, input *GetTeamsByGameInput) ([]*models.Team, error)

	// GetTeamByName retrieves a team by its case-insensitive name
	GetTeamByName(ctx context.Context, input *GetTeamByNameInput) (*models.Team, error)
}
