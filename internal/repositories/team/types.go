package team

import "github.com/jpcodeman/partygame/internal/models"

// CreateTeamInput contains parameters for creating a team
type CreateTeamInput struct {
	Team *models.Team
}

// CreateTeamOutput contains the stored team
type CreateTeamOutput struct {
	Team *models.Team

	// AlreadyJoined is true when a team with the same name existed
	AlreadyJoined bool
}

// GetTeamInput contains parameters for retrieving a team
type GetTeamInput struct {
	TeamID string
}

// GetTeamsByGameInput contains parameters for retrieving a game's teams
type GetTeamsByGameInput struct {
	GameID string
}

// GetTeamByNameInput contains parameters for looking up a team by name
type GetTeamByNameInput struct {
	GameID string
	Name   string
}
