package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/jpcodeman/partygame/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetJoinTeamMessage returns a message for when a team joins a game
	GetJoinTeamMessage(ctx context.Context, input *GetJoinTeamMessageInput) (*GetJoinTeamMessageOutput, error)

	// GetGuessReceivedMessage acknowledges a team's guess
	GetGuessReceivedMessage(ctx context.Context, input *GetGuessReceivedMessageInput) (*GetGuessReceivedMessageOutput, error)

	// GetRoundStatusMessage describes where the current round stands
	GetRoundStatusMessage(ctx context.Context, input *GetRoundStatusMessageInput) (*GetRoundStatusMessageOutput, error)

	// GetRoundResultMessage announces the outcome of a finalized round
	GetRoundResultMessage(ctx context.Context, input *GetRoundResultMessageInput) (*GetRoundResultMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
