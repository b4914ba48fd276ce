package messaging

import (
	"github.com/jpcodeman/partygame/internal/models"
	"github.com/jpcodeman/partygame/internal/random"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneEncouraging is an encouraging tone
	ToneEncouraging MessageTone = "encouraging"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// Config holds configuration for the messaging service
type Config struct {
	// Random picks between message variants
	Random random.Source
}

// GetJoinTeamMessageInput contains parameters for getting a join message
type GetJoinTeamMessageInput struct {
	TeamName string

	// AlreadyJoined indicates the team name was already in the game
	AlreadyJoined bool

	// PreferredTone is optional
	PreferredTone MessageTone
}

// GetJoinTeamMessageOutput contains the join message
type GetJoinTeamMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetGuessReceivedMessageInput contains parameters for acknowledging a guess
type GetGuessReceivedMessageInput struct {
	TeamName string
	Guess    string
}

// GetGuessReceivedMessageOutput contains the acknowledgement
type GetGuessReceivedMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetRoundStatusMessageInput describes the current round
type GetRoundStatusMessageInput struct {
	Level       models.Level
	RoundNumber int
	Finalized   bool
	IsComplete  bool

	// SubmittedCount is how many teams have guessed so far
	SubmittedCount int
	TeamCount      int
}

// GetRoundStatusMessageOutput contains the status line
type GetRoundStatusMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetRoundResultMessageInput summarizes a finalized round
type GetRoundResultMessageInput struct {
	// FirstCorrectTeam is empty when nobody got it right
	FirstCorrectTeam string
	CorrectCount     int
	Answer           string
}

// GetRoundResultMessageOutput contains the announcement
type GetRoundResultMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetErrorMessageInput contains the error to explain
type GetErrorMessageInput struct {
	Error error
}

// GetErrorMessageOutput contains the friendly error message
type GetErrorMessageOutput struct {
	Message string
	Tone    MessageTone
}
