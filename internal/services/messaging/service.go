package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpcodeman/partygame/internal/models"
	"github.com/jpcodeman/partygame/internal/random"
	"github.com/jpcodeman/partygame/internal/services/game"
)

// MessagingError is a custom error type for messaging errors
type MessagingError string

// Error implements the error interface
func (e MessagingError) Error() string {
	return string(e)
}

const (
	ErrNilConfig MessagingError = "config cannot be nil"
	ErrNilRandom MessagingError = "random source cannot be nil"
	ErrNilInput  MessagingError = "input cannot be nil"
)

type service struct {
	// Random source for selecting message variants
	rand random.Source
}

// New creates a new messaging service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Random == nil {
		return nil, ErrNilRandom
	}

	return &service{rand: cfg.Random}, nil
}

func (s *service) pick(messages []string) string {
	return messages[s.rand.Intn(len(messages))]
}

// GetJoinTeamMessage returns a message for when a team joins a game
func (s *service) GetJoinTeamMessage(ctx context.Context, input *GetJoinTeamMessageInput) (*GetJoinTeamMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	var messages []string
	if input.AlreadyJoined {
		messages = []string{
			fmt.Sprintf("%s is already on the board. Welcome back!", input.TeamName),
			fmt.Sprintf("Good news, %s never left. Carry on.", input.TeamName),
			fmt.Sprintf("%s again? We saved your seat.", input.TeamName),
		}
	} else {
		messages = []string{
			fmt.Sprintf("%s has entered the game. How well do you really know your friends?", input.TeamName),
			fmt.Sprintf("Make some noise for %s!", input.TeamName),
			fmt.Sprintf("%s is in. Time to find out who pays attention at parties.", input.TeamName),
			fmt.Sprintf("Welcome, %s. No peeking at anyone's phone.", input.TeamName),
		}
	}

	return &GetJoinTeamMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetGuessReceivedMessage acknowledges a team's guess
func (s *service) GetGuessReceivedMessage(ctx context.Context, input *GetGuessReceivedMessageInput) (*GetGuessReceivedMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	messages := []string{
		fmt.Sprintf("%s locked in %s.", input.TeamName, input.Guess),
		fmt.Sprintf("Got it, %s. %s it is.", input.TeamName, input.Guess),
		fmt.Sprintf("%s says %s. Bold.", input.TeamName, input.Guess),
		fmt.Sprintf("Guess recorded for %s. Fingers crossed on %s.", input.TeamName, input.Guess),
	}

	return &GetGuessReceivedMessageOutput{
		Message: s.pick(messages),
		Tone:    ToneNeutral,
	}, nil
}

// GetRoundStatusMessage describes where the current round stands
func (s *service) GetRoundStatusMessage(ctx context.Context, input *GetRoundStatusMessageInput) (*GetRoundStatusMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	position := fmt.Sprintf("Level %d, round %d", input.Level, input.RoundNumber)

	switch {
	case input.IsComplete:
		return &GetRoundStatusMessageOutput{
			Message: s.pick([]string{
				"That's the game! Check the final scoreboard.",
				"All rounds are done. Who knew who best?",
				"Game over. Bragging rights have been assigned.",
			}),
			Tone: ToneCelebration,
		}, nil

	case input.Finalized:
		return &GetRoundStatusMessageOutput{
			Message: fmt.Sprintf("%s is scored. Waiting for the host to move on.", position),
			Tone:    ToneNeutral,
		}, nil

	case input.TeamCount > 0 && input.SubmittedCount >= input.TeamCount:
		return &GetRoundStatusMessageOutput{
			Message: fmt.Sprintf("%s: every team has answered. Host, reveal it!", position),
			Tone:    ToneEncouraging,
		}, nil
	}

	var messages []string
	if input.Level.IsMatching() {
		messages = []string{
			fmt.Sprintf("%s: match everyone to their answer. %d of %d teams are in.", position, input.SubmittedCount, input.TeamCount),
			fmt.Sprintf("%s is a matching round. %d of %d teams have submitted.", position, input.SubmittedCount, input.TeamCount),
		}
	} else {
		messages = []string{
			fmt.Sprintf("%s is open. %d of %d teams have guessed.", position, input.SubmittedCount, input.TeamCount),
			fmt.Sprintf("%s: %d of %d teams are in. First correct answer scores double.", position, input.SubmittedCount, input.TeamCount),
		}
	}

	return &GetRoundStatusMessageOutput{
		Message: s.pick(messages),
		Tone:    ToneNeutral,
	}, nil
}

// GetRoundResultMessage announces the outcome of a finalized round
func (s *service) GetRoundResultMessage(ctx context.Context, input *GetRoundResultMessageInput) (*GetRoundResultMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.CorrectCount == 0 || input.FirstCorrectTeam == "" {
		return &GetRoundResultMessageOutput{
			Message: s.pick([]string{
				fmt.Sprintf("Nobody got it! The answer was %s.", input.Answer),
				fmt.Sprintf("Stumped, all of you. It was %s.", input.Answer),
				fmt.Sprintf("Zero correct. %s is apparently a well kept secret.", input.Answer),
			}),
			Tone: ToneFunny,
		}, nil
	}

	messages := []string{
		fmt.Sprintf("It was %s! %s got there first.", input.Answer, input.FirstCorrectTeam),
		fmt.Sprintf("%s was right first. The answer: %s.", input.FirstCorrectTeam, input.Answer),
	}
	if input.CorrectCount > 1 {
		messages = append(messages,
			fmt.Sprintf("%d teams knew it was %s, but %s was fastest.", input.CorrectCount, input.Answer, input.FirstCorrectTeam))
	}

	return &GetRoundResultMessageOutput{
		Message: s.pick(messages),
		Tone:    ToneCelebration,
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var messages []string
	switch {
	case errors.Is(input.Error, game.ErrGameNotFound):
		messages = []string{
			"I can't find a game with that code. Double-check the screen.",
			"That game code doesn't ring a bell.",
		}
	case errors.Is(input.Error, game.ErrTeamNotFound):
		messages = []string{
			"That team isn't in this game. Join first with /partygame join.",
			"Who? That team hasn't joined this game yet.",
		}
	case errors.Is(input.Error, game.ErrTeamNameRequired):
		messages = []string{"Your team needs a name."}
	case errors.Is(input.Error, models.ErrAlreadyFinalized):
		messages = []string{
			"Too late! This round has already been scored.",
			"Pencils down, this round is closed.",
		}
	case errors.Is(input.Error, models.ErrRoundNotFinalized):
		messages = []string{"The host hasn't revealed this round yet."}
	case errors.Is(input.Error, models.ErrGameComplete):
		messages = []string{"The game is over. No more rounds to play."}
	case errors.Is(input.Error, models.ErrInvalidGuess):
		messages = []string{
			"That guess isn't one of the options for this round.",
			"Pick one of the names on screen.",
		}
	default:
		messages = []string{
			"Something went wrong on our end. Try again in a moment.",
			"The game machine hiccuped. Try that again.",
		}
	}

	return &GetErrorMessageOutput{
		Message: s.pick(messages),
		Tone:    ToneNeutral,
	}, nil
}
