package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/jpcodeman/partygame/internal/models"
	"github.com/jpcodeman/partygame/internal/services/game"
	"github.com/jpcodeman/partygame/internal/services/messaging"
)

// Subcommand and option names
const (
	subJoin   = "join"
	subGuess  = "guess"
	subStatus = "status"

	optCode = "code"
	optTeam = "team"
	optName = "name"
)

// ErrUnknownSubcommand is returned for subcommands the bot does not define
var ErrUnknownSubcommand = errors.New("unknown subcommand")

// errMatchingRound is shown when someone tries to guess a matching round from chat
var errMatchingRound = errors.New("matching rounds are played on the game page")

// PartygameCommand handles the /partygame command
type PartygameCommand struct {
	BaseCommand
	gameService      game.Service
	messagingService messaging.Service
}

// NewPartygameCommand creates a new partygame command handler
func NewPartygameCommand(gameService game.Service, messagingService messaging.Service) *PartygameCommand {
	code := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        optCode,
		Description: "Game code shown on the host screen",
		Required:    true,
	}
	team := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        optTeam,
		Description: "Your team name",
		Required:    true,
	}

	return &PartygameCommand{
		BaseCommand: BaseCommand{
			Name:        "partygame",
			Description: "Play the friends trivia party game",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subJoin,
					Description: "Join a game as a team",
					Options:     []*discordgo.ApplicationCommandOption{code, team},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subGuess,
					Description: "Guess who gave the answer in the current round",
					Options: []*discordgo.ApplicationCommandOption{code, team, {
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        optName,
						Description: "The person you think said it",
						Required:    true,
					}},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subStatus,
					Description: "Show the current round and scoreboard",
					Options:     []*discordgo.ApplicationCommandOption{code},
				},
			},
		},
		gameService:      gameService,
		messagingService: messagingService,
	}
}

// Handle processes a Discord interaction for the partygame command
func (c *PartygameCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	sub := data.Options[0]
	opts := make(map[string]string, len(sub.Options))
	for _, o := range sub.Options {
		opts[o.Name] = o.StringValue()
	}

	r, err := c.run(context.Background(), sub.Name, opts)
	if err != nil {
		return RespondWithError(s, i, err.Error())
	}
	return Respond(s, i, r)
}

// run executes a subcommand. Domain failures become friendly replies; the
// returned error is reserved for requests the command cannot understand.
func (c *PartygameCommand) run(ctx context.Context, sub string, opts map[string]string) (*reply, error) {
	switch sub {
	case subJoin:
		return c.join(ctx, opts[optCode], opts[optTeam]), nil
	case subGuess:
		return c.guess(ctx, opts[optCode], opts[optTeam], opts[optName]), nil
	case subStatus:
		return c.status(ctx, opts[optCode]), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSubcommand, sub)
	}
}

func (c *PartygameCommand) join(ctx context.Context, code, teamName string) *reply {
	out, err := c.gameService.JoinTeam(ctx, &game.JoinTeamInput{
		GameCode: code,
		TeamName: teamName,
	})
	if err != nil {
		return c.errorReply(ctx, err)
	}

	msg, err := c.messagingService.GetJoinTeamMessage(ctx, &messaging.GetJoinTeamMessageInput{
		TeamName:      out.Team.Name,
		AlreadyJoined: out.AlreadyJoined,
	})
	if err != nil {
		return c.errorReply(ctx, err)
	}
	return &reply{Content: msg.Message}
}

func (c *PartygameCommand) guess(ctx context.Context, code, teamName, name string) *reply {
	current, err := c.gameService.GetGame(ctx, &game.GetGameInput{GameCode: code})
	if err != nil {
		return c.errorReply(ctx, err)
	}

	found, err := c.gameService.FindTeam(ctx, &game.FindTeamInput{
		GameCode: current.Game.GameCode,
		TeamName: teamName,
	})
	if err != nil {
		return c.errorReply(ctx, err)
	}
	team := found.Team

	round := current.CurrentRound
	if round.Level.IsMatching() {
		return &reply{Content: errMatchingRound.Error(), Ephemeral: true}
	}

	names, _ := round.Options.([]string)
	picked, ok := matchName(names, name)
	if !ok {
		return c.errorReply(ctx, models.ErrInvalidGuess)
	}

	raw, err := json.Marshal(picked)
	if err != nil {
		return c.errorReply(ctx, err)
	}

	if _, err := c.gameService.SubmitGuess(ctx, &game.SubmitGuessInput{
		GameCode: current.Game.GameCode,
		TeamID:   team.ID,
		Guess:    raw,
	}); err != nil {
		return c.errorReply(ctx, err)
	}

	msg, err := c.messagingService.GetGuessReceivedMessage(ctx, &messaging.GetGuessReceivedMessageInput{
		TeamName: team.Name,
		Guess:    picked,
	})
	if err != nil {
		return c.errorReply(ctx, err)
	}
	// other teams should not see the guess
	return &reply{Content: msg.Message, Ephemeral: true}
}

func (c *PartygameCommand) status(ctx context.Context, code string) *reply {
	out, err := c.gameService.GetGame(ctx, &game.GetGameInput{GameCode: code})
	if err != nil {
		return c.errorReply(ctx, err)
	}

	round := out.CurrentRound
	statusMsg, err := c.messagingService.GetRoundStatusMessage(ctx, &messaging.GetRoundStatusMessageInput{
		Level:          round.Level,
		RoundNumber:    round.RoundNumber,
		Finalized:      round.Finalized,
		IsComplete:     out.Game.IsComplete,
		SubmittedCount: len(round.SubmittedTeamIDs),
		TeamCount:      len(out.Teams),
	})
	if err != nil {
		return c.errorReply(ctx, err)
	}

	var resultLine string
	if out.Results != nil && !round.Level.IsMatching() {
		input := &messaging.GetRoundResultMessageInput{Answer: out.Results.CorrectGuess.String()}
		for _, r := range out.Results.Results {
			if !r.IsCorrect {
				continue
			}
			if input.CorrectCount == 0 {
				input.FirstCorrectTeam = r.TeamName
			}
			input.CorrectCount++
		}
		resultMsg, err := c.messagingService.GetRoundResultMessage(ctx, input)
		if err != nil {
			return c.errorReply(ctx, err)
		}
		resultLine = resultMsg.Message
	}

	return &reply{Embed: renderStatus(out, statusMsg.Message, resultLine)}
}

// errorReply turns an error into an ephemeral friendly message
func (c *PartygameCommand) errorReply(ctx context.Context, err error) *reply {
	msg, msgErr := c.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Error: err})
	if msgErr != nil {
		log.Error().Err(msgErr).Msg("failed to build error message")
		return &reply{Content: "Something went wrong.", Ephemeral: true}
	}
	if !isDomainError(err) {
		log.Error().Err(err).Msg("partygame command failed")
	}
	return &reply{Content: msg.Message, Ephemeral: true}
}

func isDomainError(err error) bool {
	var gameErr game.GameError
	var modelErr models.GameError
	return errors.As(err, &gameErr) || errors.As(err, &modelErr)
}

// matchName resolves a typed name against the round's options so casing
// mistakes in chat still count
func matchName(names []string, typed string) (string, bool) {
	typed = strings.TrimSpace(typed)
	for _, n := range names {
		if strings.EqualFold(n, typed) {
			return n, true
		}
	}
	return "", false
}
