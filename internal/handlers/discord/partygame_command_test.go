package discord

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/jpcodeman/partygame/internal/models"
	"github.com/jpcodeman/partygame/internal/random"
	"github.com/jpcodeman/partygame/internal/scoring"
	"github.com/jpcodeman/partygame/internal/services/game"
	gameMocks "github.com/jpcodeman/partygame/internal/services/game/mocks"
	"github.com/jpcodeman/partygame/internal/services/messaging"
	messagingMocks "github.com/jpcodeman/partygame/internal/services/messaging/mocks"
)

type PartygameCommandTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockGameService *gameMocks.MockService
	command         *PartygameCommand
	ctx             context.Context
}

func (s *PartygameCommandTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockGameService = gameMocks.NewMockService(s.mockCtrl)

	msgs, err := messaging.New(&messaging.Config{Random: random.New(&random.Config{Seed: 3})})
	s.Require().NoError(err)

	s.command = NewPartygameCommand(s.mockGameService, msgs)
	s.ctx = context.Background()
}

func (s *PartygameCommandTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPartygameCommandTestSuite(t *testing.T) {
	suite.Run(t, new(PartygameCommandTestSuite))
}

func (s *PartygameCommandTestSuite) snapshot(level models.Level) *game.GetGameOutput {
	round := &game.RoundView{
		QuestionText:     "Favourite food?",
		Level:            level,
		RoundNumber:      1,
		DisplayAnswer:    "Sushi",
		Options:          []string{"Ana", "Ben", "Cy", "Di"},
		SubmittedTeamIDs: []string{"team-2"},
	}
	if level.IsMatching() {
		round.DisplayAnswer = ""
		round.Options = []models.Match{{Person: "Ana", Answer: "Sushi"}}
	}

	return &game.GetGameOutput{
		Game: &game.GameView{
			ID:           "game-1",
			GameCode:     "ABC234",
			DatasetName:  "Office Party",
			CurrentLevel: level,
			CurrentRound: 1,
		},
		CurrentRound: round,
		Teams: []*game.TeamView{
			{ID: "team-2", Name: "Owls", Score: 4},
			{ID: "team-1", Name: "Quizzly Bears", Score: 2},
		},
	}
}

func (s *PartygameCommandTestSuite) TestCommandDefinition() {
	cmd := s.command.GetCommand()
	s.Equal("partygame", cmd.Name)
	s.Require().Len(cmd.Options, 3)
	s.Equal(subJoin, cmd.Options[0].Name)
	s.Equal(subGuess, cmd.Options[1].Name)
	s.Len(cmd.Options[1].Options, 3)
	s.Equal(subStatus, cmd.Options[2].Name)
}

func (s *PartygameCommandTestSuite) TestJoin() {
	s.mockGameService.EXPECT().
		JoinTeam(gomock.Any(), &game.JoinTeamInput{GameCode: "abc234", TeamName: "Owls"}).
		Return(&game.JoinTeamOutput{Team: &game.TeamView{ID: "team-2", Name: "Owls"}}, nil)

	r, err := s.command.run(s.ctx, subJoin, map[string]string{optCode: "abc234", optTeam: "Owls"})
	s.Require().NoError(err)
	s.Contains(r.Content, "Owls")
	s.False(r.Ephemeral)
}

func (s *PartygameCommandTestSuite) TestJoinUnknownGame() {
	s.mockGameService.EXPECT().JoinTeam(gomock.Any(), gomock.Any()).Return(nil, game.ErrGameNotFound)

	r, err := s.command.run(s.ctx, subJoin, map[string]string{optCode: "NOPE00", optTeam: "Owls"})
	s.Require().NoError(err)
	s.True(r.Ephemeral)
	s.Contains(r.Content, "code")
}

func (s *PartygameCommandTestSuite) TestGuess() {
	s.mockGameService.EXPECT().GetGame(gomock.Any(), &game.GetGameInput{GameCode: "abc234"}).
		Return(s.snapshot(models.LevelOne), nil)
	s.mockGameService.EXPECT().
		FindTeam(gomock.Any(), &game.FindTeamInput{GameCode: "ABC234", TeamName: "quizzly bears"}).
		Return(&game.FindTeamOutput{Team: &game.TeamView{ID: "team-1", Name: "Quizzly Bears", Score: 2}}, nil)
	s.mockGameService.EXPECT().SubmitGuess(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *game.SubmitGuessInput) (*game.SubmitGuessOutput, error) {
			s.Equal("ABC234", input.GameCode)
			s.Equal("team-1", input.TeamID)
			var name string
			s.Require().NoError(json.Unmarshal(input.Guess, &name))
			s.Equal("Ana", name)
			return &game.SubmitGuessOutput{Accepted: true}, nil
		})

	r, err := s.command.run(s.ctx, subGuess, map[string]string{
		optCode: "abc234",
		optTeam: "quizzly bears",
		optName: " ana ",
	})
	s.Require().NoError(err)
	s.True(r.Ephemeral)
	s.Contains(r.Content, "Quizzly Bears")
	s.Contains(r.Content, "Ana")
}

func (s *PartygameCommandTestSuite) TestGuessRejectsUnknownName() {
	s.mockGameService.EXPECT().GetGame(gomock.Any(), gomock.Any()).Return(s.snapshot(models.LevelTwo), nil)
	s.mockGameService.EXPECT().
		FindTeam(gomock.Any(), &game.FindTeamInput{GameCode: "ABC234", TeamName: "Owls"}).
		Return(&game.FindTeamOutput{Team: &game.TeamView{ID: "team-2", Name: "Owls", Score: 4}}, nil)

	r, err := s.command.run(s.ctx, subGuess, map[string]string{optCode: "ABC234", optTeam: "Owls", optName: "Zed"})
	s.Require().NoError(err)
	s.True(r.Ephemeral)
	s.NotContains(r.Content, "Zed")
}

func (s *PartygameCommandTestSuite) TestGuessUnknownTeam() {
	s.mockGameService.EXPECT().GetGame(gomock.Any(), gomock.Any()).Return(s.snapshot(models.LevelOne), nil)
	s.mockGameService.EXPECT().
		FindTeam(gomock.Any(), &game.FindTeamInput{GameCode: "ABC234", TeamName: "Hawks"}).
		Return(nil, game.ErrTeamNotFound)

	r, err := s.command.run(s.ctx, subGuess, map[string]string{optCode: "ABC234", optTeam: "Hawks", optName: "Ana"})
	s.Require().NoError(err)
	s.True(r.Ephemeral)
	s.Contains(r.Content, "join")
}

func (s *PartygameCommandTestSuite) TestGuessMatchingRound() {
	s.mockGameService.EXPECT().GetGame(gomock.Any(), gomock.Any()).Return(s.snapshot(models.LevelThree), nil)
	s.mockGameService.EXPECT().
		FindTeam(gomock.Any(), &game.FindTeamInput{GameCode: "ABC234", TeamName: "Owls"}).
		Return(&game.FindTeamOutput{Team: &game.TeamView{ID: "team-2", Name: "Owls", Score: 4}}, nil)

	r, err := s.command.run(s.ctx, subGuess, map[string]string{optCode: "ABC234", optTeam: "Owls", optName: "Ana"})
	s.Require().NoError(err)
	s.Equal(errMatchingRound.Error(), r.Content)
}

func (s *PartygameCommandTestSuite) TestGuessAfterFinalize() {
	s.mockGameService.EXPECT().GetGame(gomock.Any(), gomock.Any()).Return(s.snapshot(models.LevelOne), nil)
	s.mockGameService.EXPECT().
		FindTeam(gomock.Any(), &game.FindTeamInput{GameCode: "ABC234", TeamName: "Owls"}).
		Return(&game.FindTeamOutput{Team: &game.TeamView{ID: "team-2", Name: "Owls", Score: 4}}, nil)
	s.mockGameService.EXPECT().SubmitGuess(gomock.Any(), gomock.Any()).Return(nil, models.ErrAlreadyFinalized)

	r, err := s.command.run(s.ctx, subGuess, map[string]string{optCode: "ABC234", optTeam: "Owls", optName: "Ben"})
	s.Require().NoError(err)
	s.True(r.Ephemeral)
	s.Contains(r.Content, "round")
}

func (s *PartygameCommandTestSuite) TestStatus() {
	s.mockGameService.EXPECT().GetGame(gomock.Any(), gomock.Any()).Return(s.snapshot(models.LevelOne), nil)

	r, err := s.command.run(s.ctx, subStatus, map[string]string{optCode: "ABC234"})
	s.Require().NoError(err)
	s.Require().NotNil(r.Embed)
	s.Equal("Game ABC234", r.Embed.Title)
	s.Contains(r.Embed.Description, "1 of 2")

	var names []string
	for _, f := range r.Embed.Fields {
		names = append(names, f.Name)
	}
	s.Equal([]string{"Question", "Options", "Scoreboard"}, names)
	s.Equal("1. Owls (4)\n2. Quizzly Bears (2)", r.Embed.Fields[2].Value)
}

func (s *PartygameCommandTestSuite) TestStatusAfterFinalize() {
	snap := s.snapshot(models.LevelOne)
	snap.CurrentRound.Finalized = true
	snap.Results = &scoring.Outcome{
		CorrectGuess: models.SingleGuess("Ana"),
		Results: []*scoring.Result{
			{TeamID: "team-2", TeamName: "Owls", Guess: models.SingleGuess("Ben")},
			{TeamID: "team-1", TeamName: "Quizzly Bears", Guess: models.SingleGuess("Ana"), IsCorrect: true, Points: 2},
		},
	}
	s.mockGameService.EXPECT().GetGame(gomock.Any(), gomock.Any()).Return(snap, nil)

	r, err := s.command.run(s.ctx, subStatus, map[string]string{optCode: "ABC234"})
	s.Require().NoError(err)
	s.Require().NotNil(r.Embed)
	s.Contains(r.Embed.Description, "is scored")

	var result string
	for _, f := range r.Embed.Fields {
		if f.Name == "Result" {
			result = f.Value
		}
	}
	s.Contains(result, "Quizzly Bears")
	s.Contains(result, "Ana")
}

func (s *PartygameCommandTestSuite) TestStatusInternalError() {
	s.mockGameService.EXPECT().GetGame(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))

	r, err := s.command.run(s.ctx, subStatus, map[string]string{optCode: "ABC234"})
	s.Require().NoError(err)
	s.True(r.Ephemeral)
	s.NotContains(r.Content, "redis")
}

func (s *PartygameCommandTestSuite) TestUnknownSubcommand() {
	_, err := s.command.run(s.ctx, "roll", nil)
	s.ErrorIs(err, ErrUnknownSubcommand)
}

func TestErrorReplyFallsBackWhenMessagingFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	gameService := gameMocks.NewMockService(ctrl)
	msgs := messagingMocks.NewMockService(ctrl)

	gameService.EXPECT().GetGame(gomock.Any(), gomock.Any()).Return(nil, game.ErrGameNotFound)
	msgs.EXPECT().GetErrorMessage(gomock.Any(), &messaging.GetErrorMessageInput{Error: game.ErrGameNotFound}).
		Return(nil, errors.New("no messages"))

	cmd := NewPartygameCommand(gameService, msgs)
	r, err := cmd.run(context.Background(), subStatus, map[string]string{optCode: "NOPE00"})
	if err != nil {
		t.Fatal(err)
	}
	if r.Content != "Something went wrong." || !r.Ephemeral {
		t.Fatalf("unexpected reply: %+v", r)
	}
}

func TestNewBot(t *testing.T) {
	ctrl := gomock.NewController(t)
	gameService := gameMocks.NewMockService(ctrl)
	msgs, err := messaging.New(&messaging.Config{Random: random.New(nil)})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := New(nil); err != ErrNilConfig {
		t.Fatalf("expected ErrNilConfig, got %v", err)
	}
	if _, err := New(&Config{GameService: gameService}); err != ErrTokenRequired {
		t.Fatalf("expected ErrTokenRequired, got %v", err)
	}
	if _, err := New(&Config{Token: "t", GameService: gameService}); err != ErrNilMessagingService {
		t.Fatalf("expected ErrNilMessagingService, got %v", err)
	}
	if _, err := New(&Config{Token: "t", GameService: gameService, MessagingService: msgs}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
