package game

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jpcodeman/partygame/internal/common/clock"
	"github.com/jpcodeman/partygame/internal/common/uuid"
	"github.com/jpcodeman/partygame/internal/models"
	datasetRepo "github.com/jpcodeman/partygame/internal/repositories/dataset"
	gameRepo "github.com/jpcodeman/partygame/internal/repositories/game"
	teamRepo "github.com/jpcodeman/partygame/internal/repositories/team"
	"github.com/jpcodeman/partygame/internal/rounds"
	"github.com/jpcodeman/partygame/internal/scoring"
)

var tracer = otel.Tracer("github.com/jpcodeman/partygame/internal/services/game")

// service implements the Service interface
type service struct {
	gameRepo    gameRepo.Repository
	teamRepo    teamRepo.Repository
	datasetRepo datasetRepo.Repository
	generator   rounds.Generator
	clock       clock.Clock
	uuid        uuid.UUID

	newCode func() (string, error)
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.GameRepo == nil {
		return nil, ErrNilGameRepo
	}
	if cfg.TeamRepo == nil {
		return nil, ErrNilTeamRepo
	}
	if cfg.DatasetRepo == nil {
		return nil, ErrNilDatasetRepo
	}
	if cfg.RoundGenerator == nil {
		return nil, ErrNilRoundGenerator
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		gameRepo:    cfg.GameRepo,
		teamRepo:    cfg.TeamRepo,
		datasetRepo: cfg.DatasetRepo,
		generator:   cfg.RoundGenerator,
		clock:       cfg.Clock,
		uuid:        cfg.UUIDGenerator,
		newCode:     newGameCode,
	}, nil
}

// CreateGame builds a game's rounds from a dataset and stores the game
func (s *service) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	ctx, span := tracer.Start(ctx, "game.CreateGame", trace.WithAttributes(attribute.String("dataset.id", input.DatasetID)))
	defer span.End()

	if strings.TrimSpace(input.DatasetID) == "" {
		return nil, ErrDatasetIDRequired
	}

	ds, err := s.datasetRepo.GetDataset(ctx, &datasetRepo.GetDatasetInput{
		DatasetID: input.DatasetID,
	})
	if err != nil {
		if errors.Is(err, datasetRepo.ErrDatasetNotFound) {
			return nil, ErrDatasetNotFound
		}
		return nil, s.fail(span, fmt.Errorf("failed to get dataset: %w", err))
	}

	result, err := s.generator.Generate(ds)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	game := &models.Game{
		ID:          s.uuid.NewUUID(),
		DatasetID:   ds.ID,
		DatasetName: ds.Name,
		Rounds:      result.Rounds,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	game.Start()

	for attempt := 0; ; attempt++ {
		if attempt == maxCodeAttempts {
			return nil, ErrCodeUnavailable
		}
		code, err := s.newCode()
		if err != nil {
			return nil, s.fail(span, fmt.Errorf("failed to generate game code: %w", err))
		}
		game.Code = code

		err = s.gameRepo.CreateGame(ctx, &gameRepo.CreateGameInput{Game: game})
		if errors.Is(err, gameRepo.ErrGameCodeTaken) {
			continue
		}
		if err != nil {
			return nil, s.fail(span, fmt.Errorf("failed to save game: %w", err))
		}
		break
	}

	logger := log.Info()
	if result.Partial() {
		logger = log.Warn().Interface("shortfall", result.Shortfall)
	}
	logger.Str("game_code", game.Code).
		Str("dataset_id", ds.ID).
		Int("rounds", len(game.Rounds)).
		Msg("game created")

	out := &CreateGameOutput{
		GameCode:   game.Code,
		GameID:     game.ID,
		RoundCount: len(game.Rounds),
		Partial:    result.Partial(),
	}
	if out.Partial {
		out.Shortfall = result.Shortfall
	}
	return out, nil
}

// GetGame returns a snapshot of the game for polling clients
func (s *service) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	ctx, span := tracer.Start(ctx, "game.GetGame")
	defer span.End()

	game, err := s.getGame(ctx, input.GameCode)
	if err != nil {
		return nil, s.fail(span, err)
	}

	teams, err := s.teamRepo.GetTeamsByGame(ctx, &teamRepo.GetTeamsByGameInput{GameID: game.ID})
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("failed to get teams: %w", err))
	}

	round, err := game.Current()
	if err != nil {
		return nil, err
	}

	out := &GetGameOutput{
		Game:         gameView(game),
		CurrentRound: roundView(round),
		Teams:        teamViews(teams),
	}
	if round.Finalized {
		out.Results = scoring.Summarize(round, teams)
	}
	return out, nil
}

// JoinTeam creates a team or returns the team already using the name
func (s *service) JoinTeam(ctx context.Context, input *JoinTeamInput) (*JoinTeamOutput, error) {
	ctx, span := tracer.Start(ctx, "game.JoinTeam")
	defer span.End()

	name := strings.TrimSpace(input.TeamName)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	game, err := s.getGame(ctx, input.GameCode)
	if err != nil {
		return nil, s.fail(span, err)
	}

	created, err := s.teamRepo.CreateTeam(ctx, &teamRepo.CreateTeamInput{
		Team: &models.Team{
			ID:        s.uuid.NewUUID(),
			GameID:    game.ID,
			Name:      name,
			CreatedAt: s.clock.Now(),
		},
	})
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("failed to create team: %w", err))
	}

	if !created.AlreadyJoined {
		log.Info().Str("game_code", game.Code).Str("team", name).Msg("team joined")
	}

	return &JoinTeamOutput{
		Team:          teamView(created.Team),
		AlreadyJoined: created.AlreadyJoined,
	}, nil
}

// FindTeam looks up a team in a game by name, ignoring case
func (s *service) FindTeam(ctx context.Context, input *FindTeamInput) (*FindTeamOutput, error) {
	ctx, span := tracer.Start(ctx, "game.FindTeam")
	defer span.End()

	name := strings.TrimSpace(input.TeamName)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	game, err := s.getGame(ctx, input.GameCode)
	if err != nil {
		return nil, s.fail(span, err)
	}

	team, err := s.teamRepo.GetTeamByName(ctx, &teamRepo.GetTeamByNameInput{
		GameID: game.ID,
		Name:   name,
	})
	if err != nil {
		if errors.Is(err, teamRepo.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, s.fail(span, fmt.Errorf("failed to get team by name: %w", err))
	}

	return &FindTeamOutput{Team: teamView(team)}, nil
}

// SubmitGuess records a guess for the current round, replacing the team's
// earlier guess
func (s *service) SubmitGuess(ctx context.Context, input *SubmitGuessInput) (*SubmitGuessOutput, error) {
	ctx, span := tracer.Start(ctx, "game.SubmitGuess")
	defer span.End()

	teamID := strings.TrimSpace(input.TeamID)
	if teamID == "" {
		return nil, ErrTeamNotFound
	}

	team, err := s.teamRepo.GetTeam(ctx, &teamRepo.GetTeamInput{TeamID: teamID})
	if err != nil {
		if errors.Is(err, teamRepo.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, s.fail(span, fmt.Errorf("failed to get team: %w", err))
	}

	guess, err := s.gameRepo.RecordGuess(ctx, &gameRepo.RecordGuessInput{
		GameCode: NormalizeCode(input.GameCode),
		Record: func(game *models.Game) (*models.Round, *models.Guess, error) {
			if team.GameID != game.ID {
				return nil, nil, ErrTeamNotFound
			}
			round, err := game.Current()
			if err != nil {
				return nil, nil, err
			}
			value, err := models.DecodeGuessValue(round.Level, input.Guess)
			if err != nil {
				return nil, nil, err
			}
			guess, err := round.Submit(team.ID, value, s.clock.Now())
			if err != nil {
				return nil, nil, err
			}
			return round, guess, nil
		},
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, s.fail(span, err)
	}

	return &SubmitGuessOutput{
		Accepted:  true,
		Timestamp: guess.Timestamp,
	}, nil
}

// FinalizeRound scores the current round and credits team scores in the
// same write
func (s *service) FinalizeRound(ctx context.Context, input *FinalizeRoundInput) (*FinalizeRoundOutput, error) {
	ctx, span := tracer.Start(ctx, "game.FinalizeRound")
	defer span.End()

	var outcome *scoring.Outcome
	out, err := s.gameRepo.FinalizeRound(ctx, &gameRepo.FinalizeRoundInput{
		GameCode: NormalizeCode(input.GameCode),
		Score: func(game *models.Game, round *models.Round, teams []*models.Team) error {
			result, err := scoring.Finalize(round, teams)
			if err != nil {
				return err
			}
			game.UpdatedAt = s.clock.Now()
			outcome = result
			return nil
		},
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, s.fail(span, err)
	}

	log.Info().
		Str("game_code", out.Game.Code).
		Int("level", int(out.Game.CurrentLevel)).
		Int("round", out.Game.CurrentRound).
		Int("guesses", len(outcome.Results)).
		Msg("round finalized")

	return outcome, nil
}

// AdvanceRound moves the pointer past a finalized round
func (s *service) AdvanceRound(ctx context.Context, input *AdvanceRoundInput) (*AdvanceRoundOutput, error) {
	ctx, span := tracer.Start(ctx, "game.AdvanceRound")
	defer span.End()

	game, err := s.gameRepo.UpdateGame(ctx, &gameRepo.UpdateGameInput{
		GameCode: NormalizeCode(input.GameCode),
		Update: func(game *models.Game) error {
			return game.Advance(s.clock.Now())
		},
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, s.fail(span, err)
	}

	log.Info().
		Str("game_code", game.Code).
		Int("level", int(game.CurrentLevel)).
		Int("round", game.CurrentRound).
		Msg("round advanced")

	return &AdvanceRoundOutput{
		CurrentLevel: game.CurrentLevel,
		CurrentRound: game.CurrentRound,
	}, nil
}

// ListGamesByDataset summarizes a dataset's games, newest first
func (s *service) ListGamesByDataset(ctx context.Context, input *ListGamesByDatasetInput) (*ListGamesByDatasetOutput, error) {
	ctx, span := tracer.Start(ctx, "game.ListGamesByDataset")
	defer span.End()

	if strings.TrimSpace(input.DatasetID) == "" {
		return nil, ErrDatasetIDRequired
	}

	games, err := s.gameRepo.ListGamesByDataset(ctx, &gameRepo.ListGamesByDatasetInput{
		DatasetID: input.DatasetID,
	})
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("failed to list games: %w", err))
	}

	out := &ListGamesByDatasetOutput{Games: make([]*GameSummary, 0, len(games))}
	for _, g := range games {
		out.Games = append(out.Games, &GameSummary{
			GameID:       g.ID,
			GameCode:     g.Code,
			CurrentLevel: g.CurrentLevel,
			CurrentRound: g.CurrentRound,
			IsHosted:     g.IsHosted(),
			IsComplete:   g.IsComplete(),
			CreatedAt:    g.CreatedAt,
			UpdatedAt:    g.UpdatedAt,
		})
	}
	sort.SliceStable(out.Games, func(i, j int) bool {
		return out.Games[i].CreatedAt.After(out.Games[j].CreatedAt)
	})
	return out, nil
}

func (s *service) getGame(ctx context.Context, code string) (*models.Game, error) {
	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{
		GameCode: NormalizeCode(code),
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

// fail records unexpected errors on the span. Domain errors pass through
// untouched.
func (s *service) fail(span trace.Span, err error) error {
	var gameErr GameError
	var modelErr models.GameError
	if errors.As(err, &gameErr) || errors.As(err, &modelErr) {
		return err
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	log.Error().Err(err).Msg("game service failure")
	return err
}

func gameView(g *models.Game) *GameView {
	return &GameView{
		ID:           g.ID,
		GameCode:     g.Code,
		DatasetName:  g.DatasetName,
		CurrentLevel: g.CurrentLevel,
		CurrentRound: g.CurrentRound,
		RoundCount:   len(g.Rounds),
		IsHosted:     g.IsHosted(),
		IsComplete:   g.IsComplete(),
	}
}

func roundView(r *models.Round) *RoundView {
	view := &RoundView{
		QuestionID:       r.QuestionID,
		QuestionText:     r.QuestionText,
		Level:            r.Level,
		RoundNumber:      r.RoundNumber,
		DisplayAnswer:    r.DisplayAnswer,
		Options:          r.Options(),
		Finalized:        r.Finalized,
		SubmittedTeamIDs: make([]string, 0, len(r.Guesses)),
	}
	// matching rounds display their key as the options
	if r.Finalized || r.Level.IsMatching() {
		answer := r.Answer
		view.CorrectGuess = &answer
	}
	for _, g := range r.Guesses {
		view.SubmittedTeamIDs = append(view.SubmittedTeamIDs, g.TeamID)
	}
	return view
}

func teamView(t *models.Team) *TeamView {
	return &TeamView{ID: t.ID, Name: t.Name, Score: t.Score}
}

func teamViews(teams []*models.Team) []*TeamView {
	out := make([]*TeamView, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamView(t))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
