package game

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jpcodeman/partygame/internal/models"
	teamRepo "github.com/jpcodeman/partygame/internal/repositories/team"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr       *miniredis.Miniredis
	client   *redis.Client
	repo     Repository
	teamRepo teamRepo.Repository
	ctx      context.Context
	testNow  time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	teams, err := teamRepo.NewRedis(&teamRepo.Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.teamRepo = teams

	s.ctx = context.Background()
	s.testNow = time.Date(2025, 6, 14, 20, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newGame(code string) *models.Game {
	g := &models.Game{
		ID:          "id-" + code,
		Code:        code,
		DatasetID:   "ds-1",
		DatasetName: "Office",
		Rounds: []*models.Round{
			{
				QuestionID:    "q1",
				QuestionText:  "Favourite food?",
				Level:         models.LevelOne,
				RoundNumber:   1,
				DisplayAnswer: "Pizza",
				Names:         []string{"Alice", "Bob", "Carol", "Dan"},
				Answer:        models.SingleGuess("Alice"),
			},
			{
				QuestionID:   "q2",
				QuestionText: "Dream job?",
				Level:        models.LevelThree,
				RoundNumber:  1,
				Pairs:        []models.Match{{Person: "Alice", Answer: "Pilot"}},
				Answer:       models.MatchesGuess([]models.Match{{Person: "Alice", Answer: "Pilot"}}),
			},
		},
		CreatedAt: s.testNow,
		UpdatedAt: s.testNow,
	}
	g.Start()
	return g
}

func (s *RedisRepositoryTestSuite) createTeam(gameID, id, name string) {
	_, err := s.teamRepo.CreateTeam(s.ctx, &teamRepo.CreateTeamInput{
		Team: &models.Team{ID: id, GameID: gameID, Name: name, CreatedAt: s.testNow},
	})
	s.Require().NoError(err)
}

func (s *RedisRepositoryTestSuite) submit(code, teamID, name string, at time.Time) error {
	_, err := s.repo.RecordGuess(s.ctx, &RecordGuessInput{
		GameCode: code,
		Record: func(g *models.Game) (*models.Round, *models.Guess, error) {
			round, err := g.Current()
			if err != nil {
				return nil, nil, err
			}
			guess, err := round.Submit(teamID, models.SingleGuess(name), at)
			return round, guess, err
		},
	})
	return err
}

func (s *RedisRepositoryTestSuite) TestCreateAndGetGame() {
	s.Require().NoError(s.repo.CreateGame(s.ctx, &CreateGameInput{Game: s.newGame("ABC123")}))

	g, err := s.repo.GetGame(s.ctx, &GetGameInput{GameCode: "ABC123"})
	s.Require().NoError(err)
	s.Equal("id-ABC123", g.ID)
	s.Equal("Office", g.DatasetName)
	s.Equal(models.LevelOne, g.CurrentLevel)
	s.Equal(1, g.CurrentRound)
	s.Require().Len(g.Rounds, 2)
	s.Equal([]string{"Alice", "Bob", "Carol", "Dan"}, g.Rounds[0].Names)
	s.True(g.Rounds[1].Answer.IsMatches())
	s.Empty(g.Rounds[0].Guesses)
	s.Equal(s.testNow.Unix(), g.CreatedAt.Unix())
}

func (s *RedisRepositoryTestSuite) TestCreateGameCodeTaken() {
	s.Require().NoError(s.repo.CreateGame(s.ctx, &CreateGameInput{Game: s.newGame("ABC123")}))

	err := s.repo.CreateGame(s.ctx, &CreateGameInput{Game: s.newGame("ABC123")})
	s.ErrorIs(err, ErrGameCodeTaken)
}

func (s *RedisRepositoryTestSuite) TestGetGameNotFound() {
	_, err := s.repo.GetGame(s.ctx, &GetGameInput{GameCode: "NOPE00"})
	s.ErrorIs(err, ErrGameNotFound)

	_, err = s.repo.UpdateGame(s.ctx, &UpdateGameInput{
		GameCode: "NOPE00",
		Update:   func(*models.Game) error { return nil },
	})
	s.ErrorIs(err, ErrGameNotFound)
}

func (s *RedisRepositoryTestSuite) TestRecordGuessUpsertsPerTeam() {
	s.Require().NoError(s.repo.CreateGame(s.ctx, &CreateGameInput{Game: s.newGame("ABC123")}))

	s.Require().NoError(s.submit("ABC123", "team-a", "Bob", s.testNow))
	s.Require().NoError(s.submit("ABC123", "team-b", "Alice", s.testNow.Add(time.Second)))
	s.Require().NoError(s.submit("ABC123", "team-a", "Alice", s.testNow.Add(2*time.Second)))

	g, err := s.repo.GetGame(s.ctx, &GetGameInput{GameCode: "ABC123"})
	s.Require().NoError(err)
	guesses := g.Rounds[0].Guesses
	s.Require().Len(guesses, 2)
	s.Equal("team-b", guesses[0].TeamID)
	s.Equal("team-a", guesses[1].TeamID)
	name, _ := guesses[1].Value.Single()
	s.Equal("Alice", name)
	s.Empty(g.Rounds[1].Guesses)
}

func (s *RedisRepositoryTestSuite) TestGuessesWithEqualTimestampsReadStable() {
	s.Require().NoError(s.repo.CreateGame(s.ctx, &CreateGameInput{Game: s.newGame("ABC123")}))

	s.Require().NoError(s.submit("ABC123", "team-c", "Alice", s.testNow))
	s.Require().NoError(s.submit("ABC123", "team-a", "Alice", s.testNow))
	s.Require().NoError(s.submit("ABC123", "team-b", "Bob", s.testNow.Add(-time.Second)))

	for i := 0; i < 5; i++ {
		g, err := s.repo.GetGame(s.ctx, &GetGameInput{GameCode: "ABC123"})
		s.Require().NoError(err)
		var order []string
		for _, guess := range g.Rounds[0].Guesses {
			order = append(order, guess.TeamID)
		}
		s.Equal([]string{"team-b", "team-a", "team-c"}, order)
	}
}

func (s *RedisRepositoryTestSuite) TestRecordGuessMutationErrorWritesNothing() {
	s.Require().NoError(s.repo.CreateGame(s.ctx, &CreateGameInput{Game: s.newGame("ABC123")}))

	err := s.submit("ABC123", "team-a", "Zed", s.testNow)
	s.ErrorIs(err, models.ErrInvalidGuess)

	g, err := s.repo.GetGame(s.ctx, &GetGameInput{GameCode: "ABC123"})
	s.Require().NoError(err)
	s.Empty(g.Rounds[0].Guesses)
}

func (s *RedisRepositoryTestSuite) TestUpdateGame() {
	s.Require().NoError(s.repo.CreateGame(s.ctx, &CreateGameInput{Game: s.newGame("ABC123")}))

	updated, err := s.repo.UpdateGame(s.ctx, &UpdateGameInput{
		GameCode: "ABC123",
		Update: func(g *models.Game) error {
			g.HostKey = "secret"
			return nil
		},
	})
	s.Require().NoError(err)
	s.Equal("secret", updated.HostKey)

	g, err := s.repo.GetGame(s.ctx, &GetGameInput{GameCode: "ABC123"})
	s.Require().NoError(err)
	s.Equal("secret", g.HostKey)

	boom := errors.New("boom")
	_, err = s.repo.UpdateGame(s.ctx, &UpdateGameInput{
		GameCode: "ABC123",
		Update: func(g *models.Game) error {
			g.HostKey = ""
			return boom
		},
	})
	s.ErrorIs(err, boom)

	g, err = s.repo.GetGame(s.ctx, &GetGameInput{GameCode: "ABC123"})
	s.Require().NoError(err)
	s.Equal("secret", g.HostKey)
}

func (s *RedisRepositoryTestSuite) TestUpdateGameKeepsGuesses() {
	s.Require().NoError(s.repo.CreateGame(s.ctx, &CreateGameInput{Game: s.newGame("ABC123")}))
	s.Require().NoError(s.submit("ABC123", "team-a", "Alice", s.testNow))

	_, err := s.repo.UpdateGame(s.ctx, &UpdateGameInput{
		GameCode: "ABC123",
		Update:   func(g *models.Game) error { g.HostKey = "k"; return nil },
	})
	s.Require().NoError(err)

	g, err := s.repo.GetGame(s.ctx, &GetGameInput{GameCode: "ABC123"})
	s.Require().NoError(err)
	s.Len(g.Rounds[0].Guesses, 1)
}

// finalize is a minimal scoring step: one point per correct guess
func finalize(g *models.Game, round *models.Round, teams []*models.Team) error {
	if round.Finalized {
		return models.ErrAlreadyFinalized
	}
	want, _ := round.Answer.Single()
	for _, guess := range round.Guesses {
		points := 0
		if got, _ := guess.Value.Single(); got == want {
			points = 1
		}
		guess.Points = &points
		for _, t := range teams {
			if t.ID == guess.TeamID {
				t.Score += points
			}
		}
	}
	round.Finalized = true
	return nil
}

func (s *RedisRepositoryTestSuite) TestFinalizeRoundSavesEverything() {
	g := s.newGame("ABC123")
	s.Require().NoError(s.repo.CreateGame(s.ctx, &CreateGameInput{Game: g}))
	s.createTeam(g.ID, "team-a", "A")
	s.createTeam(g.ID, "team-b", "B")
	s.Require().NoError(s.submit("ABC123", "team-a", "Alice", s.testNow))
	s.Require().NoError(s.submit("ABC123", "team-b", "Bob", s.testNow.Add(time.Second)))

	out, err := s.repo.FinalizeRound(s.ctx, &FinalizeRoundInput{GameCode: "ABC123", Score: finalize})
	s.Require().NoError(err)
	s.True(out.Game.Rounds[0].Finalized)
	s.Len(out.Teams, 2)

	stored, err := s.repo.GetGame(s.ctx, &GetGameInput{GameCode: "ABC123"})
	s.Require().NoError(err)
	s.True(stored.Rounds[0].Finalized)
	s.Require().Len(stored.Rounds[0].Guesses, 2)
	s.Equal(1, *stored.Rounds[0].Guesses[0].Points)
	s.Equal(0, *stored.Rounds[0].Guesses[1].Points)

	a, err := s.teamRepo.GetTeam(s.ctx, &teamRepo.GetTeamInput{TeamID: "team-a"})
	s.Require().NoError(err)
	s.Equal(1, a.Score)

	_, err = s.repo.FinalizeRound(s.ctx, &FinalizeRoundInput{GameCode: "ABC123", Score: finalize})
	s.ErrorIs(err, models.ErrAlreadyFinalized)

	a, err = s.teamRepo.GetTeam(s.ctx, &teamRepo.GetTeamInput{TeamID: "team-a"})
	s.Require().NoError(err)
	s.Equal(1, a.Score)
}

func (s *RedisRepositoryTestSuite) TestConcurrentFinalizeScoresOnce() {
	g := s.newGame("ABC123")
	s.Require().NoError(s.repo.CreateGame(s.ctx, &CreateGameInput{Game: g}))
	s.createTeam(g.ID, "team-a", "A")
	s.Require().NoError(s.submit("ABC123", "team-a", "Alice", s.testNow))

	var wg sync.WaitGroup
	var succeeded int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.repo.FinalizeRound(s.ctx, &FinalizeRoundInput{GameCode: "ABC123", Score: finalize})
			if err == nil {
				atomic.AddInt32(&succeeded, 1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), succeeded)
	a, err := s.teamRepo.GetTeam(s.ctx, &teamRepo.GetTeamInput{TeamID: "team-a"})
	s.Require().NoError(err)
	s.Equal(1, a.Score)
}

func (s *RedisRepositoryTestSuite) TestFinalizeRoundScoreErrorWritesNothing() {
	g := s.newGame("ABC123")
	s.Require().NoError(s.repo.CreateGame(s.ctx, &CreateGameInput{Game: g}))
	s.createTeam(g.ID, "team-a", "A")
	s.Require().NoError(s.submit("ABC123", "team-a", "Alice", s.testNow))

	boom := errors.New("boom")
	_, err := s.repo.FinalizeRound(s.ctx, &FinalizeRoundInput{
		GameCode: "ABC123",
		Score: func(g *models.Game, round *models.Round, teams []*models.Team) error {
			round.Finalized = true
			teams[0].Score = 100
			return boom
		},
	})
	s.ErrorIs(err, boom)

	stored, err := s.repo.GetGame(s.ctx, &GetGameInput{GameCode: "ABC123"})
	s.Require().NoError(err)
	s.False(stored.Rounds[0].Finalized)
	a, err := s.teamRepo.GetTeam(s.ctx, &teamRepo.GetTeamInput{TeamID: "team-a"})
	s.Require().NoError(err)
	s.Equal(0, a.Score)
}

func (s *RedisRepositoryTestSuite) TestListGamesByDatasetNewestFirst() {
	older := s.newGame("OLD111")
	newer := s.newGame("NEW222")
	newer.CreatedAt = s.testNow.Add(time.Hour)
	other := s.newGame("OTH333")
	other.DatasetID = "ds-2"

	for _, g := range []*models.Game{older, newer, other} {
		s.Require().NoError(s.repo.CreateGame(s.ctx, &CreateGameInput{Game: g}))
	}

	games, err := s.repo.ListGamesByDataset(s.ctx, &ListGamesByDatasetInput{DatasetID: "ds-1"})
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal("NEW222", games[0].Code)
	s.Equal("OLD111", games[1].Code)

	none, err := s.repo.ListGamesByDataset(s.ctx, &ListGamesByDatasetInput{DatasetID: "ds-9"})
	s.Require().NoError(err)
	s.Empty(none)
}
