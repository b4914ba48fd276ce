package scoring

import (
	"testing"
	"time"

	"github.com/jpcodeman/partygame/internal/models"
	"github.com/stretchr/testify/suite"
)

type ScoringTestSuite struct {
	suite.Suite
	t0    time.Time
	teams []*models.Team
}

func (s *ScoringTestSuite) SetupTest() {
	s.t0 = time.Date(2025, 6, 14, 20, 0, 0, 0, time.UTC)
	s.teams = []*models.Team{
		{ID: "team-a", Name: "Team A"},
		{ID: "team-b", Name: "Team B"},
		{ID: "team-c", Name: "Team C"},
	}
}

func TestScoringTestSuite(t *testing.T) {
	suite.Run(t, new(ScoringTestSuite))
}

func (s *ScoringTestSuite) singleRound(level models.Level) *models.Round {
	return &models.Round{
		Level:       level,
		RoundNumber: 1,
		Names:       []string{"Alice", "Bob", "Carol", "Dan"},
		Answer:      models.SingleGuess("Alice"),
	}
}

func (s *ScoringTestSuite) guess(team string, value models.GuessValue, offset time.Duration) *models.Guess {
	return &models.Guess{TeamID: team, Value: value, Timestamp: s.t0.Add(offset)}
}

func (s *ScoringTestSuite) TestLevelOneFirstCorrectBonus() {
	round := s.singleRound(models.LevelOne)
	// stored out of order; finalize sorts by timestamp
	round.Guesses = []*models.Guess{
		s.guess("team-b", models.SingleGuess("Alice"), 2*time.Second),
		s.guess("team-c", models.SingleGuess("Bob"), 3*time.Second),
		s.guess("team-a", models.SingleGuess("Alice"), time.Second),
	}

	outcome, err := Finalize(round, s.teams)
	s.Require().NoError(err)
	s.True(round.Finalized)

	name, _ := outcome.CorrectGuess.Single()
	s.Equal("Alice", name)

	s.Require().Len(outcome.Results, 3)
	s.Equal("Team A", outcome.Results[0].TeamName)
	s.True(outcome.Results[0].IsCorrect)
	s.Equal(2, outcome.Results[0].Points)
	s.Equal("Team B", outcome.Results[1].TeamName)
	s.True(outcome.Results[1].IsCorrect)
	s.Equal(1, outcome.Results[1].Points)
	s.Equal("Team C", outcome.Results[2].TeamName)
	s.False(outcome.Results[2].IsCorrect)
	s.Equal(0, outcome.Results[2].Points)

	s.Equal(2, s.teams[0].Score)
	s.Equal(1, s.teams[1].Score)
	s.Equal(0, s.teams[2].Score)

	s.Equal(2, *round.GuessFor("team-a").Points)
	s.Equal(0, *round.GuessFor("team-c").Points)
}

func (s *ScoringTestSuite) TestLevelTwoPoints() {
	round := s.singleRound(models.LevelTwo)
	round.Guesses = []*models.Guess{
		s.guess("team-c", models.SingleGuess("Dan"), time.Second),
		s.guess("team-b", models.SingleGuess("Alice"), 2*time.Second),
		s.guess("team-a", models.SingleGuess("Alice"), 3*time.Second),
	}

	outcome, err := Finalize(round, s.teams)
	s.Require().NoError(err)
	s.Equal(0, outcome.Results[0].Points)
	s.Equal(4, outcome.Results[1].Points)
	s.Equal(2, outcome.Results[2].Points)
	s.Equal(2, s.teams[0].Score)
	s.Equal(4, s.teams[1].Score)
}

func (s *ScoringTestSuite) TestNameComparisonIsCaseSensitive() {
	round := s.singleRound(models.LevelOne)
	round.Guesses = []*models.Guess{s.guess("team-a", models.SingleGuess("alice"), 0)}

	outcome, err := Finalize(round, s.teams)
	s.Require().NoError(err)
	s.False(outcome.Results[0].IsCorrect)
	s.Equal(0, s.teams[0].Score)
}

func (s *ScoringTestSuite) TestLevelThreeMatches() {
	key := []models.Match{{Person: "p1", Answer: "a1"}, {Person: "p2", Answer: "a2"}, {Person: "p3", Answer: "a3"}}
	round := &models.Round{
		Level:       models.LevelThree,
		RoundNumber: 1,
		Pairs:       key,
		Answer:      models.MatchesGuess(key),
	}
	round.Guesses = []*models.Guess{
		s.guess("team-a", models.MatchesGuess(key), time.Second),
		s.guess("team-b", models.MatchesGuess([]models.Match{
			{Person: "p1", Answer: "a1"},
			{Person: "p2", Answer: "a3"},
			{Person: "p3", Answer: "a2"},
		}), 2*time.Second),
		s.guess("team-c", models.MatchesGuess([]models.Match{
			{Person: "p1", Answer: "a2"},
			{Person: "p2", Answer: "a1"},
		}), 3*time.Second),
	}

	outcome, err := Finalize(round, s.teams)
	s.Require().NoError(err)

	s.Equal(11, outcome.Results[0].Points)
	s.True(outcome.Results[0].IsCorrect)
	s.Equal(2, outcome.Results[1].Points)
	s.True(outcome.Results[1].IsCorrect)
	s.Equal(0, outcome.Results[2].Points)
	s.False(outcome.Results[2].IsCorrect)

	s.Equal(11, s.teams[0].Score)
	s.Equal(2, s.teams[1].Score)
}

func (s *ScoringTestSuite) TestFinalizeTwiceIsRejected() {
	round := s.singleRound(models.LevelOne)
	round.Guesses = []*models.Guess{s.guess("team-a", models.SingleGuess("Alice"), 0)}

	_, err := Finalize(round, s.teams)
	s.Require().NoError(err)

	_, err = Finalize(round, s.teams)
	s.ErrorIs(err, models.ErrAlreadyFinalized)
	s.Equal(2, s.teams[0].Score)
}

func (s *ScoringTestSuite) TestUnknownTeam() {
	round := s.singleRound(models.LevelOne)
	round.Guesses = []*models.Guess{s.guess("gone", models.SingleGuess("Alice"), 0)}

	outcome, err := Finalize(round, s.teams)
	s.Require().NoError(err)
	s.Equal("Unknown", outcome.Results[0].TeamName)
	s.Equal(2, outcome.Results[0].Points)
}

func (s *ScoringTestSuite) TestSummarizePrefersStoredPoints() {
	round := s.singleRound(models.LevelOne)
	round.Finalized = true
	stored := 7
	g := s.guess("team-a", models.SingleGuess("Alice"), 0)
	g.Points = &stored
	round.Guesses = []*models.Guess{
		s.guess("team-b", models.SingleGuess("Alice"), time.Second),
		g,
	}

	outcome := Summarize(round, s.teams)
	s.Require().Len(outcome.Results, 2)
	s.Equal("team-a", outcome.Results[0].TeamID)
	s.Equal(7, outcome.Results[0].Points)
	s.Equal("team-b", outcome.Results[1].TeamID)
	s.Equal(1, outcome.Results[1].Points)
	s.True(outcome.Results[1].IsCorrect)

	// Summarize leaves the round and teams untouched
	s.Equal("team-b", round.Guesses[0].TeamID)
	s.Nil(round.Guesses[0].Points)
	s.Equal(0, s.teams[0].Score)
}
