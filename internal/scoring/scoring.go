// Package scoring awards points for a round's guesses.
package scoring

import (
	"sort"
	"time"

	"github.com/jpcodeman/partygame/internal/models"
)

const (
	// MatchPoints is awarded per correct pair in a matching round
	MatchPoints = 2

	// PerfectMatchBonus is added when every pair in the key is matched
	PerfectMatchBonus = 5

	unknownTeam = "Unknown"
)

// firstCorrect and otherCorrect are the points for levels 1 and 2
var (
	firstCorrect = map[models.Level]int{models.LevelOne: 2, models.LevelTwo: 4}
	otherCorrect = map[models.Level]int{models.LevelOne: 1, models.LevelTwo: 2}
)

// Result is one team's scored guess
type Result struct {
	TeamID    string            `json:"teamId"`
	TeamName  string            `json:"teamName"`
	Guess     models.GuessValue `json:"guess"`
	IsCorrect bool              `json:"isCorrect"`
	Points    int               `json:"points"`
	Timestamp time.Time         `json:"timestamp"`
}

// Outcome is the scoring of a round along with its answer key
type Outcome struct {
	CorrectGuess models.GuessValue `json:"correctGuess"`
	Results      []*Result         `json:"results"`
}

// Finalize scores every guess in the round, annotates each guess with its
// points, adds the points to the matching team's score and marks the round
// finalized. Guesses are ordered by timestamp first.
func Finalize(round *models.Round, teams []*models.Team) (*Outcome, error) {
	if round.Finalized {
		return nil, models.ErrAlreadyFinalized
	}

	sortByTime(round.Guesses)
	outcome := &Outcome{
		CorrectGuess: round.Answer,
		Results:      tally(round, round.Guesses, teams, true),
	}
	round.Finalized = true
	return outcome, nil
}

// Summarize rebuilds the results of an already finalized round without
// changing it. Points stored on the guesses win over recomputation.
func Summarize(round *models.Round, teams []*models.Team) *Outcome {
	guesses := make([]*models.Guess, len(round.Guesses))
	copy(guesses, round.Guesses)
	sortByTime(guesses)

	return &Outcome{
		CorrectGuess: round.Answer,
		Results:      tally(round, guesses, teams, false),
	}
}

func tally(round *models.Round, guesses []*models.Guess, teams []*models.Team, award bool) []*Result {
	byID := make(map[string]*models.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}

	results := make([]*Result, 0, len(guesses))
	firstFound := false
	for _, g := range guesses {
		correct, points := score(round, g.Value, !firstFound)
		if correct && !round.Level.IsMatching() {
			firstFound = true
		}

		team, known := byID[g.TeamID]
		if award {
			p := points
			g.Points = &p
			if known {
				team.Score += points
			}
		} else if g.Points != nil {
			points = *g.Points
		}

		name := unknownTeam
		if known {
			name = team.Name
		}
		results = append(results, &Result{
			TeamID:    g.TeamID,
			TeamName:  name,
			Guess:     g.Value,
			IsCorrect: correct,
			Points:    points,
			Timestamp: g.Timestamp,
		})
	}
	return results
}

func sortByTime(guesses []*models.Guess) {
	sort.SliceStable(guesses, func(i, j int) bool {
		return guesses[i].Timestamp.Before(guesses[j].Timestamp)
	})
}

// score returns whether the guess is correct and what it earns. first is
// true while no earlier guess in the round has been correct.
func score(round *models.Round, value models.GuessValue, first bool) (bool, int) {
	if round.Level.IsMatching() {
		count := MatchCount(round.Answer, value)
		points := count * MatchPoints
		if key, _ := round.Answer.Matches(); count > 0 && count == len(key) {
			points += PerfectMatchBonus
		}
		return count > 0, points
	}

	want, _ := round.Answer.Single()
	got, ok := value.Single()
	if !ok || got != want {
		return false, 0
	}
	if first {
		return true, firstCorrect[round.Level]
	}
	return true, otherCorrect[round.Level]
}

// MatchCount counts the guessed pairs that appear verbatim in the key
func MatchCount(key, value models.GuessValue) int {
	pairs, _ := key.Matches()
	guessed, _ := value.Matches()

	count := 0
	for _, g := range guessed {
		for _, k := range pairs {
			if k.Person == g.Person && k.Answer == g.Answer {
				count++
				break
			}
		}
	}
	return count
}
