package rounds

import (
	"github.com/jpcodeman/partygame/internal/models"
	"github.com/jpcodeman/partygame/internal/random"
)

const (
	// MinQuestions is the smallest usable dataset question count
	MinQuestions = 1

	// MinPeople is the smallest usable dataset respondent count
	MinPeople = 4

	// levelOneOptions is how many names a level 1 round shows
	levelOneOptions = 4
)

// attemptLimits bounds how many questions are tried per level
var attemptLimits = map[models.Level]int{
	models.LevelOne: 50,
	models.LevelTwo: 30,
}

// matchingCaps is the maximum number of pairs in each level 3 round
var matchingCaps = []int{5, 10}

// Config holds configuration for the round generator
type Config struct {
	Random random.Source
}

// Result is the outcome of generating a game's rounds
type Result struct {
	// Rounds in play order
	Rounds []*models.Round

	// Shortfall counts the rounds missing from each level's quota
	Shortfall map[models.Level]int
}

// Partial reports whether fewer rounds than the full quota were produced
func (r *Result) Partial() bool {
	for _, missing := range r.Shortfall {
		if missing > 0 {
			return true
		}
	}
	return false
}
