package models

// Level is one of the three game phases
type Level int

const (
	// LevelOne rounds show four names and one answer
	LevelOne Level = 1

	// LevelTwo rounds show every name and one answer
	LevelTwo Level = 2

	// LevelThree rounds ask teams to match people to answers
	LevelThree Level = 3
)

// Levels lists the levels in play order
var Levels = []Level{LevelOne, LevelTwo, LevelThree}

// RoundsPerLevel is the generation quota for each level
var RoundsPerLevel = map[Level]int{
	LevelOne:   10,
	LevelTwo:   5,
	LevelThree: 2,
}

// TotalRounds is the length of a fully generated game
const TotalRounds = 17

// Valid reports whether l is a playable level
func (l Level) Valid() bool {
	return l >= LevelOne && l <= LevelThree
}

// Quota returns the number of rounds generated for the level
func (l Level) Quota() int {
	return RoundsPerLevel[l]
}

// IsMatching reports whether guesses in this level are person/answer pairs
func (l Level) IsMatching() bool {
	return l == LevelThree
}

// FlatIndex maps a (level, round) position onto the game's round sequence.
// Rounds are 1-based within their level.
func FlatIndex(level Level, round int) int {
	switch level {
	case LevelOne:
		return round - 1
	case LevelTwo:
		return 10 + (round - 1)
	default:
		return 15 + (round - 1)
	}
}
