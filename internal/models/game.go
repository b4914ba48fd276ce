package models

import (
	"time"
)

// Game is a trivia session generated once from a dataset
type Game struct {
	// ID is the unique identifier for the game
	ID string `json:"id"`

	// Code is the short join code shared with teams
	Code string `json:"gameCode"`

	// DatasetID and DatasetName snapshot the source dataset
	DatasetID   string `json:"datasetId"`
	DatasetName string `json:"datasetName"`

	// CurrentLevel and CurrentRound point at the round in play
	CurrentLevel Level `json:"currentLevel"`
	CurrentRound int   `json:"currentRound"`

	// Rounds is fixed at creation
	Rounds []*Round `json:"rounds"`

	// HostKey is the advisory controller lock, empty when unlocked
	HostKey string `json:"hostKey,omitempty"`

	// CreatedAt is when the game was created
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the game was last updated
	UpdatedAt time.Time `json:"updatedAt"`
}

// RoundCount returns how many rounds were generated for a level
func (g *Game) RoundCount(level Level) int {
	count := 0
	for _, r := range g.Rounds {
		if r.Level == level {
			count++
		}
	}
	return count
}

// Round returns the round at a (level, round) position
func (g *Game) Round(level Level, round int) (*Round, error) {
	idx := FlatIndex(level, round)
	if idx >= 0 && idx < len(g.Rounds) {
		if r := g.Rounds[idx]; r.Level == level && r.RoundNumber == round {
			return r, nil
		}
	}
	// Partially generated games are shorter than the full sequence.
	for _, r := range g.Rounds {
		if r.Level == level && r.RoundNumber == round {
			return r, nil
		}
	}
	return nil, ErrRoundNotFound
}

// Current returns the round the pointer is on
func (g *Game) Current() (*Round, error) {
	return g.Round(g.CurrentLevel, g.CurrentRound)
}

// Start places the pointer on the first generated round
func (g *Game) Start() {
	g.CurrentLevel = LevelOne
	g.CurrentRound = 1
	if len(g.Rounds) > 0 {
		g.CurrentLevel = g.Rounds[0].Level
		g.CurrentRound = g.Rounds[0].RoundNumber
	}
}

// Next returns the position after the current one. The current round must
// be finalized; a game on its last round is complete.
func (g *Game) Next() (Level, int, error) {
	current, err := g.Current()
	if err != nil {
		return 0, 0, err
	}
	if !current.Finalized {
		return 0, 0, ErrRoundNotFinalized
	}

	if g.CurrentRound < g.RoundCount(g.CurrentLevel) {
		return g.CurrentLevel, g.CurrentRound + 1, nil
	}
	for level := g.CurrentLevel + 1; level <= LevelThree; level++ {
		if g.RoundCount(level) > 0 {
			return level, 1, nil
		}
	}
	return 0, 0, ErrGameComplete
}

// Advance moves the pointer to the next round
func (g *Game) Advance(now time.Time) error {
	level, round, err := g.Next()
	if err != nil {
		return err
	}
	g.CurrentLevel = level
	g.CurrentRound = round
	g.UpdatedAt = now
	return nil
}

// IsComplete reports whether the final round has been finalized
func (g *Game) IsComplete() bool {
	if len(g.Rounds) == 0 {
		return false
	}
	return g.Rounds[len(g.Rounds)-1].Finalized
}

// IsHosted reports whether a controller holds the host lock
func (g *Game) IsHosted() bool {
	return g.HostKey != ""
}
