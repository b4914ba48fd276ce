package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Match pairs a person with an answer attributed to them
type Match struct {
	Person string `json:"person"`
	Answer string `json:"answer"`
}

// GuessValue holds either a single person name (levels 1 and 2) or a list
// of person/answer matches (level 3). The zero value is an empty single.
type GuessValue struct {
	name    string
	matches []Match
	isMatch bool
}

// SingleGuess returns a guess naming one person
func SingleGuess(name string) GuessValue {
	return GuessValue{name: name}
}

// MatchesGuess returns a guess made of person/answer pairs
func MatchesGuess(matches []Match) GuessValue {
	cp := make([]Match, len(matches))
	copy(cp, matches)
	return GuessValue{matches: cp, isMatch: true}
}

// Single returns the guessed name when the value is a single guess
func (g GuessValue) Single() (string, bool) {
	if g.isMatch {
		return "", false
	}
	return g.name, true
}

// Matches returns the guessed pairs when the value is a matching guess
func (g GuessValue) Matches() ([]Match, bool) {
	if !g.isMatch {
		return nil, false
	}
	return g.matches, true
}

// IsMatches reports whether the value holds pairs
func (g GuessValue) IsMatches() bool {
	return g.isMatch
}

// String renders the value for logs and chat messages
func (g GuessValue) String() string {
	if !g.isMatch {
		return g.name
	}
	parts := make([]string, 0, len(g.matches))
	for _, m := range g.matches {
		parts = append(parts, fmt.Sprintf("%s: %s", m.Person, m.Answer))
	}
	return strings.Join(parts, ", ")
}

// MarshalJSON writes a string for single guesses and an array for matches
func (g GuessValue) MarshalJSON() ([]byte, error) {
	if g.isMatch {
		if g.matches == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(g.matches)
	}
	return json.Marshal(g.name)
}

// DecodeGuessValue decodes raw JSON into the shape the level expects.
// The level decides the shape; the JSON type is never used to guess it.
func DecodeGuessValue(level Level, raw json.RawMessage) (GuessValue, error) {
	if !level.Valid() {
		return GuessValue{}, ErrInvalidLevel
	}
	if level.IsMatching() {
		var matches []Match
		if err := json.Unmarshal(raw, &matches); err != nil {
			return GuessValue{}, fmt.Errorf("%w: level %d expects a list of matches", ErrInvalidGuess, level)
		}
		return MatchesGuess(matches), nil
	}

	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return GuessValue{}, fmt.Errorf("%w: level %d expects a person name", ErrInvalidGuess, level)
	}
	return SingleGuess(name), nil
}

// Guess is one team's submission for a round
type Guess struct {
	// TeamID identifies the submitting team
	TeamID string

	// Value is the guessed name or matches
	Value GuessValue

	// Timestamp is when the guess was recorded
	Timestamp time.Time

	// Points is set when the round is finalized
	Points *int
}

type guessJSON struct {
	TeamID    string          `json:"teamId"`
	Guess     json.RawMessage `json:"guess"`
	Timestamp time.Time       `json:"timestamp"`
	Points    *int            `json:"points,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (g *Guess) MarshalJSON() ([]byte, error) {
	value, err := g.Value.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(guessJSON{
		TeamID:    g.TeamID,
		Guess:     value,
		Timestamp: g.Timestamp,
		Points:    g.Points,
	})
}

// DecodeGuess decodes a stored guess for a round of the given level
func DecodeGuess(level Level, data []byte) (*Guess, error) {
	var raw guessJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	value, err := DecodeGuessValue(level, raw.Guess)
	if err != nil {
		return nil, err
	}
	return &Guess{
		TeamID:    raw.TeamID,
		Value:     value,
		Timestamp: raw.Timestamp,
		Points:    raw.Points,
	}, nil
}
