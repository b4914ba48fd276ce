package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Round is one question instance within a level
type Round struct {
	// QuestionID references the dataset question
	QuestionID string

	// QuestionText is the question shown to players
	QuestionText string

	Level       Level
	RoundNumber int

	// DisplayAnswer is the answer text shown to players in levels 1 and 2
	DisplayAnswer string

	// Names are the selectable people in levels 1 and 2
	Names []string

	// Pairs are the displayed person/answer pairs in level 3
	Pairs []Match

	// Answer is the answer key: a single name or the correct pairs
	Answer GuessValue

	// Guesses holds at most one guess per team
	Guesses []*Guess

	// Finalized flips to true once and never reverts
	Finalized bool
}

// Options returns the displayed options in their level's shape
func (r *Round) Options() any {
	if r.Level.IsMatching() {
		return r.Pairs
	}
	return r.Names
}

// GuessFor returns the team's current guess, if any
func (r *Round) GuessFor(teamID string) *Guess {
	for _, g := range r.Guesses {
		if g.TeamID == teamID {
			return g
		}
	}
	return nil
}

// Validate checks that a guess has the round's shape. Level 3 guesses may
// cover a subset of the displayed people but may not name anyone else.
func (r *Round) Validate(value GuessValue) error {
	if r.Level.IsMatching() {
		matches, ok := value.Matches()
		if !ok {
			return fmt.Errorf("%w: expected matches", ErrInvalidGuess)
		}
		people := make(map[string]bool, len(r.Pairs))
		for _, p := range r.Pairs {
			people[p.Person] = true
		}
		seen := make(map[string]bool, len(matches))
		for _, m := range matches {
			if !people[m.Person] {
				return fmt.Errorf("%w: %q is not in this round", ErrInvalidGuess, m.Person)
			}
			if seen[m.Person] {
				return fmt.Errorf("%w: %q matched more than once", ErrInvalidGuess, m.Person)
			}
			seen[m.Person] = true
		}
		return nil
	}

	name, ok := value.Single()
	if !ok {
		return fmt.Errorf("%w: expected a single name", ErrInvalidGuess)
	}
	for _, option := range r.Names {
		if option == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not an option", ErrInvalidGuess, name)
}

// Submit records a team's guess, replacing any earlier guess from the
// same team. The new entry always goes to the end of the ledger.
func (r *Round) Submit(teamID string, value GuessValue, at time.Time) (*Guess, error) {
	if r.Finalized {
		return nil, ErrAlreadyFinalized
	}
	if err := r.Validate(value); err != nil {
		return nil, err
	}

	kept := r.Guesses[:0]
	for _, g := range r.Guesses {
		if g.TeamID != teamID {
			kept = append(kept, g)
		}
	}
	guess := &Guess{
		TeamID:    teamID,
		Value:     value,
		Timestamp: at,
	}
	r.Guesses = append(kept, guess)
	return guess, nil
}

type roundJSON struct {
	QuestionID    string            `json:"questionId"`
	QuestionText  string            `json:"questionText"`
	Level         Level             `json:"level"`
	RoundNumber   int               `json:"roundNumber"`
	DisplayAnswer string            `json:"displayAnswer,omitempty"`
	Options       json.RawMessage   `json:"options"`
	CorrectGuess  json.RawMessage   `json:"correctGuess"`
	Guesses       []json.RawMessage `json:"guesses"`
	Finalized     bool              `json:"finalized"`
}

// MarshalJSON implements json.Marshaler
func (r *Round) MarshalJSON() ([]byte, error) {
	options, err := json.Marshal(r.Options())
	if err != nil {
		return nil, err
	}
	answer, err := r.Answer.MarshalJSON()
	if err != nil {
		return nil, err
	}
	guesses := make([]json.RawMessage, 0, len(r.Guesses))
	for _, g := range r.Guesses {
		data, err := g.MarshalJSON()
		if err != nil {
			return nil, err
		}
		guesses = append(guesses, data)
	}
	return json.Marshal(roundJSON{
		QuestionID:    r.QuestionID,
		QuestionText:  r.QuestionText,
		Level:         r.Level,
		RoundNumber:   r.RoundNumber,
		DisplayAnswer: r.DisplayAnswer,
		Options:       options,
		CorrectGuess:  answer,
		Guesses:       guesses,
		Finalized:     r.Finalized,
	})
}

// UnmarshalJSON decodes options, answer key and guesses by the round's level
func (r *Round) UnmarshalJSON(data []byte) error {
	var raw roundJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !raw.Level.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, raw.Level)
	}

	out := Round{
		QuestionID:    raw.QuestionID,
		QuestionText:  raw.QuestionText,
		Level:         raw.Level,
		RoundNumber:   raw.RoundNumber,
		DisplayAnswer: raw.DisplayAnswer,
		Finalized:     raw.Finalized,
	}

	if len(raw.Options) > 0 {
		var err error
		if raw.Level.IsMatching() {
			err = json.Unmarshal(raw.Options, &out.Pairs)
		} else {
			err = json.Unmarshal(raw.Options, &out.Names)
		}
		if err != nil {
			return fmt.Errorf("failed to decode options: %w", err)
		}
	}

	if len(raw.CorrectGuess) > 0 {
		answer, err := DecodeGuessValue(raw.Level, raw.CorrectGuess)
		if err != nil {
			return fmt.Errorf("failed to decode answer key: %w", err)
		}
		out.Answer = answer
	}

	for _, g := range raw.Guesses {
		guess, err := DecodeGuess(raw.Level, g)
		if err != nil {
			return fmt.Errorf("failed to decode guess: %w", err)
		}
		out.Guesses = append(out.Guesses, guess)
	}

	*r = out
	return nil
}
