package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 6, 14, 20, 0, 0, 0, time.UTC)

func singleRound() *Round {
	return &Round{
		QuestionID:    "q1",
		QuestionText:  "Favourite food?",
		Level:         LevelOne,
		RoundNumber:   1,
		DisplayAnswer: "Pizza",
		Names:         []string{"Alice", "Bob", "Carol", "Dan"},
		Answer:        SingleGuess("Alice"),
	}
}

func matchingRound() *Round {
	pairs := []Match{{Person: "Alice", Answer: "Pizza"}, {Person: "Bob", Answer: "Sushi"}}
	return &Round{
		QuestionID:   "q2",
		QuestionText: "Favourite food?",
		Level:        LevelThree,
		RoundNumber:  1,
		Pairs:        pairs,
		Answer:       MatchesGuess(pairs),
	}
}

func TestSubmitReplacesEarlierGuessFromSameTeam(t *testing.T) {
	r := singleRound()

	_, err := r.Submit("team-a", SingleGuess("Bob"), testTime)
	require.NoError(t, err)
	_, err = r.Submit("team-b", SingleGuess("Carol"), testTime.Add(time.Second))
	require.NoError(t, err)
	_, err = r.Submit("team-a", SingleGuess("Alice"), testTime.Add(2*time.Second))
	require.NoError(t, err)

	require.Len(t, r.Guesses, 2)
	assert.Equal(t, "team-b", r.Guesses[0].TeamID)
	assert.Equal(t, "team-a", r.Guesses[1].TeamID)

	name, ok := r.GuessFor("team-a").Value.Single()
	assert.True(t, ok)
	assert.Equal(t, "Alice", name)
	assert.Equal(t, testTime.Add(2*time.Second), r.GuessFor("team-a").Timestamp)
}

func TestSubmitRejectsFinalizedRound(t *testing.T) {
	r := singleRound()
	r.Finalized = true

	_, err := r.Submit("team-a", SingleGuess("Alice"), testTime)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)
	assert.Empty(t, r.Guesses)
}

func TestSubmitValidatesShape(t *testing.T) {
	tests := []struct {
		name  string
		round *Round
		value GuessValue
		ok    bool
	}{
		{"single option", singleRound(), SingleGuess("Dan"), true},
		{"single unknown name", singleRound(), SingleGuess("Zed"), false},
		{"single given matches", singleRound(), MatchesGuess([]Match{{Person: "Alice"}}), false},
		{"matches full", matchingRound(), MatchesGuess([]Match{{"Alice", "Sushi"}, {"Bob", "Pizza"}}), true},
		{"matches partial", matchingRound(), MatchesGuess([]Match{{"Alice", "Pizza"}}), true},
		{"matches unknown person", matchingRound(), MatchesGuess([]Match{{"Zed", "Pizza"}}), false},
		{"matches duplicate person", matchingRound(), MatchesGuess([]Match{{"Alice", "Pizza"}, {"Alice", "Sushi"}}), false},
		{"matches given single", matchingRound(), SingleGuess("Alice"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.round.Submit("team-a", tt.value, testTime)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidGuess)
			}
		})
	}
}

func TestRoundJSONKeepsLevelShapes(t *testing.T) {
	points := 11
	r := matchingRound()
	r.Finalized = true
	r.Guesses = []*Guess{{
		TeamID:    "team-a",
		Value:     MatchesGuess(r.Pairs),
		Timestamp: testTime,
		Points:    &points,
	}}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded Round
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, r.Pairs, decoded.Pairs)
	assert.Nil(t, decoded.Names)

	key, ok := decoded.Answer.Matches()
	require.True(t, ok)
	assert.Equal(t, r.Pairs, key)

	require.Len(t, decoded.Guesses, 1)
	assert.True(t, decoded.Guesses[0].Value.IsMatches())
	assert.Equal(t, 11, *decoded.Guesses[0].Points)
	assert.True(t, decoded.Finalized)

	single := singleRound()
	data, err = json.Marshal(single)
	require.NoError(t, err)
	var decodedSingle Round
	require.NoError(t, json.Unmarshal(data, &decodedSingle))
	name, ok := decodedSingle.Answer.Single()
	require.True(t, ok)
	assert.Equal(t, "Alice", name)
	assert.Equal(t, single.Names, decodedSingle.Names)
	assert.Equal(t, "Pizza", decodedSingle.DisplayAnswer)
}

func TestDecodeGuessValueUsesLevel(t *testing.T) {
	v, err := DecodeGuessValue(LevelTwo, json.RawMessage(`"Alice"`))
	require.NoError(t, err)
	name, ok := v.Single()
	assert.True(t, ok)
	assert.Equal(t, "Alice", name)

	_, err = DecodeGuessValue(LevelTwo, json.RawMessage(`[{"person":"Alice","answer":"Pizza"}]`))
	assert.ErrorIs(t, err, ErrInvalidGuess)

	v, err = DecodeGuessValue(LevelThree, json.RawMessage(`[{"person":"Alice","answer":"Pizza"}]`))
	require.NoError(t, err)
	matches, ok := v.Matches()
	assert.True(t, ok)
	assert.Equal(t, []Match{{Person: "Alice", Answer: "Pizza"}}, matches)

	_, err = DecodeGuessValue(LevelThree, json.RawMessage(`"Alice"`))
	assert.ErrorIs(t, err, ErrInvalidGuess)

	_, err = DecodeGuessValue(Level(4), json.RawMessage(`"Alice"`))
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestAnswerToTrims(t *testing.T) {
	p := Person{Name: "Alice", Answers: []Answer{{QuestionID: "q1", Text: "  Pizza "}, {QuestionID: "q2", Text: "   "}}}
	assert.Equal(t, "Pizza", p.AnswerTo("q1"))
	assert.Equal(t, "", p.AnswerTo("q2"))
	assert.Equal(t, "", p.AnswerTo("q3"))
}
