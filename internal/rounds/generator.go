package rounds

import (
	"strings"

	"github.com/jpcodeman/partygame/internal/models"
	"github.com/jpcodeman/partygame/internal/random"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_generator.go github.com/jpcodeman/partygame/internal/rounds Generator

// Generator builds the fixed round sequence for a game
type Generator interface {
	Generate(dataset *models.Dataset) (*Result, error)
}

type generator struct {
	random random.Source
}

// New creates a new round generator
func New(cfg *Config) (*generator, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Random == nil {
		return nil, ErrNilRandom
	}
	return &generator{random: cfg.Random}, nil
}

// Generate produces up to 10 level 1, 5 level 2 and 2 level 3 rounds.
// Questions are shuffled once and consumed in a cycle shared by all levels.
func (g *generator) Generate(dataset *models.Dataset) (*Result, error) {
	if dataset == nil || len(dataset.Questions) < MinQuestions || len(dataset.People) < MinPeople {
		return nil, ErrInsufficientData
	}

	c := &cursor{questions: g.shuffledQuestions(dataset.Questions)}
	result := &Result{Shortfall: make(map[models.Level]int)}

	for _, level := range []models.Level{models.LevelOne, models.LevelTwo} {
		built := g.uniqueAnswerRounds(dataset, level, c)
		result.Rounds = append(result.Rounds, built...)
		result.Shortfall[level] = level.Quota() - len(built)
	}

	built := g.matchingRounds(dataset, c)
	result.Rounds = append(result.Rounds, built...)
	result.Shortfall[models.LevelThree] = models.LevelThree.Quota() - len(built)

	if len(result.Rounds) == 0 {
		return nil, ErrNoRoundsGenerated
	}
	return result, nil
}

// cursor walks the shuffled question list, wrapping at the end
type cursor struct {
	questions []models.Question
	pos       int
}

func (c *cursor) next() models.Question {
	q := c.questions[c.pos%len(c.questions)]
	c.pos++
	return q
}

func (g *generator) shuffledQuestions(questions []models.Question) []models.Question {
	out := make([]models.Question, len(questions))
	copy(out, questions)
	g.random.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// uniqueAnswerRounds builds level 1 or level 2 rounds. Each round's answer
// was given by exactly one person and is not reused within the level.
func (g *generator) uniqueAnswerRounds(dataset *models.Dataset, level models.Level, c *cursor) []*models.Round {
	quota := level.Quota()
	used := make(map[string]bool)
	var out []*models.Round

	for attempt := 0; attempt < attemptLimits[level] && len(out) < quota; attempt++ {
		q := c.next()
		person, answer, ok := g.pickUniqueAnswer(dataset.People, q.ID, used)
		if !ok {
			continue
		}
		used[normalize(answer)] = true

		var options []string
		if level == models.LevelOne {
			options = g.pickOptions(dataset.People, person.Name)
		} else {
			options = names(dataset.People)
		}

		out = append(out, &models.Round{
			QuestionID:    q.ID,
			QuestionText:  q.Text,
			Level:         level,
			RoundNumber:   len(out) + 1,
			DisplayAnswer: answer,
			Names:         options,
			Answer:        models.SingleGuess(person.Name),
		})
	}
	return out
}

// pickUniqueAnswer chooses a random person whose answer to the question
// nobody else gave and whose answer has not been used yet
func (g *generator) pickUniqueAnswer(people []models.Person, questionID string, used map[string]bool) (*models.Person, string, bool) {
	counts := make(map[string]int)
	for i := range people {
		if answer := people[i].AnswerTo(questionID); answer != "" {
			counts[normalize(answer)]++
		}
	}

	var eligible []int
	for i := range people {
		answer := people[i].AnswerTo(questionID)
		if answer == "" {
			continue
		}
		norm := normalize(answer)
		if counts[norm] == 1 && !used[norm] {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return nil, "", false
	}

	p := &people[eligible[g.random.Intn(len(eligible))]]
	return p, p.AnswerTo(questionID), true
}

// pickOptions returns the correct name plus three other distinct names, shuffled
func (g *generator) pickOptions(people []models.Person, correct string) []string {
	var others []string
	for _, name := range names(people) {
		if name != correct {
			others = append(others, name)
		}
	}
	g.random.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })
	if len(others) > levelOneOptions-1 {
		others = others[:levelOneOptions-1]
	}

	options := append(others, correct)
	g.random.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return options
}

// matchingRounds builds the level 3 rounds, each from its own question.
// A question nobody answered yields no round.
func (g *generator) matchingRounds(dataset *models.Dataset, c *cursor) []*models.Round {
	var out []*models.Round
	for _, limit := range matchingCaps {
		q := c.next()

		var pairs []models.Match
		for i := range dataset.People {
			if answer := dataset.People[i].AnswerTo(q.ID); answer != "" {
				pairs = append(pairs, models.Match{Person: dataset.People[i].Name, Answer: answer})
			}
		}
		if len(pairs) == 0 {
			continue
		}

		g.random.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })
		if len(pairs) > limit {
			pairs = pairs[:limit]
		}

		out = append(out, &models.Round{
			QuestionID:   q.ID,
			QuestionText: q.Text,
			Level:        models.LevelThree,
			RoundNumber:  len(out) + 1,
			Pairs:        pairs,
			Answer:       models.MatchesGuess(pairs),
		})
	}
	return out
}

// names returns the distinct person names in dataset order
func names(people []models.Person) []string {
	seen := make(map[string]bool, len(people))
	out := make([]string, 0, len(people))
	for _, p := range people {
		if !seen[p.Name] {
			seen[p.Name] = true
			out = append(out, p.Name)
		}
	}
	return out
}

func normalize(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
