package models

import (
	"strings"
	"time"
)

// Question is one survey question with a stable identifier
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Answer is a person's free-text answer to a question
type Answer struct {
	QuestionID string `json:"questionId"`
	Text       string `json:"text"`
}

// Person is a survey respondent
type Person struct {
	Name    string   `json:"name"`
	Answers []Answer `json:"answers"`
}

// AnswerTo returns the person's trimmed answer to a question, or "" if
// they gave none
func (p *Person) AnswerTo(questionID string) string {
	for _, a := range p.Answers {
		if a.QuestionID == questionID {
			return strings.TrimSpace(a.Text)
		}
	}
	return ""
}

// Dataset is the survey that games are generated from
type Dataset struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
	People    []Person   `json:"people"`
	CreatedAt time.Time  `json:"createdAt"`
}

// DatasetSummary describes a dataset without its contents
type DatasetSummary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	QuestionCount int       `json:"questionCount"`
	PeopleCount   int       `json:"peopleCount"`
	CreatedAt     time.Time `json:"createdAt"`
}
