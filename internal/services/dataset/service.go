package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jpcodeman/partygame/internal/common/clock"
	"github.com/jpcodeman/partygame/internal/common/uuid"
	"github.com/jpcodeman/partygame/internal/models"
	datasetRepo "github.com/jpcodeman/partygame/internal/repositories/dataset"
)

type service struct {
	repo  datasetRepo.Repository
	clock clock.Clock
	uuid  uuid.UUID
}

// New creates a new dataset service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.DatasetRepo == nil {
		return nil, ErrNilDatasetRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		repo:  cfg.DatasetRepo,
		clock: cfg.Clock,
		uuid:  cfg.UUIDGenerator,
	}, nil
}

// CreateDataset assigns question IDs and turns each person's positional
// answers into a question ID mapping before storing the dataset
func (s *service) CreateDataset(ctx context.Context, input *CreateDatasetInput) (*CreateDatasetOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	ds := &models.Dataset{
		ID:        s.uuid.NewUUID(),
		Name:      name,
		Questions: make([]models.Question, 0, len(input.Questions)),
		People:    make([]models.Person, 0, len(input.People)),
		CreatedAt: s.clock.Now(),
	}

	for _, text := range input.Questions {
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, ErrQuestionTextRequired
		}
		ds.Questions = append(ds.Questions, models.Question{
			ID:   s.uuid.NewUUID(),
			Text: text,
		})
	}

	seen := make(map[string]bool, len(input.People))
	for _, p := range input.People {
		personName := strings.TrimSpace(p.Name)
		if personName == "" {
			return nil, ErrPersonNameRequired
		}
		if seen[strings.ToLower(personName)] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePerson, personName)
		}
		seen[strings.ToLower(personName)] = true

		if len(p.Answers) > len(ds.Questions) {
			return nil, fmt.Errorf("%w: %s", ErrTooManyAnswers, personName)
		}

		person := models.Person{Name: personName}
		for i, answer := range p.Answers {
			if strings.TrimSpace(answer) == "" {
				continue
			}
			person.Answers = append(person.Answers, models.Answer{
				QuestionID: ds.Questions[i].ID,
				Text:       answer,
			})
		}
		ds.People = append(ds.People, person)
	}

	if err := s.repo.CreateDataset(ctx, &datasetRepo.CreateDatasetInput{Dataset: ds}); err != nil {
		if errors.Is(err, datasetRepo.ErrDatasetNameTaken) {
			return nil, ErrNameTaken
		}
		log.Error().Err(err).Str("dataset", name).Msg("failed to store dataset")
		return nil, fmt.Errorf("failed to create dataset: %w", err)
	}

	log.Info().
		Str("dataset_id", ds.ID).
		Int("questions", len(ds.Questions)).
		Int("people", len(ds.People)).
		Msg("dataset created")

	return &CreateDatasetOutput{
		Dataset: &models.DatasetSummary{
			ID:            ds.ID,
			Name:          ds.Name,
			QuestionCount: len(ds.Questions),
			PeopleCount:   len(ds.People),
			CreatedAt:     ds.CreatedAt,
		},
	}, nil
}

func (s *service) GetDataset(ctx context.Context, input *GetDatasetInput) (*GetDatasetOutput, error) {
	ds, err := s.repo.GetDataset(ctx, &datasetRepo.GetDatasetInput{DatasetID: input.DatasetID})
	if err != nil {
		if errors.Is(err, datasetRepo.ErrDatasetNotFound) {
			return nil, ErrDatasetNotFound
		}
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}
	return &GetDatasetOutput{Dataset: ds}, nil
}

func (s *service) ListDatasets(ctx context.Context, _ *ListDatasetsInput) (*ListDatasetsOutput, error) {
	summaries, err := s.repo.ListDatasets(ctx, &datasetRepo.ListDatasetsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	if summaries == nil {
		summaries = []*models.DatasetSummary{}
	}
	return &ListDatasetsOutput{Datasets: summaries}, nil
}
