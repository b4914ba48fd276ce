package dataset

import (
	"github.com/jpcodeman/partygame/internal/common/clock"
	"github.com/jpcodeman/partygame/internal/common/uuid"
	"github.com/jpcodeman/partygame/internal/models"
	datasetRepo "github.com/jpcodeman/partygame/internal/repositories/dataset"
)

// Config holds configuration for the dataset service
type Config struct {
	DatasetRepo   datasetRepo.Repository
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// PersonInput is one respondent. Answers line up with the dataset's
// questions by position; missing trailing answers are treated as blank.
type PersonInput struct {
	Name    string   `json:"name"`
	Answers []string `json:"answers"`
}

// CreateDatasetInput contains a survey to import
type CreateDatasetInput struct {
	Name      string        `json:"name"`
	Questions []string      `json:"questions"`
	People    []PersonInput `json:"people"`
}

// CreateDatasetOutput contains the stored dataset's summary
type CreateDatasetOutput struct {
	Dataset *models.DatasetSummary `json:"dataset"`
}

type GetDatasetInput struct {
	DatasetID string
}

type GetDatasetOutput struct {
	Dataset *models.Dataset `json:"dataset"`
}

type ListDatasetsInput struct{}

type ListDatasetsOutput struct {
	Datasets []*models.DatasetSummary `json:"datasets"`
}
