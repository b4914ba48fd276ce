package dataset

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/jpcodeman/partygame/internal/repositories/dataset Repository

import (
	"context"

	"github.com/jpcodeman/partygame/internal/models"
)

// Repository defines the interface for dataset persistence
type Repository interface {
	// CreateDataset stores a dataset with its questions, people and answers
	CreateDataset(ctx context.Context, input *CreateDatasetInput) error

	// GetDataset retrieves a dataset by ID
	GetDataset(ctx context.Context, input *GetDatasetInput) (*models.Dataset, error)

	// ListDatasets retrieves summaries of every dataset, newest first
	ListDatasets(ctx context.Context, input *ListDatasetsInput) ([]*models.DatasetSummary, error)
}

type CreateDatasetInput struct {
	Dataset *models.Dataset
}

type GetDatasetInput struct {
	DatasetID string
}

type ListDatasetsInput struct{}
