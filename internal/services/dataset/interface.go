package dataset

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/jpcodeman/partygame/internal/services/dataset Service

import "context"

// Service manages the survey datasets games are built from
type Service interface {
	CreateDataset(ctx context.Context, input *CreateDatasetInput) (*CreateDatasetOutput, error)
	GetDataset(ctx context.Context, input *GetDatasetInput) (*GetDatasetOutput, error)
	ListDatasets(ctx context.Context, input *ListDatasetsInput) (*ListDatasetsOutput, error)
}
