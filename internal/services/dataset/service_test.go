package dataset

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/jpcodeman/partygame/internal/common/clock/mocks"
	uuidMocks "github.com/jpcodeman/partygame/internal/common/uuid/mocks"
	datasetRepo "github.com/jpcodeman/partygame/internal/repositories/dataset"
	datasetMocks "github.com/jpcodeman/partygame/internal/repositories/dataset/mocks"
)

type DatasetServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *mocks.MockClock
	mockUUID  *uuidMocks.MockUUID
	store     *datasetRepo.Store
	service   *service
	ctx       context.Context
	testTime  time.Time
}

func (s *DatasetServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.ctx = context.Background()
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	next := 0
	s.mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
		next++
		return fmt.Sprintf("id-%d", next)
	}).AnyTimes()

	store, err := datasetRepo.Open(filepath.Join(s.T().TempDir(), "datasets.db"))
	s.Require().NoError(err)
	s.store = store

	svc, err := New(&Config{
		DatasetRepo:   store,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *DatasetServiceTestSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
	s.mockCtrl.Finish()
}

func TestDatasetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DatasetServiceTestSuite))
}

func (s *DatasetServiceTestSuite) input() *CreateDatasetInput {
	return &CreateDatasetInput{
		Name:      " Office Party ",
		Questions: []string{"Favourite food?", "Dream job?"},
		People: []PersonInput{
			{Name: "Ana", Answers: []string{"Sushi", "Pilot"}},
			{Name: "Ben", Answers: []string{"", "Chef"}},
			{Name: "Cy", Answers: []string{"Tacos"}},
			{Name: "Di"},
		},
	}
}

func (s *DatasetServiceTestSuite) TestNew() {
	_, err := New(nil)
	s.Equal(ErrNilConfig, err)

	_, err = New(&Config{})
	s.Equal(ErrNilDatasetRepo, err)

	_, err = New(&Config{DatasetRepo: s.store})
	s.Equal(ErrNilClock, err)
}

func (s *DatasetServiceTestSuite) TestCreateAndGet() {
	created, err := s.service.CreateDataset(s.ctx, s.input())
	s.Require().NoError(err)
	s.Equal("Office Party", created.Dataset.Name)
	s.Equal(2, created.Dataset.QuestionCount)
	s.Equal(4, created.Dataset.PeopleCount)

	got, err := s.service.GetDataset(s.ctx, &GetDatasetInput{DatasetID: created.Dataset.ID})
	s.Require().NoError(err)
	ds := got.Dataset
	s.Require().Len(ds.Questions, 2)
	s.Require().Len(ds.People, 4)

	food, job := ds.Questions[0].ID, ds.Questions[1].ID
	s.Equal("Sushi", ds.People[0].AnswerTo(food))
	s.Equal("Pilot", ds.People[0].AnswerTo(job))
	s.Equal("", ds.People[1].AnswerTo(food))
	s.Equal("Chef", ds.People[1].AnswerTo(job))
	s.Equal("Tacos", ds.People[2].AnswerTo(food))
	s.Empty(ds.People[3].Answers)
}

func (s *DatasetServiceTestSuite) TestCreateValidation() {
	in := s.input()
	in.Name = "  "
	_, err := s.service.CreateDataset(s.ctx, in)
	s.Equal(ErrNameRequired, err)

	in = s.input()
	in.Questions[1] = ""
	_, err = s.service.CreateDataset(s.ctx, in)
	s.Equal(ErrQuestionTextRequired, err)

	in = s.input()
	in.People[1].Name = "ana"
	_, err = s.service.CreateDataset(s.ctx, in)
	s.True(errors.Is(err, ErrDuplicatePerson))

	in = s.input()
	in.People[2].Answers = []string{"a", "b", "c"}
	_, err = s.service.CreateDataset(s.ctx, in)
	s.True(errors.Is(err, ErrTooManyAnswers))

	in = s.input()
	in.People[3].Name = ""
	_, err = s.service.CreateDataset(s.ctx, in)
	s.Equal(ErrPersonNameRequired, err)
}

func (s *DatasetServiceTestSuite) TestNameTaken() {
	_, err := s.service.CreateDataset(s.ctx, s.input())
	s.Require().NoError(err)

	_, err = s.service.CreateDataset(s.ctx, s.input())
	s.Equal(ErrNameTaken, err)
}

func (s *DatasetServiceTestSuite) TestGetMissing() {
	_, err := s.service.GetDataset(s.ctx, &GetDatasetInput{DatasetID: "nope"})
	s.Equal(ErrDatasetNotFound, err)
}

func (s *DatasetServiceTestSuite) TestList() {
	out, err := s.service.ListDatasets(s.ctx, &ListDatasetsInput{})
	s.Require().NoError(err)
	s.NotNil(out.Datasets)
	s.Empty(out.Datasets)

	_, err = s.service.CreateDataset(s.ctx, s.input())
	s.Require().NoError(err)

	out, err = s.service.ListDatasets(s.ctx, &ListDatasetsInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Datasets, 1)
	s.Equal("Office Party", out.Datasets[0].Name)
}

func TestListSurfacesRepositoryErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := datasetMocks.NewMockRepository(ctrl)
	repo.EXPECT().ListDatasets(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk full"))

	svc, err := New(&Config{
		DatasetRepo:   repo,
		Clock:         mocks.NewMockClock(ctrl),
		UUIDGenerator: uuidMocks.NewMockUUID(ctrl),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ListDatasets(context.Background(), &ListDatasetsInput{}); err == nil {
		t.Fatal("expected an error")
	}
}
