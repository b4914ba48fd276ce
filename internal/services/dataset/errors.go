package dataset

// DatasetError is a custom error type for dataset errors
type DatasetError string

// Error implements the error interface
func (e DatasetError) Error() string {
	return string(e)
}

const (
	ErrNameRequired         DatasetError = "dataset name is required"
	ErrNameTaken            DatasetError = "dataset name already exists"
	ErrDatasetNotFound      DatasetError = "dataset not found"
	ErrQuestionTextRequired DatasetError = "question text is required"
	ErrPersonNameRequired   DatasetError = "person name is required"
	ErrDuplicatePerson      DatasetError = "person names must be unique"
	ErrTooManyAnswers       DatasetError = "a person has more answers than there are questions"
	ErrNilConfig            DatasetError = "config cannot be nil"
	ErrNilDatasetRepo       DatasetError = "dataset repository cannot be nil"
	ErrNilClock             DatasetError = "clock cannot be nil"
	ErrNilUUIDGenerator     DatasetError = "UUID generator cannot be nil"
)
