package rounds

// GenerationError is a custom error type for round generation failures
type GenerationError string

// Error implements the error interface
func (e GenerationError) Error() string {
	return string(e)
}

const (
	ErrInsufficientData  GenerationError = "dataset needs at least 1 question and 4 people"
	ErrNoRoundsGenerated GenerationError = "could not generate any rounds from the dataset"
	ErrNilConfig         GenerationError = "config cannot be nil"
	ErrNilRandom         GenerationError = "random source cannot be nil"
)
