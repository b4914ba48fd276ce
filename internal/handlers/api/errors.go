package api

import (
	"errors"
	"net/http"

	"github.com/jpcodeman/partygame/internal/auth"
	"github.com/jpcodeman/partygame/internal/models"
	gameRepo "github.com/jpcodeman/partygame/internal/repositories/game"
	"github.com/jpcodeman/partygame/internal/rounds"
	datasetService "github.com/jpcodeman/partygame/internal/services/dataset"
	gameService "github.com/jpcodeman/partygame/internal/services/game"
	hostService "github.com/jpcodeman/partygame/internal/services/host"
)

// Error kinds returned in the "error" field of a failed response
const (
	KindNotFound          = "not_found"
	KindInsufficientData  = "insufficient_data"
	KindNoRoundsGenerated = "no_rounds_generated"
	KindStateError        = "state_error"
	KindLockError         = "lock_error"
	KindAuthError         = "auth_error"
	KindBadRequest        = "bad_request"
	KindInternal          = "internal"
)

// ServerError is a custom error type for API construction errors
type ServerError string

// Error implements the error interface
func (e ServerError) Error() string {
	return string(e)
}

const (
	ErrNilConfig         ServerError = "config cannot be nil"
	ErrNilGameService    ServerError = "game service cannot be nil"
	ErrNilHostService    ServerError = "host service cannot be nil"
	ErrNilDatasetService ServerError = "dataset service cannot be nil"
	ErrNilAuth           ServerError = "authenticator cannot be nil"
)

// errBadBody is reported for request bodies that are not valid JSON
var errBadBody = errors.New("request body is not valid JSON")

// apiError is the body of every failed response
type apiError struct {
	Kind    string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type classification struct {
	target error
	status int
	kind   string
	code   string
}

var classifications = []classification{
	{gameService.ErrGameNotFound, http.StatusNotFound, KindNotFound, "GAME_NOT_FOUND"},
	{hostService.ErrGameNotFound, http.StatusNotFound, KindNotFound, "GAME_NOT_FOUND"},
	{gameService.ErrTeamNotFound, http.StatusNotFound, KindNotFound, "TEAM_NOT_FOUND"},
	{gameService.ErrDatasetNotFound, http.StatusNotFound, KindNotFound, "DATASET_NOT_FOUND"},
	{datasetService.ErrDatasetNotFound, http.StatusNotFound, KindNotFound, "DATASET_NOT_FOUND"},
	{models.ErrRoundNotFound, http.StatusNotFound, KindNotFound, "ROUND_NOT_FOUND"},

	{rounds.ErrInsufficientData, http.StatusUnprocessableEntity, KindInsufficientData, "INSUFFICIENT_DATA"},
	{rounds.ErrNoRoundsGenerated, http.StatusUnprocessableEntity, KindNoRoundsGenerated, "NO_ROUNDS_GENERATED"},

	{models.ErrAlreadyFinalized, http.StatusConflict, KindStateError, "ALREADY_FINALIZED"},
	{models.ErrRoundNotFinalized, http.StatusConflict, KindStateError, "ROUND_NOT_FINALIZED"},
	{models.ErrGameComplete, http.StatusConflict, KindStateError, "GAME_COMPLETE"},
	{gameRepo.ErrConflict, http.StatusConflict, KindStateError, "CONCURRENT_UPDATE"},
	{datasetService.ErrNameTaken, http.StatusConflict, KindStateError, "DATASET_NAME_TAKEN"},

	{hostService.ErrAlreadyHosted, http.StatusConflict, KindLockError, "ALREADY_HOSTED"},
	{hostService.ErrInvalidKey, http.StatusForbidden, KindLockError, "INVALID_KEY"},
	{hostService.ErrHostKeyRequired, http.StatusForbidden, KindLockError, "INVALID_KEY"},

	{auth.ErrUnauthorized, http.StatusUnauthorized, KindAuthError, "UNAUTHORIZED"},
	{auth.ErrInvalidPassword, http.StatusUnauthorized, KindAuthError, "INVALID_PASSWORD"},

	{models.ErrInvalidGuess, http.StatusBadRequest, KindBadRequest, "INVALID_GUESS"},
	{models.ErrInvalidLevel, http.StatusBadRequest, KindBadRequest, "INVALID_LEVEL"},
	{gameService.ErrTeamNameRequired, http.StatusBadRequest, KindBadRequest, "TEAM_NAME_REQUIRED"},
	{gameService.ErrDatasetIDRequired, http.StatusBadRequest, KindBadRequest, "DATASET_ID_REQUIRED"},
	{datasetService.ErrNameRequired, http.StatusBadRequest, KindBadRequest, "DATASET_NAME_REQUIRED"},
	{datasetService.ErrQuestionTextRequired, http.StatusBadRequest, KindBadRequest, "QUESTION_TEXT_REQUIRED"},
	{datasetService.ErrPersonNameRequired, http.StatusBadRequest, KindBadRequest, "PERSON_NAME_REQUIRED"},
	{datasetService.ErrDuplicatePerson, http.StatusBadRequest, KindBadRequest, "DUPLICATE_PERSON"},
	{datasetService.ErrTooManyAnswers, http.StatusBadRequest, KindBadRequest, "TOO_MANY_ANSWERS"},
	{errBadBody, http.StatusBadRequest, KindBadRequest, "BAD_BODY"},
}

// classify maps an error to its HTTP status and response body. Anything
// unrecognized is an internal error and its message is not exposed.
func classify(err error) (int, apiError) {
	for _, c := range classifications {
		if errors.Is(err, c.target) {
			return c.status, apiError{Kind: c.kind, Code: c.code, Message: err.Error()}
		}
	}
	return http.StatusInternalServerError, apiError{
		Kind:    KindInternal,
		Code:    "INTERNAL",
		Message: "internal server error",
	}
}
