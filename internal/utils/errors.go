package utils

import (
	"errors"
	"net/http"

	"github.com/carevantage/staffing-service/internal/models"
)

/*
Sentinel errors for the compliance/booking domain logic.
The controller can do: if errors.Is(err, ErrXYZ) { ... }
*/
var (
	ErrNotFound             = errors.New("not_found")
	ErrInvalidState         = errors.New("invalid_state")
	ErrDuplicateApplication = errors.New("duplicate_application")
	ErrWorkerNotEligible    = errors.New("worker_not_eligible")
	ErrNotShiftOwner        = errors.New("not_shift_owner")
	ErrNoApplication        = errors.New("no_application")
	ErrInvalidPayload       = errors.New("invalid_payload")
	ErrNoRowsUpdated        = errors.New("no_rows_updated")

	// For concurrency conflicts on versioned rows
	ErrRowVersionConflict = errors.New("row_version_conflict")

	// The persistence collaborator did not respond in time. Surfaced
	// as its own kind; a timeout is never folded into "not eligible".
	ErrUpstreamTimeout = errors.New("upstream_timeout")
)

/*
RowVersionConflictError is returned when an optimistic update lost the
per-shift race. It includes the latest Shift so the controller can return
it to the client if desired.
*/
type RowVersionConflictError struct {
	Current *models.Shift
}

func (e *RowVersionConflictError) Error() string {
	return "row_version_conflict"
}

func (e *RowVersionConflictError) Unwrap() error {
	return ErrRowVersionConflict
}

func NewRowVersionConflictError(current *models.Shift) error {
	return &RowVersionConflictError{Current: current}
}

/*
EligibilityError is returned when an approval is attempted against a
worker whose compliance verdict is incomplete. It carries the verdict so
the rejection is actionable, never a bare boolean.
*/
type EligibilityError struct {
	Verdict *models.ComplianceVerdict
}

func (e *EligibilityError) Error() string {
	return "worker_not_eligible"
}

func (e *EligibilityError) Unwrap() error {
	return ErrWorkerNotEligible
}

func NewEligibilityError(verdict *models.ComplianceVerdict) error {
	return &EligibilityError{Verdict: verdict}
}

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
