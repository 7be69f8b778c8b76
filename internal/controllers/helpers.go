package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/carevantage/staffing-service/internal/constants"
	"github.com/carevantage/staffing-service/internal/middleware"
	"github.com/carevantage/staffing-service/internal/models"
	"github.com/carevantage/staffing-service/internal/utils"
)

var validate = validator.New()

// userIDFromContext pulls the authenticated subject out of the request
// context. Responds 401 itself when absent or malformed.
func userIDFromContext(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ctxUserID := r.Context().Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No userID in context", nil,
		)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(ctxUserID.(string))
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Malformed userID in context", nil, err,
		)
		return uuid.Nil, false
	}
	return id, true
}

// decodeAndValidate binds the JSON body into dst and runs struct
// validation. Responds 400 itself on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil,
		)
		return false
	}
	return true
}

// respondServiceError translates domain errors into the JSON envelope.
// Business-rule rejections carry structured detail so the client can
// render an actionable message, never a bare boolean.
func respondServiceError(w http.ResponseWriter, err error) {
	var conflictErr *utils.RowVersionConflictError
	if errors.As(err, &conflictErr) {
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeRowVersionConflict,
			constants.ErrMsgRowVersionConflictRefresh, conflictErr.Current, err,
		)
		return
	}

	var eligErr *utils.EligibilityError
	if errors.As(err, &eligErr) {
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeWorkerNotEligible,
			"Worker is missing required credentials", eligErr.Verdict, err,
		)
		return
	}

	switch {
	case errors.Is(err, utils.ErrNotFound), errors.Is(err, utils.ErrNoApplication):
		utils.RespondErrorWithCode(
			w, http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found", nil, err,
		)
	case errors.Is(err, models.ErrInvalidDateRange):
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidDateRange,
			"Expiry date must not precede issue date", nil, err,
		)
	case errors.Is(err, utils.ErrInvalidState):
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeInvalidState,
			"The shift is not in a state that allows this action", nil, err,
		)
	case errors.Is(err, utils.ErrRowVersionConflict):
		// Retry-exhausted optimistic updates that carry no snapshot of
		// the latest row still answer as a conflict, never a 500.
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeRowVersionConflict,
			constants.ErrMsgRowVersionConflictRefresh, nil, err,
		)
	case errors.Is(err, utils.ErrDuplicateApplication):
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeDuplicateApplication,
			"Worker already applied to this shift", nil, err,
		)
	case errors.Is(err, utils.ErrNotShiftOwner):
		utils.RespondErrorWithCode(
			w, http.StatusForbidden, utils.ErrCodeUnauthorized,
			"Shift does not belong to this agency", nil, err,
		)
	case errors.Is(err, utils.ErrInvalidPayload):
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
	case errors.Is(err, utils.ErrUpstreamTimeout):
		utils.RespondErrorWithCode(
			w, http.StatusGatewayTimeout, utils.ErrCodeUpstreamTimeout,
			"Persistence backend did not respond in time", nil, err,
		)
	default:
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal,
			"An unexpected error occurred", nil, err,
		)
	}
}
