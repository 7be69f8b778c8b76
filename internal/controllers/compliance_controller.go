package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/carevantage/staffing-service/internal/services"
	"github.com/carevantage/staffing-service/internal/utils"
)

type ComplianceController struct {
	complianceService *services.ComplianceService
	bookingGate       *services.BookingGate
}

func NewComplianceController(cs *services.ComplianceService, gate *services.BookingGate) *ComplianceController {
	return &ComplianceController{complianceService: cs, bookingGate: gate}
}

// ----------------------------------------------------------------
// GET /api/v1/compliance
// ----------------------------------------------------------------
func (c *ComplianceController) GetOwnVerdictHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}

	verdict, err := c.complianceService.GetVerdict(r.Context(), workerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, verdict)
}

// ----------------------------------------------------------------
// GET /api/v1/agency/workers/{workerId}/compliance
//
// Cross-entity read: an agency may check any worker's verdict without
// write access to that worker's credentials.
// ----------------------------------------------------------------
func (c *ComplianceController) GetWorkerVerdictHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := userIDFromContext(w, r); !ok {
		return
	}

	workerID, err := uuid.Parse(mux.Vars(r)["workerId"])
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid worker ID", nil, err,
		)
		return
	}

	verdict, svcErr := c.complianceService.GetVerdict(r.Context(), workerID)
	if svcErr != nil {
		respondServiceError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, verdict)
}

// ----------------------------------------------------------------
// GET /api/v1/shifts/can-book?shift_id=...
// ----------------------------------------------------------------
func (c *ComplianceController) CanBookHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}

	shiftID, err := uuid.Parse(r.URL.Query().Get("shift_id"))
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "shift_id query param required", nil, err,
		)
		return
	}

	decision, svcErr := c.bookingGate.CanBook(r.Context(), workerID, shiftID)
	if svcErr != nil {
		respondServiceError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, decision)
}
