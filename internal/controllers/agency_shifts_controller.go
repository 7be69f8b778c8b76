package controllers

import (
	"net/http"

	"github.com/carevantage/staffing-service/internal/dtos"
	"github.com/carevantage/staffing-service/internal/models"
	"github.com/carevantage/staffing-service/internal/services"
	"github.com/carevantage/staffing-service/internal/utils"
)

// AgencyShiftsController serves the agency-facing shift surface: posting,
// application decisions, completion and cancellation.
type AgencyShiftsController struct {
	shiftService *services.ShiftService
}

func NewAgencyShiftsController(ss *services.ShiftService) *AgencyShiftsController {
	return &AgencyShiftsController{shiftService: ss}
}

// ----------------------------------------------------------------
// POST /api/v1/agency/shifts
// ----------------------------------------------------------------
func (c *AgencyShiftsController) PostShiftHandler(w http.ResponseWriter, r *http.Request) {
	agencyID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.PostShiftRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sh, err := c.shiftService.PostShift(r.Context(), agencyID, services.PostShiftParams{
		Title:     req.Title,
		Location:  req.Location,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Rate:      req.Rate,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.NewShiftDTO(sh))
}

// ----------------------------------------------------------------
// GET /api/v1/agency/shifts
// ----------------------------------------------------------------
func (c *AgencyShiftsController) ListAgencyShiftsHandler(w http.ResponseWriter, r *http.Request) {
	agencyID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}

	shifts, err := c.shiftService.ListAgencyShifts(r.Context(), agencyID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list agency shifts")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toListResponse(shifts, dtos.NewShiftDTO))
}

// ----------------------------------------------------------------
// POST /api/v1/agency/shifts/decide
// ----------------------------------------------------------------
func (c *AgencyShiftsController) DecideApplicationHandler(w http.ResponseWriter, r *http.Request) {
	agencyID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.DecideApplicationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sh, err := c.shiftService.DecideApplication(
		r.Context(),
		agencyID,
		req.ShiftID,
		req.WorkerID,
		models.ApplicationDecisionType(req.Decision),
	)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewShiftDTO(sh))
}

// ----------------------------------------------------------------
// POST /api/v1/agency/shifts/complete
// ----------------------------------------------------------------
func (c *AgencyShiftsController) CompleteShiftHandler(w http.ResponseWriter, r *http.Request) {
	agencyID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.ShiftActionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sh, err := c.shiftService.CompleteShift(r.Context(), agencyID, req.ShiftID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewShiftDTO(sh))
}

// ----------------------------------------------------------------
// POST /api/v1/agency/shifts/cancel
// ----------------------------------------------------------------
func (c *AgencyShiftsController) CancelShiftHandler(w http.ResponseWriter, r *http.Request) {
	agencyID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.ShiftActionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sh, err := c.shiftService.CancelShift(r.Context(), agencyID, req.ShiftID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewShiftDTO(sh))
}
