package controllers

import (
	"net/http"

	"github.com/carevantage/staffing-service/internal/dtos"
	"github.com/carevantage/staffing-service/internal/models"
	"github.com/carevantage/staffing-service/internal/services"
	"github.com/carevantage/staffing-service/internal/utils"
)

// ShiftsController serves the worker-facing shift surface.
type ShiftsController struct {
	shiftService *services.ShiftService
}

func NewShiftsController(ss *services.ShiftService) *ShiftsController {
	return &ShiftsController{shiftService: ss}
}

// ----------------------------------------------------------------
// GET /api/v1/shifts/open
// ----------------------------------------------------------------
func (c *ShiftsController) ListOpenShiftsHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := userIDFromContext(w, r); !ok {
		return
	}

	shifts, err := c.shiftService.ListOpenShifts(r.Context())
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list open shifts")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toListResponse(shifts, dtos.NewShiftSummaryDTO))
}

// ----------------------------------------------------------------
// GET /api/v1/shifts/my
// ----------------------------------------------------------------
func (c *ShiftsController) ListMyShiftsHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}

	shifts, err := c.shiftService.ListWorkerShifts(r.Context(), workerID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list worker shifts")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toListResponse(shifts, dtos.NewShiftSummaryDTO))
}

// ----------------------------------------------------------------
// POST /api/v1/shifts/apply
// ----------------------------------------------------------------
func (c *ShiftsController) ApplyToShiftHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.ShiftActionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sh, err := c.shiftService.ApplyToShift(r.Context(), req.ShiftID, workerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewShiftSummaryDTO(sh))
}

func toListResponse(shifts []*models.Shift, build func(*models.Shift) dtos.ShiftDTO) dtos.ListShiftsResponse {
	results := make([]dtos.ShiftDTO, 0, len(shifts))
	for _, sh := range shifts {
		results = append(results, build(sh))
	}
	return dtos.ListShiftsResponse{Results: results, Total: len(results)}
}
