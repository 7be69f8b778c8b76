package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/carevantage/staffing-service/internal/models"
)

type PostShiftRequest struct {
	Title     string    `json:"title" validate:"required,max=200"`
	Location  string    `json:"location" validate:"required,max=300"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	Rate      float64   `json:"rate" validate:"required,gt=0"`
}

type ShiftActionRequest struct {
	ShiftID uuid.UUID `json:"shift_id" validate:"required"`
}

type DecideApplicationRequest struct {
	ShiftID  uuid.UUID `json:"shift_id" validate:"required"`
	WorkerID uuid.UUID `json:"worker_id" validate:"required"`
	Decision string    `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
}

type ApplicationDTO struct {
	WorkerID  uuid.UUID `json:"worker_id"`
	AppliedAt time.Time `json:"applied_at"`
	Decision  string    `json:"decision"`
}

type ShiftDTO struct {
	ID               uuid.UUID        `json:"id"`
	AgencyID         uuid.UUID        `json:"agency_id"`
	Title            string           `json:"title"`
	Location         string           `json:"location"`
	StartTime        time.Time        `json:"start_time"`
	EndTime          time.Time        `json:"end_time"`
	Rate             float64          `json:"rate"`
	Status           string           `json:"status"`
	AssignedWorkerID *uuid.UUID       `json:"assigned_worker_id,omitempty"`
	Applications     []ApplicationDTO `json:"applications,omitempty"`
}

// NewShiftDTO builds the full view including applications; agency-facing.
func NewShiftDTO(sh *models.Shift) ShiftDTO {
	apps := make([]ApplicationDTO, 0, len(sh.Applications))
	for _, a := range sh.Applications {
		apps = append(apps, ApplicationDTO{
			WorkerID:  a.WorkerID,
			AppliedAt: a.AppliedAt,
			Decision:  string(a.Decision),
		})
	}
	return ShiftDTO{
		ID:               sh.ID,
		AgencyID:         sh.AgencyID,
		Title:            sh.Title,
		Location:         sh.Location,
		StartTime:        sh.StartTime,
		EndTime:          sh.EndTime,
		Rate:             sh.Rate,
		Status:           string(sh.Status),
		AssignedWorkerID: sh.AssignedWorkerID,
		Applications:     apps,
	}
}

// NewShiftSummaryDTO is the worker-facing view: other workers'
// applications are not exposed.
func NewShiftSummaryDTO(sh *models.Shift) ShiftDTO {
	dto := NewShiftDTO(sh)
	dto.Applications = nil
	return dto
}

type ListShiftsResponse struct {
	Results []ShiftDTO `json:"results"`
	Total   int        `json:"total"`
}
