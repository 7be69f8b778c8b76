package models

import (
	"time"

	"github.com/google/uuid"
)

type ShiftStatusType string

const (
	ShiftStatusOpen      ShiftStatusType = "OPEN"
	ShiftStatusAssigned  ShiftStatusType = "ASSIGNED"
	ShiftStatusCompleted ShiftStatusType = "COMPLETED"
	ShiftStatusCancelled ShiftStatusType = "CANCELLED"
)

// IsTerminal reports whether no further transition is permitted.
func (s ShiftStatusType) IsTerminal() bool {
	return s == ShiftStatusCompleted || s == ShiftStatusCancelled
}

type ApplicationDecisionType string

const (
	ApplicationDecisionPending  ApplicationDecisionType = "PENDING"
	ApplicationDecisionApproved ApplicationDecisionType = "APPROVED"
	ApplicationDecisionRejected ApplicationDecisionType = "REJECTED"
)

// ShiftApplication is one worker's application on a shift. Applications
// live inside the shift row (jsonb column) so that approving one and
// rejecting the rest commits atomically with the status transition.
type ShiftApplication struct {
	WorkerID  uuid.UUID               `json:"worker_id"`
	AppliedAt time.Time               `json:"applied_at"`
	Decision  ApplicationDecisionType `json:"decision"`
}

type Shift struct {
	Versioned

	ID       uuid.UUID `json:"id"`
	AgencyID uuid.UUID `json:"agency_id"`
	Title    string    `json:"title"`
	Location string    `json:"location"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Rate      float64   `json:"rate"`

	Status ShiftStatusType `json:"status"`

	// Set iff status is ASSIGNED or COMPLETED. Kept after cancellation
	// of an assigned shift as a historical record.
	AssignedWorkerID *uuid.UUID `json:"assigned_worker_id,omitempty"`

	Applications []ShiftApplication `json:"applications"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Shift) GetID() string {
	return s.ID.String()
}

// LatestApplicationIndex returns the index of the worker's most recent
// application, or -1. Applications append in order, so a re-application
// after rejection supersedes the earlier entry; decisions must never
// consult a superseded one.
func (s *Shift) LatestApplicationIndex(workerID uuid.UUID) int {
	for i := len(s.Applications) - 1; i >= 0; i-- {
		if s.Applications[i].WorkerID == workerID {
			return i
		}
	}
	return -1
}

// LatestApplicationFor returns the worker's most recent application, or nil.
func (s *Shift) LatestApplicationFor(workerID uuid.UUID) *ShiftApplication {
	if i := s.LatestApplicationIndex(workerID); i >= 0 {
		return &s.Applications[i]
	}
	return nil
}
