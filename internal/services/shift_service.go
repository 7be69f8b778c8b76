package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/carevantage/staffing-service/internal/constants"
	"github.com/carevantage/staffing-service/internal/models"
	"github.com/carevantage/staffing-service/internal/repositories"
	"github.com/carevantage/staffing-service/internal/utils"
)

// ShiftService owns the shift lifecycle: OPEN → ASSIGNED → COMPLETED,
// with OPEN/ASSIGNED → CANCELLED. COMPLETED and CANCELLED are terminal.
type ShiftService struct {
	shiftRepo  repositories.ShiftRepository
	workerRepo repositories.WorkerRepository
	gate       *BookingGate
	notifier   *NotificationService
}

func NewShiftService(
	shiftRepo repositories.ShiftRepository,
	workerRepo repositories.WorkerRepository,
	gate *BookingGate,
	notifier *NotificationService,
) *ShiftService {
	return &ShiftService{
		shiftRepo:  shiftRepo,
		workerRepo: workerRepo,
		gate:       gate,
		notifier:   notifier,
	}
}

// PostShiftParams is the validated input for a new posting.
type PostShiftParams struct {
	Title     string
	Location  string
	StartTime time.Time
	EndTime   time.Time
	Rate      float64
}

func (s *ShiftService) PostShift(ctx context.Context, agencyID uuid.UUID, p PostShiftParams) (*models.Shift, error) {
	if !p.EndTime.After(p.StartTime) || p.Rate <= 0 || p.Title == "" {
		return nil, utils.ErrInvalidPayload
	}

	now := time.Now().UTC()
	sh := &models.Shift{
		ID:           uuid.New(),
		AgencyID:     agencyID,
		Title:        p.Title,
		Location:     p.Location,
		StartTime:    p.StartTime,
		EndTime:      p.EndTime,
		Rate:         p.Rate,
		Status:       models.ShiftStatusOpen,
		Applications: []models.ShiftApplication{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	sh.RowVersion = 1

	if err := s.shiftRepo.Create(ctx, sh); err != nil {
		return nil, err
	}
	return sh, nil
}

// ApplyToShift appends a pending application. Fails with ErrInvalidState
// on a non-open shift and ErrDuplicateApplication if the worker already
// has a non-rejected application. Runs under the optimistic-lock loop so
// the guards hold against concurrent applicants.
func (s *ShiftService) ApplyToShift(ctx context.Context, shiftID, workerID uuid.UUID) (*models.Shift, error) {
	err := s.shiftRepo.UpdateWithRetry(ctx, shiftID, func(sh *models.Shift) error {
		if sh.Status != models.ShiftStatusOpen {
			return utils.ErrInvalidState
		}
		if app := sh.LatestApplicationFor(workerID); app != nil && app.Decision != models.ApplicationDecisionRejected {
			return utils.ErrDuplicateApplication
		}
		sh.Applications = append(sh.Applications, models.ShiftApplication{
			WorkerID:  workerID,
			AppliedAt: time.Now().UTC(),
			Decision:  models.ApplicationDecisionPending,
		})
		return nil
	})
	if err != nil {
		return nil, mapNoRows(err)
	}
	return s.shiftRepo.GetByID(ctx, shiftID)
}

// DecideApplication approves or rejects one worker's application.
//
// Approval is the one place a real concurrency contract applies: the
// eligibility gate is re-evaluated at decision time, and the
// approve-one/reject-rest/assign/transition writes commit atomically
// under the per-shift lock. A lost race is retried once with a fresh
// read before surfacing RowVersionConflictError.
func (s *ShiftService) DecideApplication(
	ctx context.Context,
	agencyID, shiftID, workerID uuid.UUID,
	decision models.ApplicationDecisionType,
) (*models.Shift, error) {
	switch decision {
	case models.ApplicationDecisionApproved:
		return s.approveApplication(ctx, agencyID, shiftID, workerID)
	case models.ApplicationDecisionRejected:
		return s.rejectApplication(ctx, agencyID, shiftID, workerID)
	default:
		return nil, utils.ErrInvalidPayload
	}
}

func (s *ShiftService) approveApplication(
	ctx context.Context,
	agencyID, shiftID, workerID uuid.UUID,
) (*models.Shift, error) {
	var lastErr error

	for attempt := 0; attempt < constants.ApprovalAttempts; attempt++ {
		sh, err := s.shiftRepo.GetByID(ctx, shiftID)
		if err != nil {
			return nil, err
		}
		if sh == nil {
			return nil, utils.ErrNotFound
		}
		if sh.AgencyID != agencyID {
			return nil, utils.ErrNotShiftOwner
		}
		if sh.Status != models.ShiftStatusOpen {
			return sh, utils.ErrInvalidState
		}
		target := sh.LatestApplicationIndex(workerID)
		if target < 0 {
			return nil, utils.ErrNoApplication
		}
		if sh.Applications[target].Decision != models.ApplicationDecisionPending {
			return sh, utils.ErrInvalidState
		}

		// Never trusted from an earlier check: time has passed and a
		// credential may have expired since the worker last looked.
		decision, err := s.gate.EvaluateShift(ctx, workerID, sh)
		if err != nil {
			return nil, err
		}
		if !decision.Eligible {
			return nil, utils.NewEligibilityError(decision.Verdict)
		}

		// Approve by index, not worker ID: the worker may also hold a
		// superseded rejected entry, and at most one application per
		// shift may end up approved.
		newApps := make([]models.ShiftApplication, len(sh.Applications))
		copy(newApps, sh.Applications)
		for i := range newApps {
			switch {
			case i == target:
				newApps[i].Decision = models.ApplicationDecisionApproved
			case newApps[i].Decision == models.ApplicationDecisionPending:
				newApps[i].Decision = models.ApplicationDecisionRejected
			}
		}

		updated, err := s.shiftRepo.ApproveApplicationAtomic(ctx, shiftID, workerID, sh.RowVersion, newApps)
		if err == nil {
			s.notifyDecisionOutcome(ctx, updated, workerID)
			return updated, nil
		}
		if errors.Is(err, utils.ErrRowVersionConflict) {
			// re-read and re-evaluate once, then surface
			lastErr = err
			continue
		}
		if errors.Is(err, utils.ErrInvalidState) {
			return updated, err
		}
		return nil, err
	}

	latest, _ := s.shiftRepo.GetByID(ctx, shiftID)
	if latest != nil {
		return nil, utils.NewRowVersionConflictError(latest)
	}
	return nil, lastErr
}

func (s *ShiftService) rejectApplication(
	ctx context.Context,
	agencyID, shiftID, workerID uuid.UUID,
) (*models.Shift, error) {
	err := s.shiftRepo.UpdateWithRetry(ctx, shiftID, func(sh *models.Shift) error {
		if sh.AgencyID != agencyID {
			return utils.ErrNotShiftOwner
		}
		app := sh.LatestApplicationFor(workerID)
		if app == nil {
			return utils.ErrNoApplication
		}
		app.Decision = models.ApplicationDecisionRejected
		return nil
	})
	if err != nil {
		return nil, mapNoRows(err)
	}
	updated, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if updated != nil {
		if w, werr := s.workerRepo.GetByID(ctx, workerID); werr == nil && w != nil {
			s.notifier.NotifyApplicationRejected(w, updated)
		}
	}
	return updated, nil
}

// CompleteShift moves ASSIGNED → COMPLETED.
func (s *ShiftService) CompleteShift(ctx context.Context, agencyID, shiftID uuid.UUID) (*models.Shift, error) {
	sh, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, utils.ErrNotFound
	}
	if sh.AgencyID != agencyID {
		return nil, utils.ErrNotShiftOwner
	}
	if sh.Status != models.ShiftStatusAssigned {
		return sh, utils.ErrInvalidState
	}

	updated, err := s.shiftRepo.UpdateStatusAtomic(ctx, shiftID, sh.RowVersion, models.ShiftStatusAssigned, models.ShiftStatusCompleted)
	if err != nil {
		if errors.Is(err, utils.ErrRowVersionConflict) {
			latest, _ := s.shiftRepo.GetByID(ctx, shiftID)
			if latest != nil {
				return nil, utils.NewRowVersionConflictError(latest)
			}
		}
		return nil, err
	}
	return updated, nil
}

// CancelShift moves any non-terminal shift to CANCELLED. The assignee,
// if any, stays on the record for audit.
func (s *ShiftService) CancelShift(ctx context.Context, agencyID, shiftID uuid.UUID) (*models.Shift, error) {
	err := s.shiftRepo.UpdateWithRetry(ctx, shiftID, func(sh *models.Shift) error {
		if sh.AgencyID != agencyID {
			return utils.ErrNotShiftOwner
		}
		if sh.Status.IsTerminal() {
			return utils.ErrInvalidState
		}
		sh.Status = models.ShiftStatusCancelled
		return nil
	})
	if err != nil {
		return nil, mapNoRows(err)
	}
	return s.shiftRepo.GetByID(ctx, shiftID)
}

func (s *ShiftService) GetShift(ctx context.Context, shiftID uuid.UUID) (*models.Shift, error) {
	sh, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, utils.ErrNotFound
	}
	return sh, nil
}

func (s *ShiftService) ListOpenShifts(ctx context.Context) ([]*models.Shift, error) {
	return s.shiftRepo.ListOpen(ctx)
}

func (s *ShiftService) ListWorkerShifts(ctx context.Context, workerID uuid.UUID) ([]*models.Shift, error) {
	return s.shiftRepo.ListByAssignedWorker(ctx, workerID)
}

func (s *ShiftService) ListAgencyShifts(ctx context.Context, agencyID uuid.UUID) ([]*models.Shift, error) {
	return s.shiftRepo.ListByAgency(ctx, agencyID)
}

// notifyDecisionOutcome tells the new assignee and the auto-rejected
// applicants. Best effort; delivery failures only log.
func (s *ShiftService) notifyDecisionOutcome(ctx context.Context, sh *models.Shift, approvedID uuid.UUID) {
	if sh == nil {
		return
	}
	for _, app := range sh.Applications {
		w, err := s.workerRepo.GetByID(ctx, app.WorkerID)
		if err != nil || w == nil {
			continue
		}
		switch {
		case app.WorkerID == approvedID:
			s.notifier.NotifyShiftAssigned(w, sh)
		case app.Decision == models.ApplicationDecisionRejected:
			s.notifier.NotifyApplicationRejected(w, sh)
		}
	}
}

func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.ErrNotFound
	}
	return err
}
