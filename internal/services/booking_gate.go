package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carevantage/staffing-service/internal/models"
	"github.com/carevantage/staffing-service/internal/repositories"
	"github.com/carevantage/staffing-service/internal/utils"
)

// BookingGate is the single decision point that composes the compliance
// verdict with the shift's state. It fails closed: any shift not OPEN
// is ineligible regardless of compliance.
type BookingGate struct {
	shiftRepo  repositories.ShiftRepository
	compliance *ComplianceService
}

func NewBookingGate(shiftRepo repositories.ShiftRepository, compliance *ComplianceService) *BookingGate {
	return &BookingGate{shiftRepo: shiftRepo, compliance: compliance}
}

func (g *BookingGate) CanBook(ctx context.Context, workerID, shiftID uuid.UUID) (*models.BookingDecision, error) {
	sh, err := g.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, utils.ErrNotFound
	}
	return g.EvaluateShift(ctx, workerID, sh)
}

// EvaluateShift runs the gate against an already-fetched shift. The shift
// approval path calls this at decision time; an earlier CanBook answer is
// never trusted, since a credential may have expired or a concurrent
// booking may have filled the shift in the meantime.
func (g *BookingGate) EvaluateShift(ctx context.Context, workerID uuid.UUID, sh *models.Shift) (*models.BookingDecision, error) {
	if sh.Status != models.ShiftStatusOpen {
		return &models.BookingDecision{
			Eligible: false,
			Reasons:  []string{fmt.Sprintf("shift is %s", sh.Status)},
		}, nil
	}

	verdict, err := g.compliance.GetVerdict(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if !verdict.IsComplete {
		return &models.BookingDecision{
			Eligible: false,
			Reasons:  verdict.MissingItems,
			Verdict:  verdict,
		}, nil
	}

	return &models.BookingDecision{
		Eligible: true,
		Reasons:  []string{},
		Verdict:  verdict,
	}, nil
}
