package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carevantage/staffing-service/internal/models"
	"github.com/carevantage/staffing-service/internal/repositories"
	"github.com/carevantage/staffing-service/internal/utils"
)

// ComplianceService reduces a worker's credential set against their role's
// required catalog into a single verdict.
type ComplianceService struct {
	workerRepo  repositories.WorkerRepository
	credRepo    repositories.CredentialRepository
	catalogRepo repositories.RequiredCatalogRepository
}

func NewComplianceService(
	workerRepo repositories.WorkerRepository,
	credRepo repositories.CredentialRepository,
	catalogRepo repositories.RequiredCatalogRepository,
) *ComplianceService {
	return &ComplianceService{
		workerRepo:  workerRepo,
		credRepo:    credRepo,
		catalogRepo: catalogRepo,
	}
}

// GetVerdict fetches the worker, their catalog and credentials, and
// reduces them as of now. Reads are allowed cross-entity: an agency may
// request any worker's verdict.
func (s *ComplianceService) GetVerdict(ctx context.Context, workerID uuid.UUID) (*models.ComplianceVerdict, error) {
	worker, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, utils.ErrNotFound
	}

	catalog, err := s.catalogRepo.ListByRole(ctx, worker.Role)
	if err != nil {
		return nil, fmt.Errorf("listing required catalog for role %s: %w", worker.Role, err)
	}

	creds, err := s.credRepo.ListByOwner(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("listing credentials for worker %s: %w", workerID, err)
	}

	return BuildComplianceVerdict(workerID, catalog, creds, time.Now().UTC()), nil
}

// BuildComplianceVerdict is the pure reduction. A catalog entry is
// satisfied iff the worker's most-recently-issued credential of that name
// derives to ACTIVE or EXPIRING_SOON; a credential ten days from expiry
// still authorizes work today. EXPIRED, PENDING_RENEWAL, and missing
// entirely are unsatisfied. An empty catalog is vacuously complete.
func BuildComplianceVerdict(
	workerID uuid.UUID,
	catalog []models.RequiredCredential,
	creds []*models.Credential,
	referenceDate time.Time,
) *models.ComplianceVerdict {
	verdict := &models.ComplianceVerdict{
		WorkerID:       workerID.String(),
		CompletedItems: []string{},
		MissingItems:   []string{},
	}

	for _, entry := range catalog {
		cred := latestByName(creds, entry.Name)
		if cred == nil {
			verdict.MissingItems = append(verdict.MissingItems, entry.Name)
			continue
		}
		switch DeriveCredentialStatus(cred, referenceDate) {
		case models.CredentialStatusActive:
			verdict.CompletedItems = append(verdict.CompletedItems, entry.Name)
		case models.CredentialStatusExpiringSoon:
			verdict.CompletedItems = append(verdict.CompletedItems, entry.Name)
			verdict.ExpiringSoon = append(verdict.ExpiringSoon, entry.Name)
		default:
			verdict.MissingItems = append(verdict.MissingItems, entry.Name)
		}
	}

	completed := len(verdict.CompletedItems)
	total := len(catalog)
	verdict.IsComplete = len(verdict.MissingItems) == 0
	verdict.Progress = models.ComplianceProgress{
		Completed:  completed,
		Total:      total,
		Percentage: progressPercentage(completed, total),
	}
	return verdict
}

func progressPercentage(completed, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// latestByName picks the most-recently-issued credential matching the
// catalog entry name.
func latestByName(creds []*models.Credential, name string) *models.Credential {
	var latest *models.Credential
	for _, c := range creds {
		if !strings.EqualFold(c.Name, name) {
			continue
		}
		if latest == nil || c.IssueDate.After(latest.IssueDate) {
			latest = c
		}
	}
	return latest
}
