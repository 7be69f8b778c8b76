package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/carevantage/staffing-service/internal/models"
	"github.com/carevantage/staffing-service/internal/repositories"
	"github.com/carevantage/staffing-service/internal/utils"
)

// CredentialService handles credential uploads and the renewal workflow.
// Only the inputs of the status derivation (dates, progress) are ever
// written; status itself is attached at read time.
type CredentialService struct {
	credRepo repositories.CredentialRepository
}

func NewCredentialService(credRepo repositories.CredentialRepository) *CredentialService {
	return &CredentialService{credRepo: credRepo}
}

type UploadCredentialParams struct {
	Kind               models.CredentialKindType
	Name               string
	Issuer             string
	IssueDate          time.Time
	ExpiryDate         time.Time
	CompletionProgress int
}

func (s *CredentialService) Upload(ctx context.Context, ownerID uuid.UUID, p UploadCredentialParams) (*models.CredentialEvaluation, error) {
	cred, err := models.NewCredential(ownerID, p.Kind, p.Name, p.Issuer, p.IssueDate, p.ExpiryDate, p.CompletionProgress)
	if err != nil {
		return nil, err
	}
	if err := s.credRepo.Create(ctx, cred); err != nil {
		return nil, err
	}
	return evaluate(cred, time.Now().UTC()), nil
}

// ListForWorker returns the worker's credentials with status and
// days-until-expiry derived as of now, newest issue first.
func (s *CredentialService) ListForWorker(ctx context.Context, ownerID uuid.UUID) ([]*models.CredentialEvaluation, error) {
	creds, err := s.credRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	out := make([]*models.CredentialEvaluation, 0, len(creds))
	for _, c := range creds {
		out = append(out, evaluate(c, now))
	}
	return out, nil
}

// UpdateProgress advances the renewal/acquisition workflow. Reaching 100
// is what flips the derived status out of PENDING_RENEWAL.
func (s *CredentialService) UpdateProgress(ctx context.Context, ownerID, credID uuid.UUID, progress int) (*models.CredentialEvaluation, error) {
	if progress < 0 || progress > 100 {
		return nil, utils.ErrInvalidPayload
	}
	cred, err := s.ownedCredential(ctx, ownerID, credID)
	if err != nil {
		return nil, err
	}
	updated, err := s.credRepo.UpdateProgress(ctx, cred.ID, progress)
	if err != nil {
		return nil, err
	}
	return evaluate(updated, time.Now().UTC()), nil
}

// StartRenewal issues a new credential record for the same name at zero
// progress. The old record is not deleted: once the renewal completes and
// carries the later issue date, it supersedes the old one in compliance
// (most-recently-issued wins).
func (s *CredentialService) StartRenewal(ctx context.Context, ownerID, credID uuid.UUID, newIssue, newExpiry time.Time) (*models.CredentialEvaluation, error) {
	old, err := s.ownedCredential(ctx, ownerID, credID)
	if err != nil {
		return nil, err
	}
	renewal, err := models.NewCredential(ownerID, old.Kind, old.Name, old.Issuer, newIssue, newExpiry, 0)
	if err != nil {
		return nil, err
	}
	if err := s.credRepo.Create(ctx, renewal); err != nil {
		return nil, err
	}
	return evaluate(renewal, time.Now().UTC()), nil
}

// AddAttachment records one more supporting document on file.
func (s *CredentialService) AddAttachment(ctx context.Context, ownerID, credID uuid.UUID) error {
	cred, err := s.ownedCredential(ctx, ownerID, credID)
	if err != nil {
		return err
	}
	return s.credRepo.IncrementAttachmentCount(ctx, cred.ID)
}

// ownedCredential fetches and enforces ownership. Someone else's
// credential reads as not found rather than leaking its existence.
func (s *CredentialService) ownedCredential(ctx context.Context, ownerID, credID uuid.UUID) (*models.Credential, error) {
	cred, err := s.credRepo.GetByID(ctx, credID)
	if err != nil {
		return nil, err
	}
	if cred == nil || cred.OwnerID != ownerID {
		return nil, utils.ErrNotFound
	}
	return cred, nil
}

func evaluate(c *models.Credential, now time.Time) *models.CredentialEvaluation {
	return &models.CredentialEvaluation{
		Credential:      c,
		Status:          DeriveCredentialStatus(c, now),
		DaysUntilExpiry: DaysUntilExpiry(c.ExpiryDate, now),
	}
}
