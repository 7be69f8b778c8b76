package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carevantage/staffing-service/internal/models"
	"github.com/carevantage/staffing-service/internal/utils"
)

func uploadParams(expiry time.Time, progress int) UploadCredentialParams {
	return UploadCredentialParams{
		Kind:               models.CredentialKindCertification,
		Name:               "CPR",
		Issuer:             "Red Cross",
		IssueDate:          expiry.AddDate(-2, 0, 0),
		ExpiryDate:         expiry,
		CompletionProgress: progress,
	}
}

func TestUploadCredential(t *testing.T) {
	ctx := context.Background()
	repo := newMemCredentialRepo()
	svc := NewCredentialService(repo)
	ownerID := uuid.New()

	eval, err := svc.Upload(ctx, ownerID, uploadParams(time.Now().UTC().AddDate(1, 0, 0), 100))
	require.NoError(t, err)
	assert.Equal(t, models.CredentialStatusActive, eval.Status)
	assert.Greater(t, eval.DaysUntilExpiry, 300)

	stored, err := repo.GetByID(ctx, eval.Credential.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, ownerID, stored.OwnerID)
}

func TestUploadCredentialInvalidDates(t *testing.T) {
	svc := NewCredentialService(newMemCredentialRepo())

	p := uploadParams(time.Now().UTC(), 100)
	p.IssueDate = p.ExpiryDate.AddDate(0, 0, 1)
	_, err := svc.Upload(context.Background(), uuid.New(), p)
	require.ErrorIs(t, err, models.ErrInvalidDateRange)
}

func TestListForWorkerDerivesStatus(t *testing.T) {
	ctx := context.Background()
	svc := NewCredentialService(newMemCredentialRepo())
	ownerID := uuid.New()

	_, err := svc.Upload(ctx, ownerID, uploadParams(time.Now().UTC().AddDate(0, 0, 10), 100))
	require.NoError(t, err)

	evals, err := svc.ListForWorker(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, evals, 1)
	assert.Equal(t, models.CredentialStatusExpiringSoon, evals[0].Status)
	assert.LessOrEqual(t, evals[0].DaysUntilExpiry, 10)
}

func TestUpdateProgressFlipsPendingRenewal(t *testing.T) {
	ctx := context.Background()
	svc := NewCredentialService(newMemCredentialRepo())
	ownerID := uuid.New()

	eval, err := svc.Upload(ctx, ownerID, uploadParams(time.Now().UTC().AddDate(1, 0, 0), 40))
	require.NoError(t, err)
	assert.Equal(t, models.CredentialStatusPendingRenewal, eval.Status)

	eval, err = svc.UpdateProgress(ctx, ownerID, eval.Credential.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, models.CredentialStatusActive, eval.Status)
}

func TestUpdateProgressBounds(t *testing.T) {
	ctx := context.Background()
	svc := NewCredentialService(newMemCredentialRepo())
	ownerID := uuid.New()

	eval, err := svc.Upload(ctx, ownerID, uploadParams(time.Now().UTC().AddDate(1, 0, 0), 40))
	require.NoError(t, err)

	_, err = svc.UpdateProgress(ctx, ownerID, eval.Credential.ID, 101)
	assert.ErrorIs(t, err, utils.ErrInvalidPayload)
	_, err = svc.UpdateProgress(ctx, ownerID, eval.Credential.ID, -1)
	assert.ErrorIs(t, err, utils.ErrInvalidPayload)
}

func TestCredentialOwnershipEnforced(t *testing.T) {
	ctx := context.Background()
	svc := NewCredentialService(newMemCredentialRepo())
	ownerID := uuid.New()

	eval, err := svc.Upload(ctx, ownerID, uploadParams(time.Now().UTC().AddDate(1, 0, 0), 100))
	require.NoError(t, err)

	// Someone else's credential reads as not found.
	_, err = svc.UpdateProgress(ctx, uuid.New(), eval.Credential.ID, 50)
	assert.ErrorIs(t, err, utils.ErrNotFound)
	err = svc.AddAttachment(ctx, uuid.New(), eval.Credential.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestStartRenewalCreatesFreshRecord(t *testing.T) {
	ctx := context.Background()
	repo := newMemCredentialRepo()
	svc := NewCredentialService(repo)
	ownerID := uuid.New()

	now := time.Now().UTC()
	old, err := svc.Upload(ctx, ownerID, uploadParams(now.AddDate(0, 0, 15), 100))
	require.NoError(t, err)

	renewal, err := svc.StartRenewal(ctx, ownerID, old.Credential.ID, now, now.AddDate(2, 0, 0))
	require.NoError(t, err)

	assert.NotEqual(t, old.Credential.ID, renewal.Credential.ID)
	assert.Equal(t, old.Credential.Name, renewal.Credential.Name)
	assert.Equal(t, old.Credential.Kind, renewal.Credential.Kind)
	assert.Equal(t, 0, renewal.Credential.CompletionProgress)
	assert.Equal(t, models.CredentialStatusPendingRenewal, renewal.Status)

	// Old record stays on file; the renewal only supersedes it in
	// compliance once complete.
	both, err := svc.ListForWorker(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, both, 2)
}

func TestAddAttachment(t *testing.T) {
	ctx := context.Background()
	repo := newMemCredentialRepo()
	svc := NewCredentialService(repo)
	ownerID := uuid.New()

	eval, err := svc.Upload(ctx, ownerID, uploadParams(time.Now().UTC().AddDate(1, 0, 0), 100))
	require.NoError(t, err)

	require.NoError(t, svc.AddAttachment(ctx, ownerID, eval.Credential.ID))
	require.NoError(t, svc.AddAttachment(ctx, ownerID, eval.Credential.ID))

	stored, err := repo.GetByID(ctx, eval.Credential.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.AttachmentCount)
}
