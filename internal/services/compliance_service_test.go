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

func activeCredential(t *testing.T, ownerID uuid.UUID, name string) *models.Credential {
	t.Helper()
	return mustCredential(t, ownerID, name, 100, statusRef.AddDate(-1, 0, 0), statusRef.AddDate(1, 0, 0))
}

func TestBuildComplianceVerdictEmptyCatalog(t *testing.T) {
	workerID := uuid.New()
	verdict := BuildComplianceVerdict(workerID, nil, nil, statusRef)

	assert.True(t, verdict.IsComplete)
	assert.Empty(t, verdict.MissingItems)
	assert.Empty(t, verdict.CompletedItems)
	assert.Equal(t, 100, verdict.Progress.Percentage)
	assert.Equal(t, 0, verdict.Progress.Total)
}

func TestBuildComplianceVerdictMissingItems(t *testing.T) {
	workerID := uuid.New()
	catalog := []models.RequiredCredential{
		{ID: uuid.New(), Role: models.RoleDSP, Name: "CPR", Kind: models.CredentialKindCertification},
		{ID: uuid.New(), Role: models.RoleDSP, Name: "First Aid", Kind: models.CredentialKindCertification},
	}
	creds := []*models.Credential{activeCredential(t, workerID, "CPR")}

	verdict := BuildComplianceVerdict(workerID, catalog, creds, statusRef)

	assert.False(t, verdict.IsComplete)
	assert.Equal(t, []string{"CPR"}, verdict.CompletedItems)
	assert.Equal(t, []string{"First Aid"}, verdict.MissingItems)
	assert.Equal(t, 1, verdict.Progress.Completed)
	assert.Equal(t, 2, verdict.Progress.Total)
	assert.Equal(t, 50, verdict.Progress.Percentage)
}

func TestBuildComplianceVerdictExpiringSoonStillSatisfies(t *testing.T) {
	workerID := uuid.New()
	catalog := []models.RequiredCredential{
		{ID: uuid.New(), Role: models.RoleDSP, Name: "CPR", Kind: models.CredentialKindCertification},
	}
	creds := []*models.Credential{
		mustCredential(t, workerID, "CPR", 100, statusRef.AddDate(-2, 0, 0), statusRef.AddDate(0, 0, 10)),
	}

	verdict := BuildComplianceVerdict(workerID, catalog, creds, statusRef)

	assert.True(t, verdict.IsComplete)
	assert.Equal(t, []string{"CPR"}, verdict.CompletedItems)
	assert.Equal(t, []string{"CPR"}, verdict.ExpiringSoon)
	assert.Equal(t, 100, verdict.Progress.Percentage)
}

func TestBuildComplianceVerdictExpiredAndPendingAreUnsatisfied(t *testing.T) {
	workerID := uuid.New()
	catalog := []models.RequiredCredential{
		{ID: uuid.New(), Role: models.RoleDSP, Name: "CPR", Kind: models.CredentialKindCertification},
		{ID: uuid.New(), Role: models.RoleDSP, Name: "First Aid", Kind: models.CredentialKindCertification},
	}
	creds := []*models.Credential{
		mustCredential(t, workerID, "CPR", 100, statusRef.AddDate(-3, 0, 0), statusRef.AddDate(0, 0, -5)),
		mustCredential(t, workerID, "First Aid", 60, statusRef.AddDate(-1, 0, 0), statusRef.AddDate(1, 0, 0)),
	}

	verdict := BuildComplianceVerdict(workerID, catalog, creds, statusRef)

	assert.False(t, verdict.IsComplete)
	assert.Empty(t, verdict.CompletedItems)
	assert.ElementsMatch(t, []string{"CPR", "First Aid"}, verdict.MissingItems)
	assert.Equal(t, 0, verdict.Progress.Percentage)
}

func TestBuildComplianceVerdictMostRecentlyIssuedWins(t *testing.T) {
	workerID := uuid.New()
	catalog := []models.RequiredCredential{
		{ID: uuid.New(), Role: models.RoleDSP, Name: "CPR", Kind: models.CredentialKindCertification},
	}

	expired := mustCredential(t, workerID, "CPR", 100, statusRef.AddDate(-3, 0, 0), statusRef.AddDate(0, 0, -40))
	renewed := mustCredential(t, workerID, "cpr", 100, statusRef.AddDate(0, 0, -30), statusRef.AddDate(2, 0, 0))

	// Newer issue supersedes, regardless of slice order and case.
	verdict := BuildComplianceVerdict(workerID, catalog, []*models.Credential{renewed, expired}, statusRef)
	assert.True(t, verdict.IsComplete)

	// A fresh renewal still mid-workflow does not: the latest record is
	// PENDING_RENEWAL even though the superseded one was active.
	stale := mustCredential(t, workerID, "CPR", 100, statusRef.AddDate(-1, 0, 0), statusRef.AddDate(0, 6, 0))
	pending := mustCredential(t, workerID, "CPR", 20, statusRef.AddDate(0, 0, -1), statusRef.AddDate(2, 0, 0))
	verdict = BuildComplianceVerdict(workerID, catalog, []*models.Credential{stale, pending}, statusRef)
	assert.False(t, verdict.IsComplete)
	assert.Equal(t, []string{"CPR"}, verdict.MissingItems)
}

func TestBuildComplianceVerdictRoundsPercentage(t *testing.T) {
	workerID := uuid.New()
	catalog := []models.RequiredCredential{
		{ID: uuid.New(), Role: models.RoleRN, Name: "RN License", Kind: models.CredentialKindLicense},
		{ID: uuid.New(), Role: models.RoleRN, Name: "CPR", Kind: models.CredentialKindCertification},
		{ID: uuid.New(), Role: models.RoleRN, Name: "TB Test", Kind: models.CredentialKindCertification},
	}
	creds := []*models.Credential{
		activeCredential(t, workerID, "RN License"),
		activeCredential(t, workerID, "CPR"),
	}

	verdict := BuildComplianceVerdict(workerID, catalog, creds, statusRef)
	assert.Equal(t, 67, verdict.Progress.Percentage)
}

func TestGetVerdictUnknownWorker(t *testing.T) {
	svc := NewComplianceService(newMemWorkerRepo(), newMemCredentialRepo(), newMemCatalogRepo())

	_, err := svc.GetVerdict(context.Background(), uuid.New())
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestGetVerdictUsesWorkerRole(t *testing.T) {
	ctx := context.Background()
	worker := &models.Worker{ID: uuid.New(), Email: "dana@example.com", Role: models.RoleDSP}

	catalog := newMemCatalogRepo()
	catalog.add(models.RoleDSP, "CPR", models.CredentialKindCertification)
	catalog.add(models.RoleRN, "RN License", models.CredentialKindLicense)

	credRepo := newMemCredentialRepo()
	cred := mustCredential(t, worker.ID, "CPR", 100, time.Now().UTC().AddDate(-1, 0, 0), time.Now().UTC().AddDate(1, 0, 0))
	require.NoError(t, credRepo.Create(ctx, cred))

	svc := NewComplianceService(newMemWorkerRepo(worker), credRepo, catalog)

	verdict, err := svc.GetVerdict(ctx, worker.ID)
	require.NoError(t, err)
	assert.True(t, verdict.IsComplete)
	assert.Equal(t, []string{"CPR"}, verdict.CompletedItems)
	// The RN-only entry never enters a DSP worker's verdict.
	assert.Equal(t, 1, verdict.Progress.Total)
}
