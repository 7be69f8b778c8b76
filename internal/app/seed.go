package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/carevantage/staffing-service/internal/models"
	"github.com/carevantage/staffing-service/internal/repositories"
	"github.com/carevantage/staffing-service/internal/services"
	"github.com/carevantage/staffing-service/internal/utils"
)

// SeedTestData populates a local fixture set: a DSP required catalog,
// one fully compliant worker, one worker mid-renewal, and a pair of open
// shifts. Catalog and worker inserts tolerate reruns; credentials and
// shifts are meant for a fresh database.
func SeedTestData(
	ctx context.Context,
	db repositories.DB,
	workerRepo repositories.WorkerRepository,
	credentialService *services.CredentialService,
	shiftService *services.ShiftService,
) error {
	dspCatalog := []struct {
		name string
		kind models.CredentialKindType
	}{
		{"CPR", models.CredentialKindCertification},
		{"First Aid", models.CredentialKindCertification},
		{"DSP Core Training", models.CredentialKindTraining},
	}
	for _, entry := range dspCatalog {
		if _, err := db.Exec(ctx, `
            INSERT INTO required_credentials (id, role, name, kind)
            VALUES ($1,$2,$3,$4)
            ON CONFLICT (role, name) DO NOTHING
        `, uuid.New(), models.RoleDSP, entry.name, entry.kind); err != nil {
			return err
		}
	}

	compliant := &models.Worker{
		ID:          uuid.MustParse("5f0d5f90-0b86-4a11-9aa3-0a6ad6e1c001"),
		Email:       "dana.fields@example.com",
		PhoneNumber: "+15550100001",
		FirstName:   "Dana",
		LastName:    "Fields",
		Role:        models.RoleDSP,
	}
	midRenewal := &models.Worker{
		ID:          uuid.MustParse("5f0d5f90-0b86-4a11-9aa3-0a6ad6e1c002"),
		Email:       "omar.reyes@example.com",
		PhoneNumber: "+15550100002",
		FirstName:   "Omar",
		LastName:    "Reyes",
		Role:        models.RoleDSP,
	}
	for _, w := range []*models.Worker{compliant, midRenewal} {
		if err := workerRepo.Create(ctx, w); err != nil {
			utils.Logger.WithError(err).Debugf("seed worker %s exists, skipping", w.Email)
		}
	}

	now := time.Now().UTC()
	fullSet := []services.UploadCredentialParams{
		{Kind: models.CredentialKindCertification, Name: "CPR", Issuer: "Red Cross", IssueDate: now.AddDate(-1, 0, 0), ExpiryDate: now.AddDate(1, 0, 0), CompletionProgress: 100},
		{Kind: models.CredentialKindCertification, Name: "First Aid", Issuer: "Red Cross", IssueDate: now.AddDate(-1, 0, 0), ExpiryDate: now.AddDate(0, 0, 20), CompletionProgress: 100},
		{Kind: models.CredentialKindTraining, Name: "DSP Core Training", Issuer: "State Board", IssueDate: now.AddDate(0, -6, 0), ExpiryDate: now.AddDate(1, 6, 0), CompletionProgress: 100},
	}
	for _, p := range fullSet {
		if _, err := credentialService.Upload(ctx, compliant.ID, p); err != nil {
			return err
		}
	}
	// Omar holds CPR but is still working through the rest.
	partial := []services.UploadCredentialParams{
		{Kind: models.CredentialKindCertification, Name: "CPR", Issuer: "Red Cross", IssueDate: now.AddDate(0, -3, 0), ExpiryDate: now.AddDate(1, 9, 0), CompletionProgress: 100},
		{Kind: models.CredentialKindCertification, Name: "First Aid", Issuer: "Red Cross", IssueDate: now.AddDate(0, -1, 0), ExpiryDate: now.AddDate(1, 11, 0), CompletionProgress: 60},
	}
	for _, p := range partial {
		if _, err := credentialService.Upload(ctx, midRenewal.ID, p); err != nil {
			return err
		}
	}

	agencyID := uuid.MustParse("5f0d5f90-0b86-4a11-9aa3-0a6ad6e1d001")
	shiftSpecs := []services.PostShiftParams{
		{Title: "Overnight residential support", Location: "Maple House, Knoxville TN", StartTime: now.AddDate(0, 0, 2), EndTime: now.AddDate(0, 0, 2).Add(8 * time.Hour), Rate: 21.50},
		{Title: "Weekend day program", Location: "Cedar Center, Knoxville TN", StartTime: now.AddDate(0, 0, 5), EndTime: now.AddDate(0, 0, 5).Add(6 * time.Hour), Rate: 19.75},
	}
	for _, p := range shiftSpecs {
		if _, err := shiftService.PostShift(ctx, agencyID, p); err != nil {
			return err
		}
	}

	utils.Logger.Info("Seeded test catalog, workers, credentials and shifts")
	return nil
}
