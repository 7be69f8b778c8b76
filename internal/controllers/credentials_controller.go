package controllers

import (
	"net/http"

	"github.com/carevantage/staffing-service/internal/dtos"
	"github.com/carevantage/staffing-service/internal/models"
	"github.com/carevantage/staffing-service/internal/services"
	"github.com/carevantage/staffing-service/internal/utils"
)

type CredentialsController struct {
	credentialService *services.CredentialService
}

func NewCredentialsController(cs *services.CredentialService) *CredentialsController {
	return &CredentialsController{credentialService: cs}
}

// ----------------------------------------------------------------
// GET /api/v1/credentials
// ----------------------------------------------------------------
func (c *CredentialsController) ListCredentialsHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}

	evals, err := c.credentialService.ListForWorker(r.Context(), workerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	results := make([]dtos.CredentialDTO, 0, len(evals))
	for _, ev := range evals {
		results = append(results, dtos.NewCredentialDTO(ev))
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListCredentialsResponse{
		Results: results,
		Total:   len(results),
	})
}

// ----------------------------------------------------------------
// POST /api/v1/credentials
// ----------------------------------------------------------------
func (c *CredentialsController) UploadCredentialHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.UploadCredentialRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	issueDate, err := dtos.ParseDate(req.IssueDate)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "issue_date must be YYYY-MM-DD", nil, err,
		)
		return
	}
	expiryDate, err := dtos.ParseDate(req.ExpiryDate)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "expiry_date must be YYYY-MM-DD", nil, err,
		)
		return
	}

	ev, svcErr := c.credentialService.Upload(r.Context(), workerID, services.UploadCredentialParams{
		Kind:               models.CredentialKindType(req.Kind),
		Name:               req.Name,
		Issuer:             req.Issuer,
		IssueDate:          issueDate,
		ExpiryDate:         expiryDate,
		CompletionProgress: req.CompletionProgress,
	})
	if svcErr != nil {
		respondServiceError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.NewCredentialDTO(ev))
}

// ----------------------------------------------------------------
// PATCH /api/v1/credentials/progress
// ----------------------------------------------------------------
func (c *CredentialsController) UpdateProgressHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateProgressRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ev, err := c.credentialService.UpdateProgress(r.Context(), workerID, req.CredentialID, req.Progress)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewCredentialDTO(ev))
}

// ----------------------------------------------------------------
// POST /api/v1/credentials/renew
// ----------------------------------------------------------------
func (c *CredentialsController) StartRenewalHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.StartRenewalRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	issueDate, err := dtos.ParseDate(req.IssueDate)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "issue_date must be YYYY-MM-DD", nil, err,
		)
		return
	}
	expiryDate, err := dtos.ParseDate(req.ExpiryDate)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "expiry_date must be YYYY-MM-DD", nil, err,
		)
		return
	}

	ev, svcErr := c.credentialService.StartRenewal(r.Context(), workerID, req.CredentialID, issueDate, expiryDate)
	if svcErr != nil {
		respondServiceError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.NewCredentialDTO(ev))
}
