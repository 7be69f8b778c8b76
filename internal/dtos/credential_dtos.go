package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/carevantage/staffing-service/internal/models"
)

const dateLayout = "2006-01-02"

/*
UploadCredentialRequest is the "request DTO" for POST /api/v1/credentials.
Dates arrive as YYYY-MM-DD strings.
*/
type UploadCredentialRequest struct {
	Kind               string `json:"kind" validate:"required,oneof=CERTIFICATION LICENSE TRAINING"`
	Name               string `json:"name" validate:"required,max=120"`
	Issuer             string `json:"issuer" validate:"required,max=200"`
	IssueDate          string `json:"issue_date" validate:"required"`
	ExpiryDate         string `json:"expiry_date" validate:"required"`
	CompletionProgress int    `json:"completion_progress" validate:"min=0,max=100"`
}

type UpdateProgressRequest struct {
	CredentialID uuid.UUID `json:"credential_id" validate:"required"`
	Progress     int       `json:"progress" validate:"min=0,max=100"`
}

type StartRenewalRequest struct {
	CredentialID uuid.UUID `json:"credential_id" validate:"required"`
	IssueDate    string    `json:"issue_date" validate:"required"`
	ExpiryDate   string    `json:"expiry_date" validate:"required"`
}

// ParseDate parses the YYYY-MM-DD wire format.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

/*
CredentialDTO is used by responses listing or returning a single
credential. Status and days-until-expiry are derived fields, present on
every read.
*/
type CredentialDTO struct {
	ID                 uuid.UUID `json:"id"`
	OwnerID            uuid.UUID `json:"owner_id"`
	Kind               string    `json:"kind"`
	Name               string    `json:"name"`
	Issuer             string    `json:"issuer"`
	IssueDate          string    `json:"issue_date"`
	ExpiryDate         string    `json:"expiry_date"`
	CompletionProgress int       `json:"completion_progress"`
	AttachmentCount    int       `json:"attachment_count"`
	Status             string    `json:"status"`
	DaysUntilExpiry    int       `json:"days_until_expiry"`
}

func NewCredentialDTO(ev *models.CredentialEvaluation) CredentialDTO {
	c := ev.Credential
	return CredentialDTO{
		ID:                 c.ID,
		OwnerID:            c.OwnerID,
		Kind:               string(c.Kind),
		Name:               c.Name,
		Issuer:             c.Issuer,
		IssueDate:          c.IssueDate.Format(dateLayout),
		ExpiryDate:         c.ExpiryDate.Format(dateLayout),
		CompletionProgress: c.CompletionProgress,
		AttachmentCount:    c.AttachmentCount,
		Status:             string(ev.Status),
		DaysUntilExpiry:    ev.DaysUntilExpiry,
	}
}

type ListCredentialsResponse struct {
	Results []CredentialDTO `json:"results"`
	Total   int             `json:"total"`
}
