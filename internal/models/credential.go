package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type CredentialKindType string

const (
	CredentialKindCertification CredentialKindType = "CERTIFICATION"
	CredentialKindLicense       CredentialKindType = "LICENSE"
	CredentialKindTraining      CredentialKindType = "TRAINING"
)

// CredentialStatusType is always derived from dates and progress at read
// time. It is never written to the database; only the inputs are stored.
type CredentialStatusType string

const (
	CredentialStatusActive         CredentialStatusType = "ACTIVE"
	CredentialStatusExpiringSoon   CredentialStatusType = "EXPIRING_SOON"
	CredentialStatusExpired        CredentialStatusType = "EXPIRED"
	CredentialStatusPendingRenewal CredentialStatusType = "PENDING_RENEWAL"
)

// ErrInvalidDateRange rejects a credential whose expiry precedes its issue
// date. Checked at construction so malformed records never reach the
// status engine.
var ErrInvalidDateRange = errors.New("invalid_date_range")

type Credential struct {
	ID      uuid.UUID          `json:"id"`
	OwnerID uuid.UUID          `json:"owner_id"`
	Kind    CredentialKindType `json:"kind"`
	// Name distinguishes credentials of the same kind (e.g. "CPR",
	// "First Aid" are both certifications). Required-catalog entries
	// match on it.
	Name   string `json:"name"`
	Issuer string `json:"issuer"`

	IssueDate  time.Time `json:"issue_date"`
	ExpiryDate time.Time `json:"expiry_date"`

	// CompletionProgress is 0-100: how much of the acquisition or
	// renewal workflow is done. 100 means fully valid and on file.
	CompletionProgress int `json:"completion_progress"`
	AttachmentCount    int `json:"attachment_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCredential validates the date range and progress bounds up front.
func NewCredential(
	ownerID uuid.UUID,
	kind CredentialKindType,
	name, issuer string,
	issueDate, expiryDate time.Time,
	completionProgress int,
) (*Credential, error) {
	if expiryDate.Before(issueDate) {
		return nil, ErrInvalidDateRange
	}
	if completionProgress < 0 {
		completionProgress = 0
	}
	if completionProgress > 100 {
		completionProgress = 100
	}
	now := time.Now().UTC()
	return &Credential{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		Kind:               kind,
		Name:               name,
		Issuer:             issuer,
		IssueDate:          issueDate,
		ExpiryDate:         expiryDate,
		CompletionProgress: completionProgress,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

func (c *Credential) GetID() string {
	return c.ID.String()
}
