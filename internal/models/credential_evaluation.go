package models

// CredentialEvaluation pairs a stored credential with its derived status
// at a reference instant. This is the only place status appears: it is
// computed at the read boundary, never persisted.
type CredentialEvaluation struct {
	Credential      *Credential          `json:"credential"`
	Status          CredentialStatusType `json:"status"`
	DaysUntilExpiry int                  `json:"days_until_expiry"`
}
