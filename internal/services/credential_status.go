package services

import (
	"time"

	"github.com/carevantage/staffing-service/internal/constants"
	"github.com/carevantage/staffing-service/internal/models"
)

/*
Credential status is a pure function of (expiryDate, completionProgress,
referenceDate). Evaluated in priority order, first match wins:

 1. progress < 100            → PENDING_RENEWAL (dates irrelevant)
 2. ref after expiry (by day) → EXPIRED
 3. ≤ 30 days until expiry    → EXPIRING_SOON
 4. otherwise                 → ACTIVE

The reference date equal to the expiry date is still inside the
EXPIRING_SOON window; only a reference strictly after the expiry day is
EXPIRED.
*/
func DeriveCredentialStatus(c *models.Credential, referenceDate time.Time) models.CredentialStatusType {
	if c.CompletionProgress < constants.FullCompletionProgress {
		return models.CredentialStatusPendingRenewal
	}

	days := DaysUntilExpiry(c.ExpiryDate, referenceDate)
	switch {
	case days < 0:
		return models.CredentialStatusExpired
	case days <= constants.ExpiryWarningDays:
		return models.CredentialStatusExpiringSoon
	default:
		return models.CredentialStatusActive
	}
}

// DaysUntilExpiry counts whole calendar days from referenceDate to
// expiryDate, discarding time-of-day. Zero means the credential expires
// today; negative means it expired that many days ago.
func DaysUntilExpiry(expiryDate, referenceDate time.Time) int {
	expiry := dateOnly(expiryDate)
	ref := dateOnly(referenceDate)
	return int(expiry.Sub(ref).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
