package models

// ComplianceProgress summarizes how much of the required catalog is
// satisfied. Percentage is round(100 * Completed / Total), with an empty
// catalog reported as 100.
type ComplianceProgress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// ComplianceVerdict is the aggregate eligibility result for one worker:
// the reduction of their credential set against the role's required
// catalog. Derived on every read, never persisted.
type ComplianceVerdict struct {
	WorkerID   string             `json:"worker_id"`
	IsComplete bool               `json:"is_complete"`
	// Names of satisfied catalog entries.
	CompletedItems []string `json:"completed_items"`
	// Names of catalog entries that are missing, expired, or still
	// pending renewal. Disjoint from CompletedItems.
	MissingItems []string `json:"missing_items"`
	// Satisfied entries whose credential is inside the expiry warning
	// window. Still counted as complete; surfaced so callers can flag
	// them as needing action.
	ExpiringSoon []string           `json:"expiring_soon,omitempty"`
	Progress     ComplianceProgress `json:"progress"`
}
