package models

// BookingDecision is the eligibility gate's answer. Reasons carry the
// structured detail behind a rejection (missing credential names, or the
// shift's current status) so the caller can render something actionable.
type BookingDecision struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons"`
	// Verdict is attached when compliance was consulted, complete or not.
	Verdict *ComplianceVerdict `json:"verdict,omitempty"`
}
