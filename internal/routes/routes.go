package routes

const (
	// Health
	Health = "/health"

	// Worker endpoints
	CredentialsBase     = "/api/v1/credentials"
	CredentialsProgress = "/api/v1/credentials/progress"
	CredentialsRenew    = "/api/v1/credentials/renew"
	Compliance          = "/api/v1/compliance"

	ShiftsOpen    = "/api/v1/shifts/open"
	ShiftsMy      = "/api/v1/shifts/my"
	ShiftsApply   = "/api/v1/shifts/apply"
	ShiftsCanBook = "/api/v1/shifts/can-book"

	// Agency endpoints
	AgencyShifts         = "/api/v1/agency/shifts"
	AgencyShiftsDecide   = "/api/v1/agency/shifts/decide"
	AgencyShiftsComplete = "/api/v1/agency/shifts/complete"
	AgencyShiftsCancel   = "/api/v1/agency/shifts/cancel"

	// Cross-entity compliance read (agency checking a worker)
	AgencyWorkerCompliance = "/api/v1/agency/workers/{workerId}/compliance"
)
