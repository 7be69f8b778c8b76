package constants

import "time"

// Credential compliance settings
const (
	// A fully-completed credential within this many days of expiry is
	// EXPIRING_SOON: still valid for work, flagged for action.
	ExpiryWarningDays = 30

	// How far ahead the daily sweep looks when sending reminders.
	ExpiryReminderLookahead = ExpiryWarningDays * 24 * time.Hour

	FullCompletionProgress = 100
)

// Shift approval settings
const (
	// One automatic re-read + re-evaluate after a lost row-version race
	// before the conflict surfaces to the caller.
	ApprovalAttempts = 2
)

// Cron schedule for the expiry reminder sweep (06:00 UTC daily).
const ExpirySweepCronSpec = "0 6 * * *"

// Client-facing message for lost optimistic-lock races.
const ErrMsgRowVersionConflictRefresh = "The shift has changed, please refresh"
