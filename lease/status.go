package lease

import "github.com/propease/lease-engine/calendar"

// =============================================================================
// STATUS RESOLUTION - Time-derived lifecycle status
// =============================================================================

// ResolveStatus derives a lease's lifecycle status from its dates.
//
//  1. Start date in the future        -> Pending
//  2. End date present and passed     -> Ended
//  3. Otherwise                       -> Active
//
// Terminated is never produced here: it is an explicit staff-initiated
// override applied out of band and persists until changed.
//
// For month-to-month leases, end must be the nominal 12-month horizon
// (start-date-relative, see NominalHorizon), not a contractual end — the
// resolver itself does not know or care which kind it was given.
func ResolveStatus(start calendar.Date, end *calendar.Date, today calendar.Date) Status {
	if start.After(today) {
		return StatusPending
	}
	if end != nil && today.After(*end) {
		return StatusEnded
	}
	return StatusActive
}
