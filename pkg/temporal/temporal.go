// Package temporal holds the fixed instants and the single delta used
// throughout the registry to express closed, abutting validity
// intervals.
package temporal

import "time"

// Delta is the smallest unit of time distinguishing the end of one
// version from the start of its successor. Every interval in the
// registry is closed; a successor's start is always its predecessor's
// end plus Delta.
const Delta = time.Microsecond

// StartDate is the epoch all seeded towns are born at: the date of the
// 1942 nomenclature that the registry's history builds on top of.
var StartDate = time.Date(1942, time.January, 1, 0, 0, 0, 0, time.UTC)

// StartDatetime is StartDate at midnight, the lower bound of every
// seeded version's validity interval.
var StartDatetime = StartDate

// FarFuture is the sentinel "still valid" end date/datetime. No real
// modification is ever recorded this far out.
var FarFuture = time.Date(9999, time.January, 1, 0, 0, 0, 0, time.UTC)

// DateLayout is the ISO date format embedded in version identifiers.
const DateLayout = "2006-01-02"

// AddDelta returns t+Delta, except when t is already FarFuture, in
// which case it returns FarFuture unchanged: adding Delta to the open
// end sentinel is meaningless and would otherwise silently escape the
// representable range. Callers that need to distinguish the overflow
// case (spec: successor integrity falls back to validity at
// end_datetime itself) should use AddDeltaOK.
func AddDelta(t time.Time) time.Time {
	result, _ := AddDeltaOK(t)
	return result
}

// AddDeltaOK returns t+Delta and whether the addition was meaningful.
// ok is false exactly when t equals FarFuture, in which case result is
// t unchanged.
func AddDeltaOK(t time.Time) (result time.Time, ok bool) {
	if t.Equal(FarFuture) {
		return t, false
	}
	return t.Add(Delta), true
}

// SubDelta returns t-Delta. There is no sentinel on the lower bound, so
// no overflow guard is needed.
func SubDelta(t time.Time) time.Time {
	return t.Add(-Delta)
}

// ToDate truncates t to midnight UTC, recovering the date component of
// a datetime for display and for identity formation.
func ToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AtMidnight returns the datetime for date d at 00:00:00, the
// convention used for every "effective date" turned "effective
// datetime" (record.eff in the spec).
func AtMidnight(d time.Time) time.Time {
	return ToDate(d)
}

// ISO formats t's date component the way identifiers embed it.
func ISO(t time.Time) string {
	return ToDate(t).Format(DateLayout)
}
