package utils

import (
	"math"
	"time"
)

// -----------------------------------------------------------------------------

// SameCalendarDay reports whether both instants fall on the same calendar
// day in local time. This is the cache-validity rule: an entry written at
// 23:59:59 is stale two seconds later, while one written at 00:00:01 stays
// valid for almost a full day. Deliberately not a rolling 24h TTL.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// -----------------------------------------------------------------------------

// HoursSince returns the rounded whole hours elapsed since the unix-milli
// timestamp, used for the cacheAge provenance field.
func HoursSince(unixMilli int64, now time.Time) int {
	elapsed := now.Sub(time.UnixMilli(unixMilli))
	return int(math.Round(elapsed.Hours()))
}
