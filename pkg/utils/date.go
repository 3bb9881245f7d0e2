package utils

import (
	"time"
)

const DateLayout = "2006-01-02"

// TimeNow returns the current time in UTC. Wrapped so services can swap it in tests.
var TimeNow = func() time.Time {
	return time.Now().UTC()
}

// DaysAgo returns the start of the window covering the last n days.
func DaysAgo(now time.Time, n int) time.Time {
	return now.Add(-time.Duration(n) * 24 * time.Hour)
}

// PrettyDate formats t for human readers, e.g. "Mon, 02 Jan 2006 15:04 UTC".
func PrettyDate(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006 15:04 MST")
}
