package utils

import "time"

// Timestamps are stored as unix seconds.
func NowUnixSeconds() int64 { return time.Now().Unix() }

// FromUnixSeconds returns the zero time when t<=0 so callers decide how to
// render a missing value.
func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}

func FormatDisplayDate(t int64) string {
	tm := FromUnixSeconds(t)
	if tm.IsZero() {
		return ""
	}
	return tm.Format("2006-01-02")
}

func FormatRFC3339(t int64) string {
	tm := FromUnixSeconds(t)
	if tm.IsZero() {
		return ""
	}
	return tm.Format(time.RFC3339)
}
