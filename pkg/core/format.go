package core

import "time"

// TimestampLayout renders as "Oct 18, 2026, 09:05 AM".
const TimestampLayout = "Jan 2, 2006, 03:04 PM"

// FormatTimestamp renders epoch milliseconds for display in loc.
// A nil loc means time.Local.
func FormatTimestamp(ms int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc).Format(TimestampLayout)
}
