package foodlog

import "time"

// Clock supplies the time used for default creation timestamps.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// timestampLayout renders creation times as UTC with millisecond precision
// and a Z suffix.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t the way Create stamps new records.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
