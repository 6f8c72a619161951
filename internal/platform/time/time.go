// Package time contains time related helpers
package time

import "time"

// ISOMillis is the UTC layout with millisecond precision and a Z suffix
const ISOMillis = "2006-01-02T15:04:05.000Z"

// ISO formats t in UTC using ISOMillis
func ISO(t time.Time) string { return t.UTC().Format(ISOMillis) }
