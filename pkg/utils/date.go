package utils

import "time"

// DateKeyLayout is the layout of calendar bucket keys.
const DateKeyLayout = "2006-01-02"

// DateKey returns the local calendar date of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.In(time.Local).Format(DateKeyLayout)
}

// SameLocalDay reports whether a and b fall on the same local calendar day.
func SameLocalDay(a, b time.Time) bool {
	return DateKey(a) == DateKey(b)
}
