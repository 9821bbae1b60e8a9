package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKey(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.Local)
	assert.Equal(t, "2024-03-05", DateKey(ts))
}

func TestSameLocalDay(t *testing.T) {
	morning := time.Date(2024, time.March, 5, 0, 1, 0, 0, time.Local)
	night := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.Local)
	next := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.Local)

	assert.True(t, SameLocalDay(morning, night))
	assert.False(t, SameLocalDay(night, next))
}

func TestToPointer(t *testing.T) {
	p := ToPointer(42)
	assert.Equal(t, 42, *p)
}
