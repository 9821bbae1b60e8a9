package dto

import "time"

// Event is pushed to websocket subscribers.
type Event struct {
	Type      string    `json:"type"`
	Updated   int       `json:"updated,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
