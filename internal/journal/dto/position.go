package dto

import (
	"golang-crypto-journal/internal/entity"
	"golang-crypto-journal/internal/journal/engine"
)

// PositionRequest carries the position form as typed by the user. Numeric
// fields are strings so half-typed values reach the engine unchanged.
type PositionRequest struct {
	Symbol     string                   `json:"symbol"`
	AssetRef   string                   `json:"asset_ref"`
	Kind       entity.PositionKind      `json:"kind"`
	Direction  entity.PositionDirection `json:"direction"`
	Status     entity.PositionStatus    `json:"status"`
	EntryPrice string                   `json:"entry_price"`
	ExitPrice  string                   `json:"exit_price"`
	Principal  string                   `json:"principal"`
	Leverage   string                   `json:"leverage"`
	Note       string                   `json:"note"`
}

// RawInput returns the engine input of the request.
func (r *PositionRequest) RawInput() engine.RawInput {
	return engine.RawInput{
		Kind:       r.Kind,
		Direction:  r.Direction,
		EntryPrice: r.EntryPrice,
		ExitPrice:  r.ExitPrice,
		Principal:  r.Principal,
		Leverage:   r.Leverage,
	}
}

// PositionsResponse is the journal split into its two views.
type PositionsResponse struct {
	Holding []entity.Position `json:"holding"`
	Closed  []entity.Position `json:"closed"`
}

// NoteRequest replaces the note of a position.
type NoteRequest struct {
	Note string `json:"note"`
}

// RefreshResponse reports the outcome of a manual price refresh.
type RefreshResponse struct {
	Updated int `json:"updated"`
}
