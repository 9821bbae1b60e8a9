package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PositionKind is the instrument type of a position.
type PositionKind string

const (
	KindSpot    PositionKind = "SPOT"
	KindFutures PositionKind = "FUTURES"
)

// Valid reports whether k is a known kind.
func (k PositionKind) Valid() bool {
	return k == KindSpot || k == KindFutures
}

// PositionDirection is the side of a position. Spot positions are always long.
type PositionDirection string

const (
	DirectionLong  PositionDirection = "LONG"
	DirectionShort PositionDirection = "SHORT"
)

func (d PositionDirection) Valid() bool {
	return d == DirectionLong || d == DirectionShort
}

// PositionStatus tells whether ExitPrice is a realized exit or a live quote.
type PositionStatus string

const (
	StatusClosed  PositionStatus = "CLOSED"
	StatusHolding PositionStatus = "HOLDING"
)

func (s PositionStatus) Valid() bool {
	return s == StatusClosed || s == StatusHolding
}

// Position is a single journal record.
//
// PnL and ROI are derived from the other numeric fields and are only written
// by the PnL engine. A HOLDING position's ExitPrice is its latest quote.
type Position struct {
	ID         string            `json:"id"`
	Symbol     string            `json:"symbol"`
	AssetRef   string            `json:"asset_ref,omitempty"`
	Kind       PositionKind      `json:"kind"`
	Direction  PositionDirection `json:"direction"`
	Status     PositionStatus    `json:"status"`
	EntryPrice decimal.Decimal   `json:"entry_price"`
	ExitPrice  decimal.Decimal   `json:"exit_price"`
	Principal  decimal.Decimal   `json:"principal"`
	Leverage   decimal.Decimal   `json:"leverage"`
	PnL        decimal.Decimal   `json:"pnl"`
	ROI        decimal.Decimal   `json:"roi"`
	Note       string            `json:"note"`
	CreatedAt  time.Time         `json:"created_at"`
}

// IsHolding reports whether the position is still open.
func (p Position) IsHolding() bool {
	return p.Status == StatusHolding
}

// IsWin reports whether the position made a strictly positive PnL.
func (p Position) IsWin() bool {
	return p.PnL.IsPositive()
}
