// Package engine computes profit-and-loss and return-on-investment for a
// single spot or futures position.
package engine

import (
	"strings"

	"golang-crypto-journal/internal/entity"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Input holds the typed inputs of a PnL calculation.
type Input struct {
	Kind       entity.PositionKind
	Direction  entity.PositionDirection
	EntryPrice decimal.Decimal
	ExitPrice  decimal.Decimal
	Principal  decimal.Decimal
	Leverage   decimal.Decimal
}

// RawInput holds unparsed form values as typed by the user.
type RawInput struct {
	Kind       entity.PositionKind
	Direction  entity.PositionDirection
	EntryPrice string
	ExitPrice  string
	Principal  string
	Leverage   string
}

// Result is the outcome of a calculation. Pending is set when the inputs are
// incomplete or invalid; PnL and ROI are then zero and must not be read as a
// real break-even.
type Result struct {
	PnL     decimal.Decimal `json:"pnl"`
	ROI     decimal.Decimal `json:"roi"`
	Pending bool            `json:"pending"`
}

// pending is the neutral result for inputs that cannot be computed yet.
func pending() Result {
	return Result{PnL: decimal.Zero, ROI: decimal.Zero, Pending: true}
}

// Calculate returns PnL and ROI for in.
//
// Spot ignores direction and leverage. ROI is PnL as a percentage of the
// principal and is zero when the principal is zero. Inputs that would divide
// by a zero entry price, or that are out of domain (negative prices or
// principal, futures leverage below 1), yield the pending result.
func Calculate(in Input) Result {
	if !in.EntryPrice.IsPositive() || in.ExitPrice.IsNegative() || in.Principal.IsNegative() {
		return pending()
	}

	var pnl decimal.Decimal
	switch in.Kind {
	case entity.KindSpot:
		coinSize := in.Principal.Div(in.EntryPrice)
		pnl = in.ExitPrice.Sub(in.EntryPrice).Mul(coinSize)
	case entity.KindFutures:
		if in.Leverage.LessThan(decimal.NewFromInt(1)) {
			return pending()
		}
		positionValue := in.Principal.Mul(in.Leverage)
		coinSize := positionValue.Div(in.EntryPrice)
		switch in.Direction {
		case entity.DirectionLong:
			pnl = in.ExitPrice.Sub(in.EntryPrice).Mul(coinSize)
		case entity.DirectionShort:
			pnl = in.EntryPrice.Sub(in.ExitPrice).Mul(coinSize)
		default:
			return pending()
		}
	default:
		return pending()
	}

	roi := decimal.Zero
	if !in.Principal.IsZero() {
		roi = pnl.Div(in.Principal).Mul(hundred)
	}
	return Result{PnL: pnl, ROI: roi}
}

// Parse converts raw form values into an Input. It reports false when a
// required value is blank, unparsable or out of range: entry price and
// principal must be > 0, exit price >= 0 and futures leverage >= 1. A blank
// leverage on a spot position is fine since spot is always 1x.
func Parse(raw RawInput) (Input, bool) {
	entry, ok := parseDecimal(raw.EntryPrice)
	if !ok || !entry.IsPositive() {
		return Input{}, false
	}
	exit, ok := parseDecimal(raw.ExitPrice)
	if !ok || exit.IsNegative() {
		return Input{}, false
	}
	principal, ok := parseDecimal(raw.Principal)
	if !ok || !principal.IsPositive() {
		return Input{}, false
	}

	in := Input{
		Kind:       raw.Kind,
		Direction:  raw.Direction,
		EntryPrice: entry,
		ExitPrice:  exit,
		Principal:  principal,
		Leverage:   decimal.NewFromInt(1),
	}

	switch raw.Kind {
	case entity.KindSpot:
		in.Direction = entity.DirectionLong
	case entity.KindFutures:
		lev, ok := parseDecimal(raw.Leverage)
		if !ok || lev.LessThan(decimal.NewFromInt(1)) {
			return Input{}, false
		}
		if !raw.Direction.Valid() {
			return Input{}, false
		}
		in.Leverage = lev
	default:
		return Input{}, false
	}
	return in, true
}

// CalculateRaw parses raw and calculates it, returning the pending result
// when the inputs are incomplete.
func CalculateRaw(raw RawInput) Result {
	in, ok := Parse(raw)
	if !ok {
		return pending()
	}
	return Calculate(in)
}

// Reprice returns a copy of p with ExitPrice set to price and PnL/ROI
// recomputed from the position's own fields.
func Reprice(p entity.Position, price decimal.Decimal) entity.Position {
	p.ExitPrice = price
	return Recompute(p)
}

// Recompute returns a copy of p whose PnL and ROI match its raw fields.
func Recompute(p entity.Position) entity.Position {
	res := Calculate(InputOf(p))
	p.PnL = res.PnL
	p.ROI = res.ROI
	return p
}

// InputOf extracts the calculation inputs of a position.
func InputOf(p entity.Position) Input {
	return Input{
		Kind:       p.Kind,
		Direction:  p.Direction,
		EntryPrice: p.EntryPrice,
		ExitPrice:  p.ExitPrice,
		Principal:  p.Principal,
		Leverage:   p.Leverage,
	}
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
