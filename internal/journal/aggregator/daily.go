package aggregator

import (
	"time"

	"golang-crypto-journal/internal/entity"
	"golang-crypto-journal/pkg/utils"

	"github.com/shopspring/decimal"
)

// DailyPnL sums the PnL of closed positions per local calendar date
// (YYYY-MM-DD of CreatedAt). Days without positions have no key, which keeps
// "no trades" apart from a net-zero day.
func DailyPnL(closed []entity.Position) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, p := range closed {
		key := utils.DateKey(p.CreatedAt)
		out[key] = out[key].Add(p.PnL)
	}
	return out
}

// WinRate returns the percentage of positions with a strictly positive PnL,
// or 0 for an empty input.
func WinRate(closed []entity.Position) float64 {
	if len(closed) == 0 {
		return 0
	}
	wins := 0
	for _, p := range closed {
		if p.IsWin() {
			wins++
		}
	}
	return float64(wins) / float64(len(closed)) * 100
}

// TotalPnL sums the PnL of positions.
func TotalPnL(positions []entity.Position) decimal.Decimal {
	total := decimal.Zero
	for _, p := range positions {
		total = total.Add(p.PnL)
	}
	return total
}

// Summary holds the account level totals shown next to the journal.
type Summary struct {
	RealizedPnL   decimal.Decimal `json:"realized_pnl"`
	UnrealizedPnL decimal.Decimal `json:"unrealized_pnl"`
	WinRate       float64         `json:"win_rate"`
	ClosedCount   int             `json:"closed_count"`
	HoldingCount  int             `json:"holding_count"`
}

// Summarize computes realized totals from closed positions and unrealized
// totals from holdings. The win rate only counts closed positions.
func Summarize(holding, closed []entity.Position) Summary {
	return Summary{
		RealizedPnL:   TotalPnL(closed),
		UnrealizedPnL: TotalPnL(holding),
		WinRate:       WinRate(closed),
		ClosedCount:   len(closed),
		HoldingCount:  len(holding),
	}
}

// CalendarDay is one cell of a month calendar.
type CalendarDay struct {
	Day     int              `json:"day"`
	Date    string           `json:"date"`
	PnL     *decimal.Decimal `json:"pnl,omitempty"`
	IsToday bool             `json:"is_today"`
}

// MonthCalendar is the realized PnL calendar of one month.
type MonthCalendar struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	// LeadingBlanks is the weekday of the first day (Sunday = 0), i.e. the
	// number of empty cells before day 1 in a Sunday-first grid.
	LeadingBlanks int             `json:"leading_blanks"`
	Days          []CalendarDay   `json:"days"`
	Total         decimal.Decimal `json:"total"`
}

// BuildMonthCalendar lays out the daily PnL of closed positions for the given
// month. Days, "today" and buckets all use the local time zone.
func BuildMonthCalendar(year int, month time.Month, closed []entity.Position, now time.Time) MonthCalendar {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	daily := DailyPnL(closed)

	cal := MonthCalendar{
		Year:          first.Year(),
		Month:         int(first.Month()),
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]CalendarDay, 0, daysInMonth),
		Total:         decimal.Zero,
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.Local)
		key := utils.DateKey(date)
		cell := CalendarDay{Day: day, Date: key, IsToday: utils.SameLocalDay(date, now)}
		if pnl, ok := daily[key]; ok {
			cell.PnL = utils.ToPointer(pnl)
			cal.Total = cal.Total.Add(pnl)
		}
		cal.Days = append(cal.Days, cell)
	}
	return cal
}
