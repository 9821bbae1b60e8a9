package report

import (
	"fmt"
	"strings"
	"time"

	"golang-crypto-journal/internal/entity"
	"golang-crypto-journal/internal/journal/aggregator"
	"golang-crypto-journal/pkg/utils"

	"github.com/shopspring/decimal"
)

const (
	EmptySummaryPlaceholder = "(No review written for today)"
	EmptyNotePlaceholder    = "-"

	headerTitle   = "# 📅 Trading Journal - %s\n\n"
	headerSummary = "## 📝 Daily Review\n"
	headerStats   = "## 📊 Account Stats\n"
	headerClosed  = "## ✅ Closed Trades\n"
	headerHolding = "## ⏳ Open Positions\n"
)

// Render builds the markdown journal for the given day: the free-text
// summary, account stats and one table per non-empty partition. The output
// only depends on its arguments.
func Render(holding, closed []entity.Position, summary string, date time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf(headerTitle, utils.DateKey(date)))

	b.WriteString(headerSummary)
	if strings.TrimSpace(summary) == "" {
		b.WriteString(EmptySummaryPlaceholder)
	} else {
		b.WriteString(summary)
	}
	b.WriteString("\n\n")

	stats := aggregator.Summarize(holding, closed)
	b.WriteString(headerStats)
	b.WriteString(fmt.Sprintf("- **Realized PnL**: %s\n", FormatMoney(stats.RealizedPnL)))
	b.WriteString(fmt.Sprintf("- **Unrealized PnL**: %s\n", FormatMoney(stats.UnrealizedPnL)))
	b.WriteString(fmt.Sprintf("- **Win Rate (closed only)**: %.1f%%\n", stats.WinRate))
	b.WriteString(fmt.Sprintf("- **Trades**: Closed %d | Holding %d\n\n", stats.ClosedCount, stats.HoldingCount))

	if len(closed) > 0 {
		b.WriteString(headerClosed)
		writeTable(&b, closed, "Exit")
		b.WriteString("\n")
	}
	if len(holding) > 0 {
		b.WriteString(headerHolding)
		writeTable(&b, holding, "Current")
		b.WriteString("\n")
	}

	return b.String()
}

func writeTable(b *strings.Builder, positions []entity.Position, exitLabel string) {
	b.WriteString(fmt.Sprintf("| Symbol | Type | Price (Entry / %s) | Size | PnL | Note |\n", exitLabel))
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, p := range positions {
		icon := "🟢"
		if p.PnL.Round(2).IsNegative() {
			icon = "🔴"
		}
		b.WriteString(fmt.Sprintf("| **%s** | %s | $%s / $%s | %s | %s %s | %s |\n",
			p.Symbol,
			TypeLabel(p),
			p.EntryPrice.String(),
			p.ExitPrice.String(),
			SizeLabel(p),
			icon,
			FormatSigned(p.PnL),
			FormatNote(p.Note),
		))
	}
}

// FormatSigned renders v with two decimals and an explicit sign; zero and
// positive values get a "+".
func FormatSigned(v decimal.Decimal) string {
	r := v.Round(2)
	if r.IsNegative() {
		return "-" + r.Abs().StringFixed(2)
	}
	return "+" + r.StringFixed(2)
}

// FormatMoney renders v as a signed dollar amount, e.g. "+$12.50" or "-$3.00".
func FormatMoney(v decimal.Decimal) string {
	s := FormatSigned(v)
	return s[:1] + "$" + s[1:]
}

// TypeLabel returns "Spot Long", "Futures Short", etc.
func TypeLabel(p entity.Position) string {
	kind := "Spot"
	if p.Kind == entity.KindFutures {
		kind = "Futures"
	}
	dir := "Long"
	if p.Direction == entity.DirectionShort {
		dir = "Short"
	}
	return kind + " " + dir
}

// SizeLabel shows the principal for spot and the leverage for futures.
func SizeLabel(p entity.Position) string {
	if p.Kind == entity.KindFutures {
		return p.Leverage.String() + "x"
	}
	return "$" + p.Principal.String()
}

// FormatNote flattens a note onto a single table cell.
func FormatNote(note string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return EmptyNotePlaceholder
	}
	note = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "|", "\\|").Replace(note)
	return note
}
