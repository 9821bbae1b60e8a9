package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang-crypto-journal/internal/journal/dto"
	"golang-crypto-journal/internal/journal/report"
)

// BuildJournalReportPrompt builds the prompt asking the model to rewrite the
// day's journal as a structured markdown report.
func BuildJournalReportPrompt(req *dto.NarrativeRequest, language string) string {
	positionsJSON, err := json.MarshalIndent(req.Positions, "", "  ")
	if err != nil {
		positionsJSON = []byte("[]")
	}

	notes := strings.TrimSpace(req.Notes)
	if notes == "" {
		notes = "(no notes)"
	}

	promptTemplate := `You are a professional crypto trading analyst.
Turn today's trading journal into a clear, structured and professional Markdown report. Answer in %s.

Raw data for today:

**Overall stats:**
- Realized PnL: %s USD
- Unrealized PnL: %s USD
- Win rate (closed trades): %.1f%%
- Trades: %d closed, %d holding

**Raw notes:**
%s

**Trade history (JSON):**
%s

**Requirements:**
1. Start with a catchy title that sums up the day (e.g. "Whipsawed both ways", "Steady gains", "Risk control needs work").
2. Write a short "Market review and summary" paragraph that combines my notes with the results. Sound like a seasoned trader: professional but honest.
3. Add a Markdown table of the trades with the columns: Symbol, Type, Direction, Entry, Exit, Leverage, ROI %%, PnL ($). Start each row with ✅ or ❌ depending on the PnL.
4. Add a "Key takeaways" section with 3 lessons or observations based on the data and notes.
5. Output Markdown only. Do not include JSON code blocks.`

	return fmt.Sprintf(promptTemplate,
		language,
		report.FormatSigned(req.Summary.RealizedPnL),
		report.FormatSigned(req.Summary.UnrealizedPnL),
		req.Summary.WinRate,
		req.Summary.ClosedCount,
		req.Summary.HoldingCount,
		notes,
		string(positionsJSON),
	)
}
