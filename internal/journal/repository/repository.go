package repository

import (
	"context"

	"golang-crypto-journal/internal/entity"
	"golang-crypto-journal/internal/journal/dto"
)

// QuoteRepository looks up live prices by asset ref.
type QuoteRepository interface {
	// GetQuotes returns quotes for the requested asset refs. Unknown refs are
	// simply missing from the result.
	GetQuotes(ctx context.Context, assetRefs []string) ([]entity.Quote, error)
	// SearchCoins returns up to limit coins whose symbol or name contains query.
	SearchCoins(ctx context.Context, query string, limit int) ([]entity.Quote, error)
}

// NarrativeRepository turns raw journal data into a written report.
type NarrativeRepository interface {
	GenerateJournalReport(ctx context.Context, req *dto.NarrativeRequest) (string, error)
}
