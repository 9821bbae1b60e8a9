package entity

import "github.com/shopspring/decimal"

// Quote is a price snapshot for one asset from the quote provider.
type Quote struct {
	AssetRef  string          `json:"asset_ref"`
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Change24h float64         `json:"change_24h"`
}
