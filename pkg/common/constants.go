package common

const (
	RedisKeyCoinMarkets = "journal:coin_markets:%s"

	// PriceRefreshSpec is the cron spec of the holding position refresh.
	PriceRefreshSpec = "@every 60s"

	EventHoldingsRefreshed = "holdings_refreshed"
	EventPositionsChanged  = "positions_changed"
)
