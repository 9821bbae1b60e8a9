package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang-crypto-journal/internal/entity"
	"golang-crypto-journal/internal/journal/config"
	"golang-crypto-journal/internal/journal/dto"
	"golang-crypto-journal/pkg/common"
	"golang-crypto-journal/pkg/logger"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	coinGeckoMaxPerPage = 250
	marketListCacheKey  = "coin_markets"
)

type coinGeckoRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	inmemoryCache  *cache.Cache
	redisClient    *redis.Client
}

// NewCoinGeckoRepository creates a QuoteRepository backed by the CoinGecko
// markets API. The market list used for coin search is cached in process and,
// when redisClient is not nil, in Redis as well.
func NewCoinGeckoRepository(cfg *config.Config, log *logger.Logger, redisClient *redis.Client) QuoteRepository {
	perMinute := cfg.CoinGecko.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}
	secondsPerRequest := time.Minute / time.Duration(perMinute)
	return &coinGeckoRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.CoinGecko.Timeout,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		inmemoryCache:  cache.New(cfg.CoinGecko.MarketCacheDuration, 2*cfg.CoinGecko.MarketCacheDuration),
		redisClient:    redisClient,
	}
}

// GetQuotes fetches current prices for the given CoinGecko ids.
func (r *coinGeckoRepository) GetQuotes(ctx context.Context, assetRefs []string) ([]entity.Quote, error) {
	ids := dedupe(assetRefs)
	if len(ids) == 0 {
		return nil, nil
	}

	var quotes []entity.Quote
	for start := 0; start < len(ids); start += coinGeckoMaxPerPage {
		end := start + coinGeckoMaxPerPage
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		markets, err := r.fetchMarkets(ctx, url.Values{
			"ids":      {strings.Join(batch, ",")},
			"per_page": {strconv.Itoa(len(batch))},
		})
		if err != nil {
			return quotes, err
		}
		quotes = append(quotes, toQuotes(markets)...)
	}

	r.log.DebugContext(ctx, "CoinGecko quotes fetched",
		logger.IntField("requested", len(ids)),
		logger.IntField("received", len(quotes)))

	return quotes, nil
}

// SearchCoins filters the cached top market list by symbol or name.
func (r *coinGeckoRepository) SearchCoins(ctx context.Context, query string, limit int) ([]entity.Quote, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []entity.Quote{}, nil
	}

	markets, err := r.marketList(ctx)
	if err != nil {
		return nil, err
	}

	matches := []entity.Quote{}
	for _, q := range toQuotes(markets) {
		if limit > 0 && len(matches) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(q.Symbol), query) || strings.Contains(strings.ToLower(q.Name), query) {
			matches = append(matches, q)
		}
	}
	return matches, nil
}

func (r *coinGeckoRepository) marketList(ctx context.Context) ([]dto.CoinGeckoMarket, error) {
	if cached, ok := r.inmemoryCache.Get(marketListCacheKey); ok {
		return cached.([]dto.CoinGeckoMarket), nil
	}

	redisKey := fmt.Sprintf(common.RedisKeyCoinMarkets, r.cfg.CoinGecko.VsCurrency)
	if r.redisClient != nil {
		raw, err := r.redisClient.Get(ctx, redisKey).Bytes()
		switch {
		case err == nil:
			var markets []dto.CoinGeckoMarket
			if errJSON := json.Unmarshal(raw, &markets); errJSON == nil {
				r.inmemoryCache.SetDefault(marketListCacheKey, markets)
				return markets, nil
			}
			r.log.Warn("Discarding malformed market list from Redis", logger.StringField("key", redisKey))
		case !errors.Is(err, redis.Nil):
			r.log.Error("Failed to read market list from Redis", logger.ErrorField(err), logger.StringField("key", redisKey))
		}
	}

	markets, err := r.fetchMarkets(ctx, url.Values{
		"per_page": {strconv.Itoa(r.cfg.CoinGecko.MarketListSize)},
	})
	if err != nil {
		return nil, err
	}

	r.inmemoryCache.SetDefault(marketListCacheKey, markets)
	if r.redisClient != nil {
		if payload, err := json.Marshal(markets); err == nil {
			if err := r.redisClient.Set(ctx, redisKey, payload, r.cfg.CoinGecko.MarketCacheDuration).Err(); err != nil {
				r.log.Error("Failed to cache market list in Redis", logger.ErrorField(err), logger.StringField("key", redisKey))
			}
		}
	}
	return markets, nil
}

func (r *coinGeckoRepository) fetchMarkets(ctx context.Context, params url.Values) ([]dto.CoinGeckoMarket, error) {
	params.Set("vs_currency", r.cfg.CoinGecko.VsCurrency)
	params.Set("order", "market_cap_desc")
	params.Set("page", "1")
	params.Set("sparkline", "false")

	body, err := r.sendRequest(ctx, strings.TrimRight(r.cfg.CoinGecko.BaseURL, "/")+"/coins/markets?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var markets []dto.CoinGeckoMarket
	if err := json.Unmarshal(body, &markets); err != nil {
		return nil, fmt.Errorf("failed to decode CoinGecko markets: %w", err)
	}
	return markets, nil
}

func (r *coinGeckoRepository) sendRequest(ctx context.Context, endpoint string) ([]byte, error) {
	fields := []zap.Field{
		zap.String("url", endpoint),
		zap.Int("max_request_per_minute", r.cfg.CoinGecko.MaxRequestPerMinute),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.cfg.CoinGecko.APIKey != "" {
		req.Header.Set("x-cg-demo-api-key", r.cfg.CoinGecko.APIKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to CoinGecko API", fields...)
		return nil, fmt.Errorf("failed to send request to CoinGecko API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.ErrorContext(ctx, "Received non-OK response from CoinGecko API", fields...)
		return nil, fmt.Errorf("received non-OK response from CoinGecko API: %d - %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read CoinGecko response body: %w", err)
	}
	return body, nil
}

func toQuotes(markets []dto.CoinGeckoMarket) []entity.Quote {
	quotes := make([]entity.Quote, 0, len(markets))
	for _, m := range markets {
		if m.CurrentPrice == nil {
			continue
		}
		q := entity.Quote{
			AssetRef: m.ID,
			Symbol:   strings.ToUpper(m.Symbol),
			Name:     m.Name,
			Price:    decimal.NewFromFloat(*m.CurrentPrice),
		}
		if m.PriceChangePercentage24h != nil {
			q.Change24h = *m.PriceChangePercentage24h
		}
		quotes = append(quotes, q)
	}
	return quotes
}

func dedupe(refs []string) []string {
	seen := make(map[string]struct{}, len(refs))
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
