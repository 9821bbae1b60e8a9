package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang-crypto-journal/internal/entity"
	"golang-crypto-journal/internal/journal/aggregator"
	"golang-crypto-journal/internal/journal/config"
	"golang-crypto-journal/internal/journal/dto"
	"golang-crypto-journal/internal/journal/engine"
	"golang-crypto-journal/internal/journal/service"
	"golang-crypto-journal/internal/journal/store"
	"golang-crypto-journal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuoteRepo struct {
	quotes []entity.Quote
	err    error
}

func (s *stubQuoteRepo) GetQuotes(ctx context.Context, assetRefs []string) ([]entity.Quote, error) {
	return s.quotes, s.err
}

func (s *stubQuoteRepo) SearchCoins(ctx context.Context, query string, limit int) ([]entity.Quote, error) {
	return s.quotes, s.err
}

type testServer struct {
	echo   *echo.Echo
	store  *store.PositionStore
	quotes *stubQuoteRepo
}

func newTestServer() *testServer {
	log := logger.NewNop()
	cfg := &config.Config{Journal: config.Journal{RefreshSpec: "@every 60s"}}
	s := store.NewPositionStore()
	quotes := &stubQuoteRepo{}
	journalSvc := service.NewJournalService(cfg, s, quotes, nil, nil, nil, log)
	refreshSvc := service.NewRefreshService(cfg, s, quotes, nil, log)

	e := echo.New()
	api := e.Group("/api/v1")
	NewPositionHandler(journalSvc, refreshSvc, log).RegisterRoutes(api.Group("/positions"))
	NewStatsHandler(journalSvc, log).RegisterRoutes(api)
	NewReportHandler(journalSvc, log).RegisterRoutes(api.Group("/reports"))

	return &testServer{echo: e, store: s, quotes: quotes}
}

func (ts *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)
	return rec
}

const closedSpot = `{"symbol":"btc","asset_ref":"bitcoin","kind":"SPOT","status":"CLOSED","entry_price":"100","exit_price":"110","principal":"1000","note":"clean break"}`

func TestPreview(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/api/v1/positions/preview",
		`{"kind":"FUTURES","direction":"SHORT","entry_price":"100","exit_price":"90","principal":"50","leverage":"10"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res engine.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Pending)
	assert.Equal(t, "50.00", res.PnL.StringFixed(2))
	assert.Equal(t, "100.00", res.ROI.StringFixed(2))

	rec = ts.do(http.MethodPost, "/api/v1/positions/preview", `{"kind":"SPOT","entry_price":"100","principal":"1000"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Pending)
}

func TestCreateAndListPositions(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/api/v1/positions", closedSpot)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created entity.Position
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "BTC", created.Symbol)
	assert.Equal(t, "100.00", created.PnL.StringFixed(2))

	rec = ts.do(http.MethodGet, "/api/v1/positions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list dto.PositionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list.Holding)
	require.Len(t, list.Closed, 1)
	assert.Equal(t, created.ID, list.Closed[0].ID)
}

func TestCreatePosition_Incomplete(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/api/v1/positions", `{"symbol":"btc","kind":"SPOT","status":"CLOSED","entry_price":"100","principal":"1000"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "incomplete")
	assert.Zero(t, ts.store.Len())
}

func TestCreatePosition_BadJSON(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/api/v1/positions", `{"symbol":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteAndNote(t *testing.T) {
	ts := newTestServer()
	rec := ts.do(http.MethodPost, "/api/v1/positions", closedSpot)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created entity.Position
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = ts.do(http.MethodPut, "/api/v1/positions/"+created.ID+"/note", `{"note":"moved stop too early"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	got, _ := ts.store.Get(created.ID)
	assert.Equal(t, "moved stop too early", got.Note)

	rec = ts.do(http.MethodPut, "/api/v1/positions/missing/note", `{"note":"x"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodDelete, "/api/v1/positions/missing", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, ts.store.Len())

	rec = ts.do(http.MethodDelete, "/api/v1/positions/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, ts.store.Len())
}

func TestRefresh(t *testing.T) {
	ts := newTestServer()
	rec := ts.do(http.MethodPost, "/api/v1/positions", strings.Replace(closedSpot, "CLOSED", "HOLDING", 1))
	require.Equal(t, http.StatusCreated, rec.Code)
	ts.quotes.quotes = []entity.Quote{{AssetRef: "bitcoin", Price: decimal.NewFromInt(120)}}

	rec = ts.do(http.MethodPost, "/api/v1/positions/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.RefreshResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Updated)

	ts.quotes.err = errors.New("coingecko down")
	rec = ts.do(http.MethodPost, "/api/v1/positions/refresh", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestStatsAndCalendar(t *testing.T) {
	ts := newTestServer()
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/v1/positions", closedSpot).Code)

	rec := ts.do(http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats aggregator.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, "100.00", stats.RealizedPnL.StringFixed(2))
	assert.InDelta(t, 100.0, stats.WinRate, 1e-9)

	rec = ts.do(http.MethodGet, "/api/v1/calendar?year=2024&month=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var cal aggregator.MonthCalendar
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cal))
	assert.Len(t, cal.Days, 29)
	assert.Equal(t, 4, cal.LeadingBlanks)

	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/v1/calendar?month=13", "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/v1/calendar?year=abc", "").Code)
}

func TestSearchCoins(t *testing.T) {
	ts := newTestServer()
	ts.quotes.quotes = []entity.Quote{{AssetRef: "bitcoin", Symbol: "BTC", Name: "Bitcoin"}}

	rec := ts.do(http.MethodGet, "/api/v1/coins/search?q=bit", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var quotes []entity.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quotes))
	require.Len(t, quotes, 1)
	assert.Equal(t, "bitcoin", quotes[0].AssetRef)

	ts.quotes.err = errors.New("boom")
	assert.Equal(t, http.StatusBadGateway, ts.do(http.MethodGet, "/api/v1/coins/search?q=bit", "").Code)
}

func TestReports(t *testing.T) {
	ts := newTestServer()
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/v1/positions", closedSpot).Code)

	rec := ts.do(http.MethodPost, "/api/v1/reports", `{"summary":"patient day","date":"2024-05-01"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "text/markdown"))
	body := rec.Body.String()
	assert.Contains(t, body, "2024-05-01")
	assert.Contains(t, body, "patient day")
	assert.Contains(t, body, "| **BTC** |")

	rec = ts.do(http.MethodPost, "/api/v1/reports", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodPost, "/api/v1/reports", `{"date":"yesterday"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/api/v1/reports/enhanced", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Report generation failed:"))

	rec = ts.do(http.MethodPost, "/api/v1/reports/telegram", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
