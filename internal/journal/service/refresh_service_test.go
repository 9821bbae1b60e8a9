package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang-crypto-journal/internal/entity"
	"golang-crypto-journal/internal/journal/config"
	"golang-crypto-journal/internal/journal/engine"
	"golang-crypto-journal/internal/journal/store"
	"golang-crypto-journal/pkg/common"
	"golang-crypto-journal/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func holdingPosition(id, assetRef string) entity.Position {
	return engine.Recompute(entity.Position{
		ID:         id,
		Symbol:     "X",
		AssetRef:   assetRef,
		Kind:       entity.KindFutures,
		Direction:  entity.DirectionLong,
		Status:     entity.StatusHolding,
		EntryPrice: decimal.NewFromInt(100),
		ExitPrice:  decimal.NewFromInt(100),
		Principal:  decimal.NewFromInt(50),
		Leverage:   decimal.NewFromInt(10),
		CreatedAt:  time.Now(),
	})
}

func newRefreshFixture(spec string) (*refreshService, *store.PositionStore, *fakeQuoteRepo, *fakePublisher) {
	cfg := &config.Config{Journal: config.Journal{RefreshSpec: spec, RefreshTimeout: time.Second}}
	s := store.NewPositionStore()
	quotes := &fakeQuoteRepo{}
	pub := &fakePublisher{}
	svc := NewRefreshService(cfg, s, quotes, pub, logger.NewNop()).(*refreshService)
	return svc, s, quotes, pub
}

func TestRefreshService_RefreshNow(t *testing.T) {
	svc, s, quotes, pub := newRefreshFixture("@every 60s")
	s.Insert(holdingPosition("h1", "bitcoin"))
	s.Insert(holdingPosition("h2", "solana"))
	closed := holdingPosition("c1", "bitcoin")
	closed.Status = entity.StatusClosed
	s.Insert(closed)
	quotes.quotes = []entity.Quote{{AssetRef: "bitcoin", Price: decimal.NewFromInt(110)}}

	updated, err := svc.RefreshNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.ElementsMatch(t, []string{"bitcoin", "solana"}, quotes.lastIDs)

	h1, _ := s.Get("h1")
	assert.Equal(t, "50.00", h1.PnL.StringFixed(2))
	assert.Equal(t, "100.00", h1.ROI.StringFixed(2))
	h2, _ := s.Get("h2")
	assert.True(t, h2.PnL.IsZero(), "holding without a quote is untouched")
	c1, _ := s.Get("c1")
	assert.True(t, c1.ExitPrice.Equal(decimal.NewFromInt(100)), "closed positions are never repriced")

	events := pub.snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, common.EventHoldingsRefreshed, events[0].Type)
	assert.Equal(t, 1, events[0].Updated)
}

func TestRefreshService_RefreshNow_NoHoldings(t *testing.T) {
	svc, _, quotes, pub := newRefreshFixture("@every 60s")

	updated, err := svc.RefreshNow(context.Background())
	require.NoError(t, err)
	assert.Zero(t, updated)
	assert.Zero(t, quotes.callCount())
	assert.Empty(t, pub.snapshot())
}

func TestRefreshService_RefreshNow_QuoteFailure(t *testing.T) {
	svc, s, quotes, pub := newRefreshFixture("@every 60s")
	s.Insert(holdingPosition("h1", "bitcoin"))
	before, _ := s.Get("h1")
	quotes.err = errors.New("rate limited")

	updated, err := svc.RefreshNow(context.Background())
	assert.Error(t, err)
	assert.Zero(t, updated)

	after, _ := s.Get("h1")
	assert.Equal(t, before, after)
	assert.Empty(t, pub.snapshot())
}

func TestRefreshService_StartStop(t *testing.T) {
	svc, s, quotes, _ := newRefreshFixture("@every 1s")
	s.Insert(holdingPosition("h1", "bitcoin"))
	quotes.quotes = []entity.Quote{{AssetRef: "bitcoin", Price: decimal.NewFromInt(120)}}

	require.NoError(t, svc.Start(context.Background()))
	require.Eventually(t, func() bool { return quotes.callCount() > 0 }, 3*time.Second, 50*time.Millisecond)
	svc.Stop()

	h1, _ := s.Get("h1")
	assert.True(t, h1.ExitPrice.Equal(decimal.NewFromInt(120)))
}

func TestRefreshService_StartInvalidSpec(t *testing.T) {
	svc, _, _, _ := newRefreshFixture("every minute please")

	err := svc.Start(context.Background())
	assert.Error(t, err)
}
