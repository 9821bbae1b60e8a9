package service

import (
	"context"
	"fmt"
	"time"

	"golang-crypto-journal/internal/journal/config"
	"golang-crypto-journal/internal/journal/dto"
	"golang-crypto-journal/internal/journal/repository"
	"golang-crypto-journal/internal/journal/store"
	"golang-crypto-journal/pkg/common"
	"golang-crypto-journal/pkg/logger"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// RefreshService keeps HOLDING positions priced at the latest quote.
type RefreshService interface {
	Start(ctx context.Context) error
	Stop()
	RefreshNow(ctx context.Context) (int, error)
}

type refreshService struct {
	cfg       *config.Config
	store     *store.PositionStore
	quoteRepo repository.QuoteRepository
	publisher EventPublisher
	logger    *logger.Logger
	cron      *cron.Cron
}

// NewRefreshService creates a new price refresh service. publisher is optional.
func NewRefreshService(cfg *config.Config, positionStore *store.PositionStore, quoteRepo repository.QuoteRepository, publisher EventPublisher, log *logger.Logger) RefreshService {
	return &refreshService{
		cfg:       cfg,
		store:     positionStore,
		quoteRepo: quoteRepo,
		publisher: publisher,
		logger:    log,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Start schedules the refresh job on cfg.Journal.RefreshSpec. Jobs run with a
// context derived from ctx.
func (s *refreshService) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.cfg.Journal.RefreshSpec, func() {
		jobCtx := ctx
		if s.cfg.Journal.RefreshTimeout > 0 {
			var cancel context.CancelFunc
			jobCtx, cancel = context.WithTimeout(ctx, s.cfg.Journal.RefreshTimeout)
			defer cancel()
		}
		if _, err := s.RefreshNow(jobCtx); err != nil {
			s.logger.Warn("Price refresh skipped", logger.ErrorField(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule price refresh %q: %w", s.cfg.Journal.RefreshSpec, err)
	}

	s.cron.Start()
	s.logger.Info("Price refresher started", logger.StringField("spec", s.cfg.Journal.RefreshSpec))
	return nil
}

// Stop halts the scheduler and waits for a running refresh to finish.
func (s *refreshService) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Price refresher stopped")
}

// RefreshNow fetches quotes for every holding and reprices them. A failed
// lookup leaves all positions untouched.
func (s *refreshService) RefreshNow(ctx context.Context) (int, error) {
	refs := s.store.HoldingAssetRefs()
	if len(refs) == 0 {
		return 0, nil
	}

	quotes, err := s.quoteRepo.GetQuotes(ctx, refs)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch quotes: %w", err)
	}

	prices := make(map[string]decimal.Decimal, len(quotes))
	for _, q := range quotes {
		prices[q.AssetRef] = q.Price
	}
	updated := s.store.RefreshPrices(prices)

	s.logger.Debug("Holdings repriced",
		logger.IntField("requested", len(refs)),
		logger.IntField("quoted", len(quotes)),
		logger.IntField("updated", updated),
	)
	if s.publisher != nil && updated > 0 {
		s.publisher.Publish(dto.Event{Type: common.EventHoldingsRefreshed, Updated: updated, Timestamp: time.Now()})
	}
	return updated, nil
}
