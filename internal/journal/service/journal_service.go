package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang-crypto-journal/internal/entity"
	"golang-crypto-journal/internal/journal/aggregator"
	"golang-crypto-journal/internal/journal/config"
	"golang-crypto-journal/internal/journal/dto"
	"golang-crypto-journal/internal/journal/engine"
	"golang-crypto-journal/internal/journal/report"
	"golang-crypto-journal/internal/journal/repository"
	"golang-crypto-journal/internal/journal/store"
	"golang-crypto-journal/pkg/common"
	"golang-crypto-journal/pkg/logger"
	"golang-crypto-journal/pkg/telegram"
	"golang-crypto-journal/pkg/utils"

	"github.com/google/uuid"
)

const coinSearchLimit = 10

var (
	// ErrIncompleteInput is returned when a position is submitted before its
	// numbers can be calculated.
	ErrIncompleteInput = errors.New("position inputs are incomplete or invalid")
	// ErrInvalidStatus is returned for a status other than CLOSED or HOLDING.
	ErrInvalidStatus = errors.New("invalid position status")
	// ErrEmptySymbol is returned when a position has no symbol.
	ErrEmptySymbol = errors.New("symbol is required")
	// ErrInvalidDate is returned for a report date not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid report date")
	// ErrTelegramDisabled is returned when no Telegram bot is configured.
	ErrTelegramDisabled = errors.New("telegram delivery is not configured")
)

// EventPublisher receives journal change notifications.
type EventPublisher interface {
	Publish(event dto.Event)
}

// JournalService defines the journal use cases.
type JournalService interface {
	Preview(ctx context.Context, req *dto.PositionRequest) engine.Result
	CreatePosition(ctx context.Context, req *dto.PositionRequest) (*entity.Position, error)
	ListPositions(ctx context.Context) *dto.PositionsResponse
	RemovePosition(ctx context.Context, id string) bool
	UpdateNote(ctx context.Context, id, note string) bool
	Stats(ctx context.Context) aggregator.Summary
	Calendar(ctx context.Context, year int, month time.Month) aggregator.MonthCalendar
	GenerateReport(ctx context.Context, req *dto.ReportRequest) (string, error)
	GenerateEnhancedReport(ctx context.Context, req *dto.ReportRequest) (string, error)
	SendReportTelegram(ctx context.Context, req *dto.ReportRequest) (string, error)
	SearchCoins(ctx context.Context, query string) ([]entity.Quote, error)
}

type journalService struct {
	cfg           *config.Config
	store         *store.PositionStore
	quoteRepo     repository.QuoteRepository
	narrativeRepo repository.NarrativeRepository
	notifier      telegram.Notifier
	publisher     EventPublisher
	logger        *logger.Logger
	now           func() time.Time
}

// NewJournalService creates a new journal service. narrativeRepo, notifier
// and publisher are optional.
func NewJournalService(
	cfg *config.Config,
	positionStore *store.PositionStore,
	quoteRepo repository.QuoteRepository,
	narrativeRepo repository.NarrativeRepository,
	notifier telegram.Notifier,
	publisher EventPublisher,
	log *logger.Logger,
) JournalService {
	return &journalService{
		cfg:           cfg,
		store:         positionStore,
		quoteRepo:     quoteRepo,
		narrativeRepo: narrativeRepo,
		notifier:      notifier,
		publisher:     publisher,
		logger:        log,
		now:           time.Now,
	}
}

// Preview computes PnL and ROI for a half-filled form without storing anything.
func (s *journalService) Preview(ctx context.Context, req *dto.PositionRequest) engine.Result {
	return engine.CalculateRaw(req.RawInput())
}

// CreatePosition finalizes the form into a position and prepends it to the journal.
func (s *journalService) CreatePosition(ctx context.Context, req *dto.PositionRequest) (*entity.Position, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return nil, ErrEmptySymbol
	}
	if !req.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	in, ok := engine.Parse(req.RawInput())
	if !ok {
		return nil, ErrIncompleteInput
	}

	position := engine.Recompute(entity.Position{
		ID:         uuid.NewString(),
		Symbol:     symbol,
		AssetRef:   strings.TrimSpace(req.AssetRef),
		Kind:       in.Kind,
		Direction:  in.Direction,
		Status:     req.Status,
		EntryPrice: in.EntryPrice,
		ExitPrice:  in.ExitPrice,
		Principal:  in.Principal,
		Leverage:   in.Leverage,
		Note:       req.Note,
		CreatedAt:  s.now(),
	})
	s.store.Insert(position)

	s.logger.InfoContext(ctx, "Position created",
		logger.StringField("id", position.ID),
		logger.StringField("symbol", position.Symbol),
		logger.StringField("status", string(position.Status)),
		logger.StringField("pnl", position.PnL.StringFixed(2)),
	)
	s.publish(common.EventPositionsChanged, 1)

	return &position, nil
}

// ListPositions returns the holding and closed views in journal order.
func (s *journalService) ListPositions(ctx context.Context) *dto.PositionsResponse {
	holding, closed := s.store.Partition()
	return &dto.PositionsResponse{Holding: holding, Closed: closed}
}

// RemovePosition deletes a position. Unknown ids are ignored.
func (s *journalService) RemovePosition(ctx context.Context, id string) bool {
	removed := s.store.Remove(id)
	if removed {
		s.logger.InfoContext(ctx, "Position removed", logger.StringField("id", id))
		s.publish(common.EventPositionsChanged, 1)
	} else {
		s.logger.DebugContext(ctx, "Remove ignored, position not found", logger.StringField("id", id))
	}
	return removed
}

// UpdateNote replaces the note of a position. Unknown ids are ignored.
func (s *journalService) UpdateNote(ctx context.Context, id, note string) bool {
	updated := s.store.UpdateNote(id, note)
	if updated {
		s.publish(common.EventPositionsChanged, 1)
	} else {
		s.logger.DebugContext(ctx, "Note update ignored, position not found", logger.StringField("id", id))
	}
	return updated
}

func (s *journalService) Stats(ctx context.Context) aggregator.Summary {
	return aggregator.Summarize(s.store.Partition())
}

func (s *journalService) Calendar(ctx context.Context, year int, month time.Month) aggregator.MonthCalendar {
	return aggregator.BuildMonthCalendar(year, month, s.store.Closed(), s.now())
}

// GenerateReport renders the markdown journal of every position for the
// requested day.
func (s *journalService) GenerateReport(ctx context.Context, req *dto.ReportRequest) (string, error) {
	date, err := s.reportDate(req.Date)
	if err != nil {
		return "", err
	}
	holding, closed := s.store.Partition()
	return report.Render(holding, closed, req.Summary, date), nil
}

// GenerateEnhancedReport asks the narrative generator for a prose report.
// Generator failures come back as a labeled string instead of an error.
func (s *journalService) GenerateEnhancedReport(ctx context.Context, req *dto.ReportRequest) (string, error) {
	if _, err := s.reportDate(req.Date); err != nil {
		return "", err
	}
	if s.narrativeRepo == nil {
		return narrativeFailure(errors.New("narrative generator is not configured")), nil
	}

	holding, closed := s.store.Partition()
	narrativeReq := &dto.NarrativeRequest{
		Summary:   aggregator.Summarize(holding, closed),
		Notes:     req.Summary,
		Positions: append(closed, holding...),
	}

	if s.cfg.Journal.ReportTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Journal.ReportTimeout)
		defer cancel()
	}

	text, err := s.narrativeRepo.GenerateJournalReport(ctx, narrativeReq)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate enhanced report", logger.ErrorField(err))
		return narrativeFailure(err), nil
	}
	return text, nil
}

// SendReportTelegram renders the markdown report and delivers it to the
// configured Telegram chat.
func (s *journalService) SendReportTelegram(ctx context.Context, req *dto.ReportRequest) (string, error) {
	if s.notifier == nil {
		return "", ErrTelegramDisabled
	}
	text, err := s.GenerateReport(ctx, req)
	if err != nil {
		return "", err
	}
	if err := s.notifier.SendMessage(text); err != nil {
		s.logger.ErrorContext(ctx, "Failed to send report to telegram", logger.ErrorField(err))
		return "", fmt.Errorf("failed to send report to telegram: %w", err)
	}
	return text, nil
}

// SearchCoins looks up coins for the symbol autocomplete.
func (s *journalService) SearchCoins(ctx context.Context, query string) ([]entity.Quote, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []entity.Quote{}, nil
	}
	quotes, err := s.quoteRepo.SearchCoins(ctx, query, coinSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search coins: %w", err)
	}
	return quotes, nil
}

func (s *journalService) reportDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.now(), nil
	}
	date, err := time.ParseInLocation(utils.DateKeyLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return date, nil
}

func (s *journalService) publish(eventType string, updated int) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(dto.Event{Type: eventType, Updated: updated, Timestamp: s.now()})
}

func narrativeFailure(err error) string {
	return "Report generation failed: " + err.Error()
}
