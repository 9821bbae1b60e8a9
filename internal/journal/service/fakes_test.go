package service

import (
	"context"
	"sync"

	"golang-crypto-journal/internal/entity"
	"golang-crypto-journal/internal/journal/dto"
)

type fakeQuoteRepo struct {
	mu      sync.Mutex
	quotes  []entity.Quote
	err     error
	calls   int
	lastIDs []string
}

func (f *fakeQuoteRepo) GetQuotes(ctx context.Context, assetRefs []string) ([]entity.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastIDs = assetRefs
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes, nil
}

func (f *fakeQuoteRepo) SearchCoins(ctx context.Context, query string, limit int) ([]entity.Quote, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.quotes) > limit {
		return f.quotes[:limit], nil
	}
	return f.quotes, nil
}

func (f *fakeQuoteRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeNarrativeRepo struct {
	text string
	err  error
	req  *dto.NarrativeRequest
}

func (f *fakeNarrativeRepo) GenerateJournalReport(ctx context.Context, req *dto.NarrativeRequest) (string, error) {
	f.req = req
	return f.text, f.err
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) SendMessage(text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []dto.Event
}

func (f *fakePublisher) Publish(event dto.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakePublisher) snapshot() []dto.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dto.Event(nil), f.events...)
}
