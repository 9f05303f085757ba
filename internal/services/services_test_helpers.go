package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"matchup/internal/events"
	"matchup/internal/logging"
	"matchup/internal/store"
)

var fixedNow = time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingPublisher) Publish(event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, event := range r.events {
		out = append(out, event.Type)
	}
	return out
}

// failingStore rejects every write while serving reads from the wrapped store.
type failingStore struct {
	store.Store
	err error
}

func (f failingStore) WithTx(context.Context, func(store.Tx) error) error {
	return f.err
}

type fixture struct {
	store      *store.MemoryStore
	events     *recordingPublisher
	matches    *MatchService
	ledger     *LedgerService
	promotions *PromotionService
	fields     *FieldService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	st := store.NewSeededMemoryStore(store.DefaultSeed(fixedNow), fixedNow)
	pub := &recordingPublisher{}
	logger := logging.Discard()
	clock := func() time.Time { return fixedNow }

	matches := NewMatchService(st, pub, logger, 14)
	matches.now = clock
	ledger := NewLedgerService(st, pub, logger)
	ledger.now = clock
	promotions := NewPromotionService(st, pub, logger)
	promotions.now = clock

	return fixture{
		store:      st,
		events:     pub,
		matches:    matches,
		ledger:     ledger,
		promotions: promotions,
		fields:     NewFieldService(st),
	}
}
