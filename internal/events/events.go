package events

import (
	"sync"
	"time"
)

const (
	MatchCreated        = "match.created"
	MatchConfirmed      = "match.confirmed"
	MatchStatusChanged  = "match.status_changed"
	WalletUpdated       = "wallet.updated"
	PayoutRequested     = "payout.requested"
	PayoutStatusChanged = "payout.status_changed"
	PromotionCreated    = "promotion.created"
	PromotionUpdated    = "promotion.updated"
)

type Event struct {
	Type       string    `json:"type"`
	FieldID    string    `json:"field_id,omitempty"`
	EntityID   string    `json:"entity_id"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(event Event)
}

// Bus fans events out to in-process subscribers. A subscriber whose buffer
// is full misses the event; writers never block on readers.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan Event
	closed bool
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

func (b *Bus) Publish(event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe returns a channel of future events and a cancel func that
// closes it. Cancel is safe to call more than once.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

// Close ends every subscription.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// Forward drains a subscription into another publisher until the channel
// closes.
func Forward(ch <-chan Event, to Publisher) {
	for event := range ch {
		to.Publish(event)
	}
}
