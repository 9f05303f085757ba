package events

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"matchup/internal/logging"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus()
	a, cancelA := bus.Subscribe(4)
	b, cancelB := bus.Subscribe(4)
	defer cancelA()
	defer cancelB()

	bus.Publish(Event{Type: MatchConfirmed, EntityID: "m1", FieldID: "field1"})

	for _, ch := range []<-chan Event{a, b} {
		select {
		case event := <-ch:
			assert.Equal(t, MatchConfirmed, event.Type)
			assert.False(t, event.OccurredAt.IsZero())
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestBusDropsForSlowSubscriber(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(1)
	defer cancel()

	bus.Publish(Event{Type: WalletUpdated, EntityID: "1"})
	bus.Publish(Event{Type: WalletUpdated, EntityID: "2"})

	event := <-ch
	assert.Equal(t, "1", event.EntityID)
	select {
	case extra := <-ch:
		t.Fatalf("unexpected event %v", extra)
	default:
	}
}

func TestBusCancelClosesChannel(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(1)
	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)
	bus.Publish(Event{Type: MatchCreated})
}

func TestBusClose(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(1)
	bus.Close()
	_, ok := <-ch
	assert.False(t, ok)
	cancel()

	late, _ := bus.Subscribe(1)
	_, ok = <-late
	assert.False(t, ok)
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Publish(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func TestForward(t *testing.T) {
	bus := NewBus()
	ch, _ := bus.Subscribe(4)
	rec := &recorder{}
	done := make(chan struct{})
	go func() {
		Forward(ch, rec)
		close(done)
	}()
	bus.Publish(Event{Type: PayoutRequested})
	bus.Close()
	<-done
	require.Len(t, rec.events, 1)
	assert.Equal(t, PayoutRequested, rec.events[0].Type)
}

type stubChannel struct {
	declareFn func(name, kind string) error
	publishFn func(exchange, key string, msg amqp.Publishing) error
	closed    bool
}

func (s *stubChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp.Table) error {
	if s.declareFn == nil {
		return nil
	}
	return s.declareFn(name, kind)
}

func (s *stubChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if s.publishFn == nil {
		return nil
	}
	return s.publishFn(exchange, key, msg)
}

func (s *stubChannel) Close() error {
	s.closed = true
	return nil
}

func TestAMQPPublisherRoutesByType(t *testing.T) {
	var key string
	var body []byte
	ch := &stubChannel{
		declareFn: func(name, kind string) error {
			assert.Equal(t, "matchup.events", name)
			assert.Equal(t, "topic", kind)
			return nil
		},
		publishFn: func(exchange, k string, msg amqp.Publishing) error {
			assert.Equal(t, "matchup.events", exchange)
			assert.Equal(t, "application/json", msg.ContentType)
			key = k
			body = msg.Body
			return nil
		},
	}
	publisher, err := NewAMQPPublisher(ch, "matchup.events", logging.Discard())
	require.NoError(t, err)

	publisher.Publish(Event{Type: PayoutStatusChanged, EntityID: "p1", FieldID: "field1"})
	assert.Equal(t, PayoutStatusChanged, key)

	var decoded Event
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "p1", decoded.EntityID)

	require.NoError(t, publisher.Close())
	assert.True(t, ch.closed)
}

func TestAMQPPublisherDeclareFailure(t *testing.T) {
	ch := &stubChannel{declareFn: func(string, string) error { return errors.New("denied") }}
	_, err := NewAMQPPublisher(ch, "x", logging.Discard())
	assert.Error(t, err)
}

func TestAMQPPublisherSwallowsPublishErrors(t *testing.T) {
	ch := &stubChannel{publishFn: func(string, string, amqp.Publishing) error { return errors.New("closed") }}
	publisher, err := NewAMQPPublisher(ch, "x", logging.Discard())
	require.NoError(t, err)
	assert.NotPanics(t, func() { publisher.Publish(Event{Type: MatchCreated}) })
}
