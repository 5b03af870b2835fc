package async

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

type BrokerTopicName string

type BrokerMessage struct {
	Event string
	Value any
	Span  trace.Span
}

type InternalBroker interface {
	Subscribe(topic BrokerTopicName) (Subscription, error)
	Unsubscribe(topic BrokerTopicName, subscription Subscription) error
	Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error
	Stop()
}

var _ InternalBroker = (*LocalBroker)(nil)

var (
	ErrTopicNotFound       = errors.New("topic not found")
	ErrSubscriptorNotFound = errors.New("subscriptor not found")
	ErrBrokerStopped       = errors.New("broker stopped")
)

const _defaultReceiverBuffer = 32

// LocalBroker fans messages out to in-process subscribers. Delivery never
// blocks the publisher: a subscriber whose buffer is full misses the message.
type LocalBroker struct {
	mu         sync.RWMutex
	topics     map[BrokerTopicName][]*subscriptor
	bufferSize int
	stopped    bool
}

func NewLocalBroker() *LocalBroker {
	return &LocalBroker{
		topics:     make(map[BrokerTopicName][]*subscriptor),
		bufferSize: _defaultReceiverBuffer,
	}
}

type subscriptor struct {
	mu           sync.Mutex
	closed       bool
	subscription Subscription
}

type Subscription struct {
	ID       string
	Receiver chan BrokerMessage
}

func (b *LocalBroker) Subscribe(topic BrokerTopicName) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stopped {
		return Subscription{}, ErrBrokerStopped
	}

	subscription := Subscription{
		ID:       uuid.NewString(),
		Receiver: make(chan BrokerMessage, b.bufferSize),
	}
	b.topics[topic] = append(b.topics[topic], &subscriptor{subscription: subscription})
	return subscription, nil
}

func (b *LocalBroker) Unsubscribe(topic BrokerTopicName, subscription Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscriptors, ok := b.topics[topic]
	if !ok {
		return ErrTopicNotFound
	}

	index := slices.IndexFunc(subscriptors, func(s *subscriptor) bool { return s.subscription.ID == subscription.ID })
	if index < 0 {
		return ErrSubscriptorNotFound
	}

	subscriptors[index].close()
	b.topics[topic] = slices.Delete(subscriptors, index, index+1)
	return nil
}

// Publish returns ErrTopicNotFound when nobody ever subscribed to the topic.
func (b *LocalBroker) Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error {
	msg.Span = trace.SpanFromContext(ctx)

	b.mu.RLock()
	subscriptors, ok := b.topics[topic]
	targets := slices.Clone(subscriptors)
	b.mu.RUnlock()

	if !ok {
		return ErrTopicNotFound
	}

	for _, s := range targets {
		s.deliver(msg)
	}
	return nil
}

func (b *LocalBroker) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopped = true
	for topic, subscriptors := range b.topics {
		for _, s := range subscriptors {
			s.close()
		}
		b.topics[topic] = nil
	}
}

func (s *subscriptor) deliver(msg BrokerMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	select {
	case s.subscription.Receiver <- msg:
	default:
	}
}

func (s *subscriptor) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.subscription.Receiver)
	}
}
