package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

var _ PublisherFactory = (*MemoryPublisherFactory)(nil)
var _ ConsumerFactory = (*MemoryConsumerFactory)(nil)

type MemoryPublisherFactory struct {
	broker *MemoryBroker
}

func NewMemoryPublisherFactory(broker *MemoryBroker) *MemoryPublisherFactory {
	return &MemoryPublisherFactory{broker: broker}
}

func (f *MemoryPublisherFactory) New(topic Topic, prototype Message) (Publisher, error) {
	return &MemoryPublisher{
		broker: f.broker,
		topic:  topic,
		codec:  NewJSONCodec(prototype),
	}, nil
}

type MemoryPublisher struct {
	broker *MemoryBroker
	topic  Topic
	codec  Codec
}

func (p *MemoryPublisher) Publish(ctx context.Context, key Key, message Message) error {
	payload, err := p.codec.Encode(message)
	if err != nil {
		return fmt.Errorf("encoding %s message: %w", p.topic, err)
	}
	p.broker.dispatch(ctx, envelope{
		topic:   p.topic,
		key:     key,
		payload: payload,
		trace:   ExtractTraceFromContext(ctx),
	})
	return nil
}

type MemoryConsumerFactory struct {
	broker *MemoryBroker
	group  string
}

func NewMemoryConsumerFactory(broker *MemoryBroker, group string) *MemoryConsumerFactory {
	return &MemoryConsumerFactory{broker: broker, group: group}
}

func (f *MemoryConsumerFactory) New() Consumer {
	return &MemoryConsumer{broker: f.broker, group: f.group}
}

type MemoryConsumer struct {
	broker *MemoryBroker
	group  string
}

func (c *MemoryConsumer) Consume(topic Topic, handler MessageHandler, prototype Prototype) error {
	c.broker.subscribe(topic, c.group, subscription{handler: handler, codec: NewJSONCodec(prototype)})
	return nil
}

type envelope struct {
	topic   Topic
	key     Key
	payload []byte
	trace   TraceHeaders
}

type subscription struct {
	handler MessageHandler
	codec   Codec
}

type delivery struct {
	ctx context.Context
	env envelope
	to  subscription
}

// consumerGroup queues its deliveries and hands them to one goroutine at a
// time, so a group sees messages in publish order.
type consumerGroup struct {
	members []subscription
	next    int
	queue   []delivery
	running bool
}

// MemoryBroker delivers every message once per consumer group, rotating
// between the members of a group. Publishing never waits for handlers.
type MemoryBroker struct {
	mu       sync.Mutex
	groups   map[Topic]map[string]*consumerGroup
	inflight sync.WaitGroup
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{groups: make(map[Topic]map[string]*consumerGroup)}
}

func (b *MemoryBroker) subscribe(topic Topic, group string, s subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.groups[topic] == nil {
		b.groups[topic] = make(map[string]*consumerGroup)
	}
	g, ok := b.groups[topic][group]
	if !ok {
		g = &consumerGroup{}
		b.groups[topic][group] = g
	}
	g.members = append(g.members, s)
}

func (b *MemoryBroker) dispatch(ctx context.Context, e envelope) {
	ctx = context.WithoutCancel(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, g := range b.groups[e.topic] {
		if len(g.members) == 0 {
			continue
		}
		b.inflight.Add(1)
		g.queue = append(g.queue, delivery{ctx: ctx, env: e, to: g.members[g.next%len(g.members)]})
		g.next++
		if !g.running {
			g.running = true
			go b.drainGroup(g)
		}
	}
}

func (b *MemoryBroker) drainGroup(g *consumerGroup) {
	for {
		b.mu.Lock()
		if len(g.queue) == 0 {
			g.running = false
			b.mu.Unlock()
			return
		}
		d := g.queue[0]
		g.queue[0] = delivery{}
		g.queue = g.queue[1:]
		b.mu.Unlock()

		b.deliver(d.ctx, d.env, d.to)
	}
}

func (b *MemoryBroker) deliver(ctx context.Context, e envelope, s subscription) {
	defer b.inflight.Done()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in message handler", slog.String("topic", string(e.topic)), slog.Any("panic", r))
		}
	}()

	value, err := s.codec.Decode(e.payload)
	if err != nil {
		slog.Error("decoding message", slog.String("topic", string(e.topic)), slog.String("error", err.Error()))
		return
	}

	ctx = InjectTraceIntoContext(ctx, e.trace)
	if err := s.handler(ctx, e.key, value); err != nil {
		slog.Error("message handler failed",
			slog.String("topic", string(e.topic)),
			slog.String("key", string(e.key)),
			slog.String("error", err.Error()))
	}
}

// Drain waits for every handler started so far to return.
func (b *MemoryBroker) Drain() {
	b.inflight.Wait()
}
