package pubsub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lovoo/goka"
)

const (
	maxRetries    int = 10
	_retryBackoff     = 3 * time.Second
)

var _ Publisher = (*KafkaPublisher)(nil)

type KafkaPublisher struct {
	emitter *goka.Emitter
	topic   Topic
}

func newKafkaPublisher(brokers []string, topic Topic, codec Codec) (*KafkaPublisher, error) {
	var lastErr error
	for try := 0; try < maxRetries; try++ {
		slog.Debug("connecting to kafka brokers",
			slog.String("brokers", strings.Join(brokers, ",")),
			slog.String("topic", string(topic)),
			slog.Int("try", try+1))

		emitter, err := goka.NewEmitter(brokers, goka.Stream(topic), codec)
		if err == nil {
			return &KafkaPublisher{emitter: emitter, topic: topic}, nil
		}
		lastErr = err
		time.Sleep(_retryBackoff)
	}
	return nil, fmt.Errorf("connecting to kafka after %d retries: %w", maxRetries, lastErr)
}

func (p *KafkaPublisher) Publish(_ context.Context, key Key, message Message) error {
	if err := p.emitter.EmitSync(string(key), message); err != nil {
		slog.Error("emitting message",
			slog.String("topic", string(p.topic)),
			slog.String("key", string(key)),
			slog.String("error", err.Error()))
		return fmt.Errorf("emitting %s message: %w", p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.emitter.Finish()
}

var _ Consumer = (*KafkaConsumer)(nil)

// KafkaConsumer runs one goka processor per consumed topic. Processors stop
// when the consumer context is cancelled.
type KafkaConsumer struct {
	ctx      context.Context
	brokers  []string
	group    string
	adapters AvroAdapters
	wg       *sync.WaitGroup
}

func (c *KafkaConsumer) Consume(topic Topic, handler MessageHandler, prototype Prototype) error {
	codec, err := c.adapters.codecFor(topic, prototype)
	if err != nil {
		return fmt.Errorf("creating %s codec: %w", topic, err)
	}

	cb := func(gctx goka.Context, msg any) {
		key := Key(gctx.Key())
		if err := handler(gctx.Context(), key, msg); err != nil {
			slog.Error("message handler failed",
				slog.String("topic", string(topic)),
				slog.String("key", string(key)),
				slog.String("error", err.Error()))
		}
	}

	group := goka.DefineGroup(
		goka.Group(fmt.Sprintf("%s-%s", c.group, topic)),
		goka.Input(goka.Stream(topic), codec, cb),
	)
	processor, err := goka.NewProcessor(c.brokers, group)
	if err != nil {
		return fmt.Errorf("creating %s processor: %w", topic, err)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := processor.Run(c.ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("kafka processor stopped", slog.String("topic", string(topic)), slog.String("error", err.Error()))
		}
	}()
	return nil
}
