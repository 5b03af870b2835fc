package pubsub

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var _ PublisherFactory = (*KafkaPublisherFactory)(nil)
var _ ConsumerFactory = (*KafkaConsumerFactory)(nil)

type KafkaOptions struct {
	Brokers       []string
	ConsumerGroup string
	Adapters      AvroAdapters
}

// KafkaPublisherFactory hands out one emitter per topic.
type KafkaPublisherFactory struct {
	opts       KafkaOptions
	mu         sync.Mutex
	publishers map[Topic]*KafkaPublisher
}

func NewKafkaPublisherFactory(opts KafkaOptions) *KafkaPublisherFactory {
	return &KafkaPublisherFactory{opts: opts, publishers: make(map[Topic]*KafkaPublisher)}
}

func (f *KafkaPublisherFactory) New(topic Topic, prototype Message) (Publisher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if publisher, ok := f.publishers[topic]; ok {
		return publisher, nil
	}

	codec, err := f.opts.Adapters.codecFor(topic, prototype)
	if err != nil {
		return nil, fmt.Errorf("creating %s codec: %w", topic, err)
	}
	publisher, err := newKafkaPublisher(f.opts.Brokers, topic, codec)
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}
	f.publishers[topic] = publisher
	return publisher, nil
}

func (f *KafkaPublisherFactory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs []error
	for topic, publisher := range f.publishers {
		if err := publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s publisher: %w", topic, err))
		}
	}
	return errors.Join(errs...)
}

type KafkaConsumerFactory struct {
	opts   KafkaOptions
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewKafkaConsumerFactory(opts KafkaOptions) *KafkaConsumerFactory {
	ctx, cancel := context.WithCancel(context.Background())
	return &KafkaConsumerFactory{opts: opts, ctx: ctx, cancel: cancel}
}

func (f *KafkaConsumerFactory) New() Consumer {
	return &KafkaConsumer{
		ctx:      f.ctx,
		brokers:  f.opts.Brokers,
		group:    f.opts.ConsumerGroup,
		adapters: f.opts.Adapters,
		wg:       &f.wg,
	}
}

// Close stops every processor and waits for them to return.
func (f *KafkaConsumerFactory) Close() error {
	f.cancel()
	f.wg.Wait()
	return nil
}
