package pubsub

import (
	"errors"
	"io"
)

// Factory bundles the publisher and consumer factories of one transport.
type Factory struct {
	publisherFactory PublisherFactory
	consumerFactory  ConsumerFactory
	closers          []io.Closer
}

type FactoryOptions struct {
	ConsumerGroup string
}

func NewMemoryFactory(broker *MemoryBroker, opts FactoryOptions) *Factory {
	return &Factory{
		publisherFactory: NewMemoryPublisherFactory(broker),
		consumerFactory:  NewMemoryConsumerFactory(broker, opts.ConsumerGroup),
	}
}

func NewKafkaFactory(opts KafkaOptions) *Factory {
	publishers := NewKafkaPublisherFactory(opts)
	consumers := NewKafkaConsumerFactory(opts)
	return &Factory{
		publisherFactory: publishers,
		consumerFactory:  consumers,
		closers:          []io.Closer{consumers, publishers},
	}
}

func (f *Factory) GetPublisherFactory() PublisherFactory {
	return f.publisherFactory
}

func (f *Factory) GetConsumerFactory() ConsumerFactory {
	return f.consumerFactory
}

// Close releases the transport connections. Consumers stop before publishers.
func (f *Factory) Close() error {
	var errs []error
	for _, c := range f.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
