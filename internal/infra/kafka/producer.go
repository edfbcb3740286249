package kafka

import (
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-community/internal/infra/config"
)

// Producer owns a Sarama async producer, drains its error channel, and
// prefixes topic names. Delivery is fire-and-forget; failed publishes are
// logged, never retried by callers.
type Producer struct {
	producer sarama.AsyncProducer
	logger   *zap.Logger
	prefix   string
	errs     chan error
	stop     chan struct{}
}

// NewProducer connects to the configured brokers.
func NewProducer(cfg config.KafkaSettings, logger *zap.Logger) (*Producer, error) {
	sc := sarama.NewConfig()
	sc.Version = sarama.V3_5_0_0

	sc.Producer.RequiredAcks = sarama.WaitForLocal
	sc.Producer.Compression = sarama.CompressionSnappy
	sc.Producer.Flush.Frequency = 100 * time.Millisecond
	sc.Producer.Flush.Messages = 100
	sc.Producer.Retry.Max = 3
	sc.Producer.Return.Successes = false
	sc.Producer.Return.Errors = true

	sc.Metadata.Retry.Max = 3
	sc.Metadata.Retry.Backoff = 250 * time.Millisecond

	producer, err := sarama.NewAsyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	p := &Producer{
		producer: producer,
		logger:   logger,
		prefix:   cfg.TopicPrefix,
		errs:     make(chan error, 256),
		stop:     make(chan struct{}),
	}

	go p.drainErrors()

	logger.Info("kafka producer ready",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic_prefix", cfg.TopicPrefix),
	)

	return p, nil
}

func (p *Producer) drainErrors() {
	for {
		select {
		case err := <-p.producer.Errors():
			if err == nil {
				continue
			}
			p.logger.Error("kafka publish failed",
				zap.Error(err.Err),
				zap.String("topic", err.Msg.Topic),
			)
			select {
			case p.errs <- err.Err:
			default:
			}
		case <-p.stop:
			return
		}
	}
}

// Producer exposes the underlying async producer.
func (p *Producer) Producer() sarama.AsyncProducer {
	return p.producer
}

// Errors reports publish failures for external monitoring.
func (p *Producer) Errors() <-chan error {
	return p.errs
}

// Close flushes pending messages and stops the error drain.
func (p *Producer) Close() error {
	p.logger.Info("closing kafka producer")
	close(p.stop)

	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("close kafka producer: %w", err)
	}

	close(p.errs)
	return nil
}

// TopicName prepends the configured prefix unless already present.
func (p *Producer) TopicName(eventType string) string {
	if p.prefix == "" || strings.HasPrefix(eventType, p.prefix+".") {
		return eventType
	}
	return p.prefix + "." + eventType
}
