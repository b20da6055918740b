package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/KirkDiggler/similarium/internal/models"
	"github.com/rs/zerolog"
)

var (
	// ErrNilProducer is returned when the Kafka sink has no producer
	ErrNilProducer = errors.New("kafka producer cannot be nil")

	// ErrEmptyTopic is returned when the Kafka sink has no topic
	ErrEmptyTopic = errors.New("kafka topic cannot be empty")
)

// KafkaConfig holds configuration for the Kafka sink
type KafkaConfig struct {
	// Producer sends the messages
	Producer sarama.SyncProducer

	// Topic receives one message per event
	Topic string

	// Logger is used for structured logging
	Logger zerolog.Logger
}

// kafkaSink publishes events as JSON, keyed by game so a game's events
// stay on one partition in order
type kafkaSink struct {
	producer sarama.SyncProducer
	topic    string
	logger   zerolog.Logger
}

// NewKafka creates a Kafka backed sink
func NewKafka(cfg *KafkaConfig) (*kafkaSink, error) {
	if cfg == nil || cfg.Producer == nil {
		return nil, ErrNilProducer
	}
	if cfg.Topic == "" {
		return nil, ErrEmptyTopic
	}

	return &kafkaSink{
		producer: cfg.Producer,
		topic:    cfg.Topic,
		logger:   cfg.Logger.With().Str("component", "kafka_sink").Str("topic", cfg.Topic).Logger(),
	}, nil
}

// NewSyncProducer connects a producer suited to the Kafka sink
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Partitioner = sarama.NewHashPartitioner
	config.Producer.Retry.Max = 3
	config.Producer.Retry.Backoff = 100 * time.Millisecond
	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return producer, nil
}

// Publish implements Sink
func (k *kafkaSink) Publish(ctx context.Context, events []*models.Event) error {
	if len(events) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	messages := make([]*sarama.ProducerMessage, 0, len(events))
	for _, event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}

		messages = append(messages, &sarama.ProducerMessage{
			Topic:     k.topic,
			Key:       sarama.StringEncoder(event.GameID),
			Value:     sarama.ByteEncoder(data),
			Timestamp: event.Timestamp,
			Headers: []sarama.RecordHeader{
				{Key: []byte("event_type"), Value: []byte(event.Type)},
			},
		})
	}

	if err := k.producer.SendMessages(messages); err != nil {
		k.logger.Error().Err(err).Int("events", len(events)).Msg("failed to publish events")
		return fmt.Errorf("failed to publish events: %w", err)
	}

	k.logger.Debug().Int("events", len(events)).Msg("published events")
	return nil
}

// Close releases the producer
func (k *kafkaSink) Close() error {
	return k.producer.Close()
}
