// Package kafka publishes normalized track points to a Kafka topic, for
// deployments that fan the dataset out to stream consumers alongside the
// columnar store.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/config"
	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/domain"
)

// Writer produces track-point messages to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes a batch of track points in a single
// WriteMessages call. Keying by storm keeps each storm's points in one
// partition, preserving their relative order for consumers.
func (w *Writer) LoadBatch(ctx context.Context, points []domain.TrackPoint) error {
	if len(points) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(points))
	for i := range points {
		msg, err := serializeToMessage(points[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a TrackPoint into a Kafka message.
func serializeToMessage(tp domain.TrackPoint) (kafkago.Message, error) {
	data, err := json.Marshal(tp)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize track point: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(tp.UniqueID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "status", Value: []byte(tp.Status)},
			{Key: "ingested_at", Value: []byte(tp.IngestedAt.Format(time.RFC3339))},
		},
	}, nil
}
