package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"uniLeaderboard/internal/app/dto"
	"uniLeaderboard/internal/domain/model"
	"uniLeaderboard/internal/domain/useCases"
)

// KafkaConfig holds Kafka connection configuration
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// SwapFeedProducer publishes the classified swap records of each live
// leaderboard run so downstream consumers can index them.
type SwapFeedProducer struct {
	writer *kafka.Writer
}

// NewSwapFeedProducer creates a producer for the swap feed topic.
func NewSwapFeedProducer(config KafkaConfig) *SwapFeedProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{}, // records for the same token stay on one partition
		RequiredAcks: kafka.RequireAll,
	}

	return &SwapFeedProducer{writer: writer}
}

var _ useCases.SwapPublisher = (*SwapFeedProducer)(nil)

// PublishSwaps classifies each swap against the target token and writes the
// batch keyed by token address. Swaps that fail classification are logged
// and skipped; they never block the rest of the batch.
func (p *SwapFeedProducer) PublishSwaps(ctx context.Context, token string, swaps []model.Swap) error {
	msgs := make([]kafka.Message, 0, len(swaps))
	for i := range swaps {
		record, err := dto.SwapRecordFromModel(&swaps[i], token)
		if err != nil {
			log.Printf("skipping unclassifiable swap %s on feed: %v", swaps[i].ID, err)
			continue
		}
		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(token),
			Value: data,
			Time:  time.Now(),
		})
	}
	if len(msgs) == 0 {
		return nil
	}

	return p.writer.WriteMessages(ctx, msgs...)
}

// Close closes the producer
func (p *SwapFeedProducer) Close() error {
	return p.writer.Close()
}
