package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/go4it-sports/starpath/pkg/pubsub"
)

type publisher struct {
	producer sarama.SyncProducer
	now      func() time.Time
}

// NewPublisher connects a synchronous producer. Every message waits for all
// in-sync replicas, so a nil error means the event is durable.
func NewPublisher(clientID string, brokerAddrs []string) (*publisher, error) {
	config := sarama.NewConfig()
	config.ClientID = clientID
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Partitioner = sarama.NewHashPartitioner
	config.Producer.Retry.Max = 3
	config.Producer.Retry.Backoff = 100 * time.Millisecond
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokerAddrs, config)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to kafka %v: %w", brokerAddrs, err)
	}

	return &publisher{producer: producer, now: time.Now}, nil
}

func (p *publisher) Stop(ctx context.Context) error {
	return p.producer.Close()
}

// Publish sends pack to topic. Packs with the same key go to the same
// partition.
func (p *publisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	m := &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.ByteEncoder(pack.Key),
		Value:     sarama.ByteEncoder(pack.Msg),
		Timestamp: p.now(),
	}

	if _, _, err := p.producer.SendMessage(m); err != nil {
		return fmt.Errorf("cannot send message to %s: %w", topic, err)
	}

	return nil
}
