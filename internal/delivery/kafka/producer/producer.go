package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"

	kafka "github.com/vogiaan1904/codeclash/internal/delivery/kafka"
	"github.com/vogiaan1904/codeclash/pkg/logger"
	"github.com/vogiaan1904/codeclash/pkg/util"
)

type Producer interface {
	PublishQueueJoined(ctx context.Context, event kafka.QueueJoinedEvent) error
	PublishMatchCreated(ctx context.Context, event kafka.MatchCreatedEvent) error
	Close() error
}

type implProducer struct {
	l    logger.Logger
	prod sarama.SyncProducer
}

func NewProducer(prod sarama.SyncProducer, l logger.Logger) Producer {
	return &implProducer{
		l:    l,
		prod: prod,
	}
}

func (p *implProducer) PublishQueueJoined(ctx context.Context, event kafka.QueueJoinedEvent) error {
	event.Timestamp = time.Now()
	val, err := json.Marshal(event)
	if err != nil {
		p.l.Errorf(ctx, "delivery.kafka.producer.PublishQueueJoined: %v", err)
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: kafka.TopicQueueJoined,
		Key:   sarama.StringEncoder(event.Name),
		Value: sarama.ByteEncoder(val),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("timestamp"),
				Value: []byte(util.TimeToISO8601Str(event.Timestamp)),
			},
		},
	}

	_, _, err = p.prod.SendMessage(msg)
	return err
}

func (p *implProducer) PublishMatchCreated(ctx context.Context, event kafka.MatchCreatedEvent) error {
	event.Timestamp = time.Now()
	val, err := json.Marshal(event)
	if err != nil {
		p.l.Errorf(ctx, "delivery.kafka.producer.PublishMatchCreated: %v", err)
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: kafka.TopicMatchCreated,
		Key:   sarama.StringEncoder(event.RoomID), // Partition by room_id for ordering
		Value: sarama.ByteEncoder(val),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("timestamp"),
				Value: []byte(util.TimeToISO8601Str(event.Timestamp)),
			},
		},
	}

	_, _, err = p.prod.SendMessage(msg)
	return err
}

func (p *implProducer) Close() error {
	if err := p.prod.Close(); err != nil {
		return err
	}

	return nil
}
