// Package events publishes shipment status changes for downstream
// consumers (notifications, reporting).
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"shiptrack/internal/models"
)

// StatusTopic carries one message per status write, keyed by shipment id
// so a shipment's events stay ordered within a partition.
const StatusTopic = "shipment-status"

type StatusEvent struct {
	ShipmentID   string                `json:"shipment_id"`
	TrackingCode string                `json:"tracking_code"`
	Status       models.ShipmentStatus `json:"status"`
	HandlerID    string                `json:"handler_id"`
	Location     string                `json:"location"`
	OccurredAt   time.Time             `json:"occurred_at"`
}

type Producer interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// KafkaProducer writes JSON events through a kafka-go writer.
type KafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	return &KafkaProducer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *KafkaProducer) Publish(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// ConsoleProducer stands in when no broker is configured; events go to
// the application log instead of a topic.
type ConsoleProducer struct{}

func NewConsoleProducer() *ConsoleProducer {
	logrus.Info("no Kafka brokers configured, status events go to the log")
	return &ConsoleProducer{}
}

func (p *ConsoleProducer) Publish(_ context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"key":     key,
		"payload": string(payload),
	}).Info("shipment status event")
	return nil
}

func (p *ConsoleProducer) Close() error {
	return nil
}
