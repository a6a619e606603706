package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"storefront/internal/metrics"
	"storefront/internal/models"
)

// OrderReceived is the message published once an order has been stored.
type OrderReceived struct {
	OrderID   string    `json:"orderId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	ItemCount int       `json:"itemCount"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewOrderReceived(order models.Order) OrderReceived {
	return OrderReceived{
		OrderID:   order.ID.Hex(),
		Name:      order.Name,
		Email:     order.Email,
		Phone:     order.Phone,
		ItemCount: len(order.Items),
		Total:     order.Total,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}
}

// Publisher announces stored orders to downstream consumers.
type Publisher interface {
	PublishOrderReceived(ctx context.Context, order models.Order) error
	Close() error
}

// Nop is used when no broker is configured.
type Nop struct{}

func (Nop) PublishOrderReceived(context.Context, models.Order) error { return nil }
func (Nop) Close() error { return nil }

type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   zerolog.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) (*KafkaPublisher, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return newKafkaPublisher(producer, topic, logger), nil
}

func newKafkaPublisher(producer sarama.SyncProducer, topic string, logger zerolog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With().Str("component", "order-events").Str("topic", topic).Logger(),
	}
}

// PublishOrderReceived sends the event keyed by order ID. The sarama sync
// producer does not take a context; ctx is only checked before sending.
func (p *KafkaPublisher) PublishOrderReceived(ctx context.Context, order models.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(NewOrderReceived(order))
	if err != nil {
		metrics.OrderEventsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("encode order event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(order.ID.Hex()),
		Value: sarama.ByteEncoder(payload),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		metrics.OrderEventsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("send order event: %w", err)
	}

	metrics.OrderEventsTotal.WithLabelValues("sent").Inc()
	p.logger.Debug().
		Str("order_id", order.ID.Hex()).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("order event sent")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
