package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/yzhyun/NextPicker/internal/domain"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
)

type RabbitMQ struct {
	mu         sync.Mutex
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

// Config describes the topic exchange articles are published to. Messages
// are routed as <RoutingKey>.<country>; QueueName, when set, is bound to
// every country.
type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if cfg.QueueName != "" {
		q, err := ch.QueueDeclare(
			cfg.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("declare queue: %w", err)
		}

		if err := ch.QueueBind(q.Name, cfg.RoutingKey+".*", cfg.Exchange, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("bind queue: %w", err)
		}
	}

	logger = logger.With("component", "publisher")
	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"routing_key", cfg.RoutingKey,
	)

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger,
	}, nil
}

// ArticleEvent is the JSON body of every published message.
type ArticleEvent struct {
	Action    string         `json:"action"`
	Article   domain.Article `json:"article"`
	Timestamp time.Time      `json:"timestamp"`
}

// RoutingKey returns the key an article of country is published under.
func (r *RabbitMQ) RoutingKey(country domain.Country) string {
	return r.routingKey + "." + strings.ToLower(string(country))
}

func (r *RabbitMQ) Publish(ctx context.Context, article *domain.Article, isNew bool) error {
	action := ActionUpdate
	if isNew {
		action = ActionCreate
	}

	now := time.Now().UTC()
	body, err := json.Marshal(ArticleEvent{
		Action:    action,
		Article:   *article,
		Timestamp: now,
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	key := r.RoutingKey(article.Country)

	r.mu.Lock()
	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		key,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    uuid.NewString(),
			Type:         "article." + action,
			Body:         body,
			Timestamp:    now,
		},
	)
	r.mu.Unlock()
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	r.logger.Debug("published article",
		"id", article.ID,
		"routing_key", key,
		"action", action,
	)

	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
