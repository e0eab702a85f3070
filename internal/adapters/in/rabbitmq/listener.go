package rabbitmq

import (
	"context"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/doctor-schedule-engine/internal/config"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/ports/in"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/ports/out"
)

// ScheduleCacheListener слушает события изменения записей и правил
// доступности и инвалидирует соответствующие дни в кэше сеток.
type ScheduleCacheListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.CacheInvalidationUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

type (
	EventType         string
	EventResourceType string
)

type EventRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType EventResourceType
	EventType    EventType
}

const (
	EventResourceTypeAll     EventResourceType = "_all_"
	EventResourceTypeBooking EventResourceType = "booking"
	EventResourceTypeRule    EventResourceType = "availabilityrule"
)

const (
	EventTypeStore      EventType = "store"
	EventTypeInvalidate EventType = "invalidate"
)

func NewScheduleCacheListener(useCase in.CacheInvalidationUseCase, cfg *config.Config, logger out.LoggerPort) (*ScheduleCacheListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.URL,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &ScheduleCacheListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *ScheduleCacheListener) Start(ctx context.Context) error {
	if err := l.startBookingQueue(ctx); err != nil {
		return err
	}
	l.logger.Info("booking.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMQ.QueueConfig.BookingQueueName,
	})

	if err := l.startRuleQueue(ctx); err != nil {
		return err
	}
	l.logger.Info("availability_rule.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMQ.QueueConfig.RuleQueueName,
	})

	if err := l.startAllQueue(ctx); err != nil {
		return err
	}
	l.logger.Info("_all_.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMQ.QueueConfig.AllQueueName,
	})

	return nil
}

func (l *ScheduleCacheListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

func (l *ScheduleCacheListener) consumeQueue(ctx context.Context, queueName, bindingKey string, process func(ctx context.Context, msg amqp.Delivery) error) error {
	queue, err := l.channel.QueueDeclare(
		queueName,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	err = l.channel.QueueBind(
		queue.Name,
		bindingKey,
		l.cfg.RabbitMQ.Exchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				if err := process(ctx, msg); err != nil {
					l.logger.Error("rabbitmq.message.process_failed", out.LogFields{
						"queue":      queue.Name,
						"routingKey": msg.RoutingKey,
						"error":      err.Error(),
					})
					msg.Nack(false, true) // requeue message
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	return nil
}

// Пример routingKey:
// his.schedule-engine.booking.v1.store
// his.schedule-engine.booking.v1.invalidate
// his.schedule-engine.availabilityrule.v1.invalidate
func (l *ScheduleCacheListener) parseEventRoutingKey(msg amqp.Delivery) (EventRoutingKey, error) {
	parts := strings.Split(msg.RoutingKey, ".")

	if len(parts) < 5 {
		return EventRoutingKey{}, fmt.Errorf("invalid routing key: %s", msg.RoutingKey)
	}

	return EventRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: EventResourceType(parts[2]),
		EventType:    EventType(parts[4]),
	}, nil
}
