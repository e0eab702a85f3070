package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/ports/out"
)

func (l *ScheduleCacheListener) startAllQueue(ctx context.Context) error {
	return l.consumeQueue(ctx,
		l.cfg.RabbitMQ.QueueConfig.AllQueueName,
		l.cfg.RabbitMQ.QueueConfig.AllQueueBind,
		l.processAllMessage,
	)
}

// Служебное событие полного сброса, тело сообщения не важно.
func (l *ScheduleCacheListener) processAllMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := l.parseEventRoutingKey(msg)
	if err != nil {
		return err
	}

	if routingKey.ResourceType != EventResourceTypeAll {
		return nil
	}

	l.useCase.InvalidateAll(ctx)

	l.logger.Info("_all_.message.invalidated", out.LogFields{
		"routingKey": msg.RoutingKey,
	})

	return nil
}
