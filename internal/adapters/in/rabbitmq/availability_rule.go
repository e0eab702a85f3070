package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/ports/out"
)

type RuleEventMessage struct {
	DoctorID uuid.UUID `json:"doctor_id"`
}

func (l *ScheduleCacheListener) startRuleQueue(ctx context.Context) error {
	return l.consumeQueue(ctx,
		l.cfg.RabbitMQ.QueueConfig.RuleQueueName,
		l.cfg.RabbitMQ.QueueConfig.RuleQueueBind,
		l.processRuleMessage,
	)
}

// Еженедельное правило затрагивает все даты врача - сбрасываем его целиком.
func (l *ScheduleCacheListener) processRuleMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := l.parseEventRoutingKey(msg)
	if err != nil {
		return err
	}

	if routingKey.ResourceType != EventResourceTypeRule {
		return nil
	}

	var msgJson RuleEventMessage
	if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
		return err
	}

	l.useCase.InvalidateDoctor(ctx, msgJson.DoctorID)

	l.logger.Info("availability_rule.message.invalidated", out.LogFields{
		"doctorId": msgJson.DoctorID,
	})

	return nil
}
