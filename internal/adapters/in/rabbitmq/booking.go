package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/ports/out"
)

type BookingEventMessage struct {
	DoctorID uuid.UUID       `json:"doctor_id"`
	Date     json_types.Date `json:"date"`
}

func (l *ScheduleCacheListener) startBookingQueue(ctx context.Context) error {
	return l.consumeQueue(ctx,
		l.cfg.RabbitMQ.QueueConfig.BookingQueueName,
		l.cfg.RabbitMQ.QueueConfig.BookingQueueBind,
		l.processBookingMessage,
	)
}

// Любое событие записи - store или invalidate - означает, что сетка
// этого врача на эту дату в кэше больше не актуальна.
func (l *ScheduleCacheListener) processBookingMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := l.parseEventRoutingKey(msg)
	if err != nil {
		return err
	}

	if routingKey.ResourceType != EventResourceTypeBooking {
		return nil
	}

	var msgJson BookingEventMessage
	if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
		return err
	}

	l.useCase.InvalidateDay(ctx, msgJson.DoctorID, msgJson.Date)

	l.logger.Info("booking.message.invalidated", out.LogFields{
		"doctorId":  msgJson.DoctorID,
		"date":      msgJson.Date,
		"eventType": string(routingKey.EventType),
	})

	return nil
}
