// Package events publishes facility and booking lifecycle events.
package events

import (
	"context"
	"fmt"
	"time"

	"hallbooking/pkg/kafka"
	"hallbooking/pkg/logger"
	"hallbooking/pkg/middleware"
)

const (
	FacilityCreated = "facility.created"
	FacilityDeleted = "facility.deleted"
	BookingCreated  = "booking.created"
	BookingDeleted  = "booking.deleted"
)

const source = "hallbooking"

type Event struct {
	Type    string
	RoomID  any
	Payload any
}

// Publisher delivers events on a best-effort basis. Failures are logged and
// never reach the caller's response.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}

type KafkaPublisher struct {
	producer *kafka.Producer
	timeout  time.Duration
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, timeout time.Duration, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, timeout: timeout, log: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	// detached from the request so a finished response does not abort delivery
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	msg := kafka.NewMessage().
		WithKey(roomKey(event.RoomID)).
		WithEventType(event.Type).
		WithCorrelationID(middleware.GetRequestID(ctx)).
		WithSource(source).
		WithValue(event.Payload).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Warn("Event not published",
			"event_type", event.Type,
			"room_id", event.RoomID,
			"error", err,
		)
	}
}

func roomKey(roomID any) string {
	if roomID == nil {
		return "unknown"
	}
	return fmt.Sprint(roomID)
}
