package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"analytics-copilot/internal/models"
	"analytics-copilot/internal/util"

	"github.com/segmentio/kafka-go"
)

// EventPublisher publishes typed analytics events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishQueryAnswered publishes a QueryAnswered event keyed by the
// resolved analysis type, so consumers can partition by pipeline.
func (ep *EventPublisher) PublishQueryAnswered(ctx context.Context, event *models.QueryAnsweredEvent) error {
	if err := ep.producer.PublishEvent(ctx, string(event.AnalysisType), event); err != nil {
		return err
	}
	util.EventsPublishedTotal.WithLabelValues(event.EventType).Inc()
	return nil
}

// PublishDashboardRefreshed publishes a DashboardRefreshed event
func (ep *EventPublisher) PublishDashboardRefreshed(ctx context.Context, event *models.DashboardRefreshedEvent) error {
	if err := ep.producer.PublishEvent(ctx, event.EventType, event); err != nil {
		return err
	}
	util.EventsPublishedTotal.WithLabelValues(event.EventType).Inc()
	return nil
}

// EventHandler dispatches consumed messages to registered callbacks
type EventHandler struct {
	onQueryAnswered      func(ctx context.Context, event *models.QueryAnsweredEvent) error
	onDashboardRefreshed func(ctx context.Context, event *models.DashboardRefreshedEvent) error
}

// NewEventHandler creates an empty event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnQueryAnswered registers the QueryAnswered callback
func (eh *EventHandler) OnQueryAnswered(fn func(ctx context.Context, event *models.QueryAnsweredEvent) error) {
	eh.onQueryAnswered = fn
}

// OnDashboardRefreshed registers the DashboardRefreshed callback
func (eh *EventHandler) OnDashboardRefreshed(fn func(ctx context.Context, event *models.DashboardRefreshedEvent) error) {
	eh.onDashboardRefreshed = fn
}

// HandleMessage decodes a Kafka message and dispatches it by type.
// Unknown event types are acknowledged and skipped.
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var base models.BaseEvent
	if err := json.Unmarshal(msg.Value, &base); err != nil {
		return fmt.Errorf("failed to unmarshal event envelope: %w", err)
	}

	switch base.EventType {
	case models.EventTypeQueryAnswered:
		if eh.onQueryAnswered == nil {
			return nil
		}
		var event models.QueryAnsweredEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("failed to unmarshal QueryAnswered event: %w", err)
		}
		return eh.onQueryAnswered(ctx, &event)

	case models.EventTypeDashboardRefreshed:
		if eh.onDashboardRefreshed == nil {
			return nil
		}
		var event models.DashboardRefreshedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("failed to unmarshal DashboardRefreshed event: %w", err)
		}
		return eh.onDashboardRefreshed(ctx, &event)
	}

	return nil
}
