package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/hostel-api/pkg/jobs"
	"github.com/noah-isme/hostel-api/pkg/middleware/requestid"
)

// Hostel event types. They double as AMQP routing keys.
const (
	EventComplaintCreated       = "complaint.created"
	EventComplaintStatusChanged = "complaint.status_changed"
	EventLeaveRequested         = "leave.requested"
	EventLeaveDecided           = "leave.decided"
	EventRoomAssigned           = "room.assigned"
	EventAnnouncementCreated    = "announcement.created"
	EventPaymentRecorded        = "payment.recorded"
)

var notificationEvents = []string{
	EventComplaintCreated,
	EventComplaintStatusChanged,
	EventLeaveRequested,
	EventLeaveDecided,
	EventRoomAssigned,
	EventAnnouncementCreated,
	EventPaymentRecorded,
}

// Event is the envelope delivered to subscribers.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	RequestID  string      `json:"requestId,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
	Data       interface{} `json:"data"`
}

type notificationPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
}

type notificationQueue interface {
	Register(jobType string, handler jobs.Handler)
	Enqueue(job jobs.Job) error
}

// NotificationService hands domain events to a background queue that publishes them.
// Delivery is best effort; a failed enqueue never fails the originating request.
type NotificationService struct {
	queue     notificationQueue
	publisher notificationPublisher
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewNotificationService wires the publisher into queue. A nil queue publishes synchronously.
func NewNotificationService(queue notificationQueue, publisher notificationPublisher, metrics *MetricsService, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &NotificationService{queue: queue, publisher: publisher, metrics: metrics, logger: logger}
	if queue != nil {
		for _, eventType := range notificationEvents {
			queue.Register(eventType, svc.deliver)
		}
	}
	return svc
}

// Publish schedules eventType for delivery.
func (s *NotificationService) Publish(ctx context.Context, eventType string, payload interface{}) {
	if s == nil || s.publisher == nil {
		return
	}
	evt := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		RequestID:  requestid.FromContext(ctx),
		OccurredAt: time.Now().UTC(),
		Data:       payload,
	}
	if s.queue == nil {
		if err := s.deliver(ctx, jobs.Job{ID: evt.ID, Type: eventType, Payload: evt}); err != nil {
			s.logger.Warn("failed to publish event", zap.String("type", eventType), zap.Error(err))
		}
		return
	}
	if err := s.queue.Enqueue(jobs.Job{ID: evt.ID, Type: eventType, Payload: evt}); err != nil {
		s.metrics.ObserveEvent(eventType, false)
		s.logger.Warn("failed to enqueue event", zap.String("type", eventType), zap.Error(err))
	}
}

func (s *NotificationService) deliver(ctx context.Context, job jobs.Job) error {
	evt, ok := job.Payload.(Event)
	if !ok {
		return fmt.Errorf("unexpected payload %T for job %s", job.Payload, job.ID)
	}
	err := s.publisher.Publish(ctx, evt.Type, evt)
	s.metrics.ObserveEvent(evt.Type, err == nil)
	if err != nil {
		return fmt.Errorf("publish %s: %w", evt.Type, err)
	}
	return nil
}
